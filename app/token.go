package app

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

type tokenOutput struct {
	claims.Principal

	Authorities []string `json:"authorities"`
	// Raw holds the authority strings before normalization, with --raw.
	Raw []string `json:"raw,omitempty"`
}

func newTokenCmd(e *env) *cobra.Command {
	var (
		rawClaims      bool
		rawAuthorities bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with bearer tokens",
	}

	convertCmd := &cobra.Command{
		Use:   "convert <jwt>",
		Short: "Verify a JWT and print its principal and authorities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := e.converter()
			if err != nil {
				return err
			}

			var (
				a *claims.Authentication
				m map[string]any
			)

			if rawClaims {
				if err = json.Unmarshal([]byte(args[0]), &m); err != nil {
					return fmt.Errorf("parse claims: %w", err)
				}

				a, err = conv.Convert(cmd.Context(), m)
			} else {
				var dec *claims.Decoder

				if dec, err = claims.NewDecoder(e.cfg.JWT.Decoder); err != nil {
					return err
				}

				tok, errDecode := dec.Decode(args[0])
				if errDecode != nil {
					return errDecode
				}

				a, err = conv.ConvertToken(cmd.Context(), tok)
				if mapClaims, ok := tok.Claims.(jwt.MapClaims); ok {
					m = mapClaims
				}
			}

			if err != nil {
				return err
			}

			out := tokenOutput{
				Principal:   a.Principal,
				Authorities: a.Authorities.Strings(),
			}

			if rawAuthorities {
				out.Raw = conv.RawAuthorities(cmd.Context(), m)
			}

			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	convertCmd.Flags().BoolVar(&rawAuthorities, "raw", false, "also print the authorities before normalization")
	convertCmd.Flags().BoolVar(&rawClaims, "claims", false, "treat the argument as a JSON claims document and skip verification")

	cmd.AddCommand(convertCmd)

	return cmd
}
