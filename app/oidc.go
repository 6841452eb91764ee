package app

import (
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/auth"
	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

type authURLOutput struct {
	State string `json:"state"`
	URL   string `json:"url"`
}

func printAuthentication(cmd *cobra.Command, a *claims.Authentication) error {
	return printJSON(cmd.OutOrStdout(), tokenOutput{
		Principal:   a.Principal,
		Authorities: a.Authorities.Strings(),
	})
}

func newOIDCCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oidc",
		Short: "Run the OpenID Connect login steps against the configured provider",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "url",
			Short: "Print a fresh state token and the authorization URL carrying it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := e.oidcProvider(cmd.Context())
				if err != nil {
					return err
				}

				state, err := auth.GenerateStateToken()
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), authURLOutput{State: state, URL: p.AuthCodeURL(state)})
			},
		},
		&cobra.Command{
			Use:   "verify <id_token>",
			Short: "Verify an ID token and print its principal and authorities",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := e.oidcProvider(cmd.Context())
				if err != nil {
					return err
				}

				a, err := p.VerifyToken(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printAuthentication(cmd, a)
			},
		},
		&cobra.Command{
			Use:   "exchange <code>",
			Short: "Exchange an authorization code and print the ID token's principal and authorities",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := e.oidcProvider(cmd.Context())
				if err != nil {
					return err
				}

				a, err := p.HandleCallback(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printAuthentication(cmd, a)
			},
		},
	)

	return cmd
}
