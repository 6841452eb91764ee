package app

import (
	"fmt"
	"strconv"

	"github.com/go-ldap/ldap/v3"
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/accountcontrol"
)

type uacOutput struct {
	Value   int      `json:"value"`
	Enabled bool     `json:"enabled"`
	Flags   []string `json:"flags"`
}

// optionalArg returns nil when the argument is missing.
func optionalArg(args []string, i int) *string {
	if len(args) <= i {
		return nil
	}

	return &args[i]
}

func newUACCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uac",
		Short: "Decode and modify Active Directory userAccountControl values",
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [value]",
		Short: "Decode a userAccountControl value, the baseline when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := e.transcoder()

			v, err := t.DecodeStringValue(optionalArg(args, 0))
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), uacOutput{
				Value:   v,
				Enabled: t.IsUserAccountEnabled(&v, true),
				Flags:   accountcontrol.Describe(v),
			})
		},
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [value]",
		Short: "Encode a userAccountControl value, the baseline when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := e.transcoder()

			var value *int

			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return &accountcontrol.NumberFormatError{Value: args[0], Err: err}
				}

				value = &v
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.EncodeStringValue(value))

			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <enabled|disabled> [current]",
		Short:     "Compute the value with the disabled bit set or cleared",
		Args:      cobra.RangeArgs(1, 2), //nolint:mnd
		ValidArgs: []string{"enabled", "disabled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool

			switch args[0] {
			case "enabled", "enable":
				enabled = true
			case "disabled", "disable":
			default:
				return fmt.Errorf("expected enabled or disabled, got %q", args[0])
			}

			t := e.transcoder()

			var current *int

			if raw := optionalArg(args, 1); raw != nil {
				v, err := t.DecodeStringValue(raw)
				if err != nil {
					return err
				}

				current = &v
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.UserAccountControlValue(enabled, current))

			return nil
		},
	}

	var identifier string

	checkCmd := &cobra.Command{
		Use:   "check [value]",
		Short: "Evaluate account status for an entry carrying the value",
		Long: `Evaluate account status with the configured directory flavor for an entry whose
userAccountControl attribute carries value. Without a value the attribute is absent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := e.evaluator()
			if err != nil {
				return err
			}

			attrs := map[string][]string{}
			if len(args) == 1 {
				attrs[accountcontrol.AttributeName] = []string{args[0]}
			}

			result, err := accountcontrol.Evaluate(ev, ldap.NewEntry(identifier, attrs))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Format(identifier))

			return nil
		},
	}

	checkCmd.Flags().StringVar(&identifier, "id", "cn=unknown", "identifier appended to the evaluation")

	cmd.AddCommand(decodeCmd, encodeCmd, setCmd, checkCmd)

	return cmd
}
