package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/auth"
)

type directoryUserOutput struct {
	*auth.DirectoryUser

	Authorities []string `json:"authorities"`
	Password    string   `json:"password"`
}

func newLDAPCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ldap",
		Short: "Query and modify directory accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "test",
			Short: "Check that the service account can bind",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := e.ldapProvider()
				if err != nil {
					return err
				}

				if err = p.TestConnection(); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "ok")

				return nil
			},
		},
		&cobra.Command{
			Use:   "check <username>",
			Short: "Look up a user and print account status and authorities",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := e.ldapProvider()
				if err != nil {
					return err
				}

				u, err := p.Lookup(args[0])
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), directoryUserOutput{
					DirectoryUser: u,
					Authorities:   u.Authorities.Strings(),
					Password:      u.Password(),
				})
			},
		},
		newSetEnabledCmd(e, "enable", true),
		newSetEnabledCmd(e, "disable", false),
	)

	return cmd
}

func newSetEnabledCmd(e *env, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: fmt.Sprintf("%s a directory account by rewriting userAccountControl", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.ldapProvider()
			if err != nil {
				return err
			}

			v, err := p.SetAccountEnabled(args[0], enabled)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), v)

			return nil
		},
	}
}
