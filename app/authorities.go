package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthoritiesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorities",
		Short: "Work with authority names",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "map [raw...]",
		Short: "Normalize raw role names into authorities",
		Long: `Normalize raw role names into authorities using the [authorities] section.
The configured default roles are always part of the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := e.normalizer()
			if err != nil {
				return err
			}

			for _, a := range n.MapAuthorities(args).Strings() {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}

			return nil
		},
	})

	return cmd
}
