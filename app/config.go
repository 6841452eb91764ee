package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the loaded configuration",
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration without secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.DumpConfig(&e.cfg, format)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	dumpCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")

	cmd.AddCommand(dumpCmd)

	return cmd
}
