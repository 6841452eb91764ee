// Package app implements the authkit commands.
package app

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/authkit/internal/config"
	"github.com/GoPowerDNS-Admin/authkit/internal/logger"
)

// env carries the configuration loaded by the root command.
type env struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "authkit",
		Short: "authkit maps identities to authorities and account status",
		Long: `authkit turns JWT claims and directory entries into normalized authorities
and evaluates Active Directory account control flags.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return e.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", "./etc/", "directory containing main.toml")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		newAuthoritiesCmd(e),
		newTokenCmd(e),
		newUACCmd(e),
		newLDAPCmd(e),
		newOIDCCmd(e),
		newConfigCmd(e),
	)

	return rootCmd
}

func (e *env) load() error {
	cfg, err := config.ReadConfig(e.configPath)
	if err != nil {
		return err
	}

	if e.logLevel != "" {
		cfg.Log.LogLevel = e.logLevel
	}

	if err = logger.Init(cfg.Log); err != nil {
		return err
	}

	e.cfg = cfg

	return nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v) //nolint: wrapcheck
}
