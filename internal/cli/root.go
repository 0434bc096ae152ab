// Package cli wires the cobra commands of the portfolio binary.
package cli

import (
	"github.com/spf13/cobra"
)

// Options is shared by every command.
type Options struct {
	ConfigPath string
}

// New returns the root command.
func New() *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site server and content tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"optional YAML config file; environment variables override it")

	root.AddCommand(
		newServeCommand(opts).Cmd(),
		newValidateCommand().Cmd(),
		newSeedCommand(opts).Cmd(),
		newAdminCommand().Cmd(),
	)
	return root
}
