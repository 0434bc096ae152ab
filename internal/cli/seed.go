package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samin124/portfolio/internal/config"
	"github.com/samin124/portfolio/internal/portfolio"
	"github.com/samin124/portfolio/internal/store"
)

type seedCommand struct {
	opts  *Options
	cmd   *cobra.Command
	file  string
	force bool
}

func newSeedCommand(opts *Options) *seedCommand {
	c := &seedCommand{opts: opts}
	c.cmd = &cobra.Command{
		Use:   "seed",
		Short: "Write the sample portfolio to the data file",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.file, "file", "", "data file (default: configured PORTFOLIO_DATA_FILE)")
	c.cmd.Flags().BoolVar(&c.force, "force", false, "overwrite an existing data file")
	return c
}

func (c *seedCommand) Cmd() *cobra.Command { return c.cmd }

func (c *seedCommand) run(cmd *cobra.Command, _ []string) error {
	path := c.file
	if path == "" {
		cfg, err := config.Load(c.opts.ConfigPath)
		if err != nil {
			return err
		}
		path = cfg.DataFile
	}
	st := store.NewFileStore(path)
	exists, err := st.Exists()
	if err != nil {
		return err
	}
	if exists && !c.force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, use --force to overwrite\n", path)
		return nil
	}
	if err := st.Replace(cmd.Context(), portfolio.Sample()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample portfolio to %s\n", path)
	return nil
}
