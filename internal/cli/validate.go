package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samin124/portfolio/internal/portfolio"
)

type validateCommand struct {
	cmd *cobra.Command
}

func newValidateCommand() *validateCommand {
	c := &validateCommand{}
	c.cmd = &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a portfolio document against the section schema",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

func (c *validateCommand) Cmd() *cobra.Command { return c.cmd }

func (c *validateCommand) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := portfolio.ValidateDocument(data); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	doc, err := portfolio.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for _, s := range portfolio.Sections() {
		raw, ok := doc[s]
		if !ok {
			fmt.Fprintf(out, "note: section %s is missing\n", s)
			continue
		}
		if !s.IsList() {
			continue
		}
		if dups, err := portfolio.DuplicateIDs(raw); err == nil && len(dups) > 0 {
			fmt.Fprintf(out, "warning: %s has duplicate ids: %s\n", s, strings.Join(dups, ", "))
		}
	}
	fmt.Fprintf(out, "%s is a valid portfolio document\n", args[0])
	return nil
}
