package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/samin124/portfolio/internal/editor"
	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/portfolio"
)

type adminOptions struct {
	server  string
	draft   string
	token   string
	timeout time.Duration
	verbose bool
}

type adminCommand struct {
	opts *adminOptions
	cmd  *cobra.Command
}

func newAdminCommand() *adminCommand {
	c := &adminCommand{opts: &adminOptions{}}
	c.cmd = &cobra.Command{
		Use:   "admin",
		Short: "Edit portfolio content against a running server",
		Long: "Edits happen in a local working copy kept in the draft file. " +
			"Nothing reaches the server until a section is published.",
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	f := c.cmd.PersistentFlags()
	f.StringVar(&c.opts.server, "server", "http://localhost:3000", "portfolio server base URL")
	f.StringVar(&c.opts.draft, "draft", "data/draft.json", "draft file holding the working copy")
	f.StringVar(&c.opts.token, "token", os.Getenv("PORTFOLIO_TOKEN"), "bearer token (env PORTFOLIO_TOKEN)")
	f.DurationVar(&c.opts.timeout, "timeout", 15*time.Second, "HTTP timeout")
	f.BoolVarP(&c.opts.verbose, "verbose", "v", false, "log editor activity to stderr")

	c.cmd.AddCommand(
		c.loginCmd(),
		c.pullCmd(),
		c.setCmd(),
		c.upsertCmd(),
		c.removeCmd(),
		c.publishCmd(),
		c.exportCmd(),
		c.resetCmd(),
	)
	return c
}

func (c *adminCommand) Cmd() *cobra.Command { return c.cmd }

func (c *adminCommand) client() *editor.Client {
	cl := editor.NewClient(c.opts.server, c.opts.timeout)
	cl.SetToken(c.opts.token)
	return cl
}

func (c *adminCommand) editor() (*editor.Editor, error) {
	log := logger.Nop()
	if c.opts.verbose {
		var err error
		if log, err = logger.New("development"); err != nil {
			return nil, err
		}
	}
	return editor.New(c.client(), c.opts.draft, log), nil
}

// resume opens the working copy for a local edit: the draft if there is one,
// the server otherwise.
func (c *adminCommand) resume(ctx context.Context) (*editor.Editor, error) {
	ed, err := c.editor()
	if err != nil {
		return nil, err
	}
	if _, err := ed.Resume(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

func (c *adminCommand) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			sess, err := c.client().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Token)
			if !sess.Expiry.IsZero() {
				fmt.Fprintf(cmd.ErrOrStderr(), "token expires at %s\n", sess.Expiry.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", os.Getenv("ADMIN_USERNAME"), "admin username or email (env ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password (env ADMIN_PASSWORD)")
	return cmd
}

func (c *adminCommand) pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace the draft with the server's current document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := c.editor()
			if err != nil {
				return err
			}
			src, err := ed.Open(cmd.Context())
			if err != nil {
				return err
			}
			if src != editor.SourceServer {
				fmt.Fprintf(cmd.ErrOrStderr(), "server unreachable, kept the existing draft\n")
				return nil
			}
			if err := ed.SaveDraft(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled document into %s\n", ed.DraftPath())
			return nil
		},
	}
}

func (c *adminCommand) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <section> <file|->",
		Short: "Replace a whole section of the working copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := portfolio.ParseSection(args[0])
			if err != nil {
				return err
			}
			raw, err := readJSON(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			ed, err := c.resume(cmd.Context())
			if err != nil {
				return err
			}
			if err := ed.Set(s, raw); err != nil {
				return err
			}
			return c.saved(cmd, ed, fmt.Sprintf("Updated %s", s))
		},
	}
}

func (c *adminCommand) upsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upsert <section> <file|->",
		Short: "Add an entry to a list section or replace the one with the same id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := portfolio.ParseSection(args[0])
			if err != nil {
				return err
			}
			raw, err := readJSON(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			ed, err := c.resume(cmd.Context())
			if err != nil {
				return err
			}
			if err := ed.UpsertEntry(s, raw); err != nil {
				return err
			}
			return c.saved(cmd, ed, fmt.Sprintf("Upserted entry in %s", s))
		},
	}
}

func (c *adminCommand) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <section> <id>",
		Short: "Remove an entry from a list section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := portfolio.ParseSection(args[0])
			if err != nil {
				return err
			}
			ed, err := c.resume(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := ed.RemoveEntry(s, args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry %s in %s\n", args[1], s)
				return nil
			}
			return c.saved(cmd, ed, fmt.Sprintf("Removed %s from %s", args[1], s))
		},
	}
}

func (c *adminCommand) publishCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "publish [section...]",
		Short: "Send sections of the working copy to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.opts.token == "" {
				return errors.New("no token: run `portfolio admin login` and pass --token or set PORTFOLIO_TOKEN")
			}
			var sections []portfolio.Section
			if all {
				sections = portfolio.Sections()
			} else {
				if len(args) == 0 {
					return errors.New("name at least one section or pass --all")
				}
				for _, a := range args {
					s, err := portfolio.ParseSection(a)
					if err != nil {
						return err
					}
					sections = append(sections, s)
				}
			}
			ed, err := c.resume(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range sections {
				if _, ok := ed.Section(s); !ok && all {
					continue
				}
				if err := ed.Publish(cmd.Context(), s); err != nil {
					return fmt.Errorf("%w (draft kept in %s)", err, ed.DraftPath())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "publish every section of the working copy")
	return cmd
}

func (c *adminCommand) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole working copy as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := c.resume(cmd.Context())
			if err != nil {
				return err
			}
			if out == "-" {
				return ed.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := ed.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported working copy to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", editor.ExportFileName, "output file, - for stdout")
	return cmd
}

func (c *adminCommand) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Empty the working copy and draft (the server is not touched)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset discards every unpublished edit; pass --yes to confirm")
			}
			ed, err := c.editor()
			if err != nil {
				return err
			}
			if err := ed.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset working copy in %s\n", ed.DraftPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func (c *adminCommand) saved(cmd *cobra.Command, ed *editor.Editor, msg string) error {
	if err := ed.SaveDraft(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (draft %s, not yet published)\n", msg, ed.DraftPath())
	return nil
}

func readJSON(stdin io.Reader, name string) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	data = []byte(strings.TrimSpace(string(data)))
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", name)
	}
	return data, nil
}
