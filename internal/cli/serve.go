package cli

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/samin124/portfolio/internal/analytics"
	"github.com/samin124/portfolio/internal/auth"
	"github.com/samin124/portfolio/internal/config"
	"github.com/samin124/portfolio/internal/contact"
	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/mail"
	"github.com/samin124/portfolio/internal/store"
	"github.com/samin124/portfolio/internal/web"
)

type serveCommand struct {
	opts *Options
	cmd  *cobra.Command
}

func newServeCommand(opts *Options) *serveCommand {
	c := &serveCommand{opts: opts}
	c.cmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

func (c *serveCommand) Cmd() *cobra.Command { return c.cmd }

func (c *serveCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	var sender mail.Sender = mail.Unconfigured{}
	if cfg.SMTP.Configured() {
		sender = mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	} else {
		log.Warn("SMTP credentials not configured, contact form submissions will fail")
	}

	st := store.NewFileStore(cfg.DataFile)
	if ok, err := st.Exists(); err == nil && !ok {
		log.Info("no portfolio data yet, serving sample content", "path", cfg.DataFile)
	}

	deps := web.Deps{
		Store:       st,
		Auth:        auth.NewIssuer(auth.Credentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password}, cfg.Admin.JWTSecret),
		Verifier:    auth.NewVerifier(cfg.Admin.JWTSecret),
		Contact:     contact.NewRelay(sender, cfg.SMTP.ContactEmail),
		Log:         log,
		PublicDir:   cfg.PublicDir,
		DistDir:     cfg.DistDir,
		Production:  cfg.Production(),
		CORSOrigins: cfg.CORSOrigins,
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	if cfg.AnalyticsDB != "" {
		tracker, err := analytics.Open(cfg.AnalyticsDB, log)
		if err != nil {
			return fmt.Errorf("open analytics: %w", err)
		}
		defer tracker.Close()
		if _, err := tracker.Cleanup(cmd.Context(), analytics.Retention); err != nil {
			log.Warn("visitor cleanup failed", "error", err)
		}
		deps.Stats = tracker
		deps.Visits = tracker
		g.Go(func() error { return tracker.PurgeLoop(ctx, 24*time.Hour) })
		log.Info("visitor tracking enabled with hashed IP addresses")
	}

	srv := web.NewServer(":"+cfg.Port, web.NewRouter(deps), log)
	g.Go(func() error { return srv.Run(ctx) })
	return g.Wait()
}
