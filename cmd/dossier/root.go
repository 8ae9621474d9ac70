package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/api"
	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/infrastructure"
)

type cli struct {
	out        io.Writer
	verbose    bool
	configPath string
	logger     *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, logger: slog.Default()}

	root := &cobra.Command{
		Use:   "dossier",
		Short: "Route, policy-check, and summarize a pharmaceutical document corpus",
		Long: `Dossier reads a batch of invoices and compliance archives from storage,
routes them into finance and regulatory queues, flags retention violations,
and answers free-text questions with a scenario report.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(c.logger)
		},
	}
	root.SetOut(out)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.BaseConfigFile, "Path to the TOML config file")

	root.AddCommand(
		c.generateCmd(),
		c.documentsCmd(),
		c.scenariosCmd(),
		c.analyzeCmd(),
		c.openapiCmd(),
	)

	return root
}

// session is the set of started systems one command runs against.
type session struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	runtime *api.Runtime
	domain  *api.Domain
}

// withSession loads config, starts infrastructure, runs fn, and shuts
// everything down again.
func (c *cli) withSession(fn func(s *session) error) error {
	cfg, err := config.LoadFrom(c.configPath)
	if err != nil {
		return err
	}

	infra, err := infrastructure.New(cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			c.logger.Warn("shutdown incomplete", "error", err)
		}
	}()

	if err := infra.Start(); err != nil {
		return err
	}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	runtime := api.NewRuntime(cfg, infra)
	return fn(&session{
		cfg:     cfg,
		infra:   infra,
		runtime: runtime,
		domain:  api.NewDomain(cfg, runtime),
	})
}
