// Command migrate applies the embedded run-history schema migrations.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/dossier/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "DOSSIER_DB_DSN"

type options struct {
	dsn        string
	configPath string
	up         bool
	down       bool
	steps      int
	version    bool
	force      int
	forceSet   bool
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := parseFlags()
	if err := run(opts, logger); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.dsn, "dsn", "", "Database URL (defaults to $"+envDSN+", then the [database] config section)")
	flag.StringVar(&opts.configPath, "config", config.BaseConfigFile, "Config file supplying the [database] section")
	flag.BoolVar(&opts.up, "up", false, "Run all up migrations")
	flag.BoolVar(&opts.down, "down", false, "Run all down migrations")
	flag.IntVar(&opts.steps, "steps", 0, "Number of migrations (positive=up, negative=down)")
	flag.BoolVar(&opts.version, "version", false, "Print current migration version")
	flag.IntVar(&opts.force, "force", -1, "Force set version (use with caution)")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			opts.forceSet = true
		}
	})
	return opts
}

// resolveDSN prefers the flag, then the environment, then the config file.
func resolveDSN(opts options) (string, error) {
	if opts.dsn != "" {
		return opts.dsn, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return "", err
	}
	return cfg.Database.URL(), nil
}

func run(opts options, logger *slog.Logger) error {
	if !opts.version && !opts.forceSet && !opts.up && !opts.down && opts.steps == 0 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dsn URL] [-config FILE] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
		return nil
	}

	dsn, err := resolveDSN(opts)
	if err != nil {
		return fmt.Errorf("resolve dsn: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch {
	case opts.version:
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("get version: %w", err)
		}
		logger.Info("migration version", "version", v, "dirty", dirty)
	case opts.forceSet:
		if err := m.Force(opts.force); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		logger.Info("forced migration version", "version", opts.force)
	case opts.up:
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("up migrations: %w", err)
		}
		logger.Info("migrations applied")
	case opts.down:
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("down migrations: %w", err)
		}
		logger.Info("migrations reverted")
	default:
		if err := ignoreNoChange(m.Steps(opts.steps)); err != nil {
			return fmt.Errorf("migration steps: %w", err)
		}
		logger.Info("migration steps applied", "steps", opts.steps)
	}

	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
