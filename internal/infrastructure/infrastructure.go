// Package infrastructure assembles the shared systems that domain packages
// depend on: lifecycle coordination, logging, storage, metrics, and the
// optional run-history database.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/metrics"
	"github.com/JaimeStill/dossier/pkg/database"
	"github.com/JaimeStill/dossier/pkg/lifecycle"
	"github.com/JaimeStill/dossier/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when database.enabled is false.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *metrics.Metrics
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
		Metrics:   metrics.New(),
	}

	if cfg.Database.IsEnabled() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// Start registers storage and, when configured, database hooks with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	return nil
}

// Ready reports whether startup completed and the database, when present,
// is reachable.
func (i *Infrastructure) Ready() bool {
	if !i.Lifecycle.Ready() {
		return false
	}
	return i.Database == nil || i.Database.Ready()
}
