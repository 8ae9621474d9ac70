package infrastructure_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/infrastructure"
	"github.com/JaimeStill/dossier/pkg/database"
	"github.com/JaimeStill/dossier/pkg/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: storage.Config{
			Provider: storage.ProviderFilesystem,
			Root:     filepath.Join(t.TempDir(), "corpus"),
			Pattern:  "**",
		},
		ShutdownTimeout: "5s",
	}
}

func TestNewWithoutDatabase(t *testing.T) {
	infra, err := infrastructure.New(testConfig(t), slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Storage == nil || infra.Metrics == nil {
		t.Fatalf("missing system: %+v", infra)
	}
	if infra.Database != nil {
		t.Error("Database should be nil when disabled")
	}
}

func TestNewWithDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = database.Config{
		Enabled:         new(true),
		Host:            "localhost",
		Port:            5432,
		Name:            "dossier",
		User:            "dossier",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: "1m",
		ConnTimeout:     "1s",
	}

	infra, err := infrastructure.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if infra.Database == nil {
		t.Fatal("Database should be created when enabled")
	}
	infra.Database.Connection().Close()
}

func TestNewUnknownStorageProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Provider = "s3"

	if _, err := infrastructure.New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for unknown storage provider")
	}
}

func TestStartCreatesStorageRoot(t *testing.T) {
	cfg := testConfig(t)
	infra, err := infrastructure.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Ready() {
		t.Error("should not be ready before startup")
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}

	if info, err := os.Stat(cfg.Storage.Root); err != nil || !info.IsDir() {
		t.Errorf("storage root not created: %v", err)
	}
	if !infra.Ready() {
		t.Error("should be ready after startup")
	}

	if err := infra.Lifecycle.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if infra.Ready() {
		t.Error("should not be ready after shutdown")
	}
}
