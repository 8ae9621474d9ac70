// Package config loads the Dossier service configuration from TOML files and
// DOSSIER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/corpus"
	"github.com/JaimeStill/dossier/pkg/database"
	"github.com/JaimeStill/dossier/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvDossierEnv             = "DOSSIER_ENV"
	EnvDossierShutdownTimeout = "DOSSIER_SHUTDOWN_TIMEOUT"
	EnvDossierVersion         = "DOSSIER_VERSION"
)

var databaseEnv = &database.Env{
	Enabled:         "DOSSIER_DB_ENABLED",
	Host:            "DOSSIER_DB_HOST",
	Port:            "DOSSIER_DB_PORT",
	Name:            "DOSSIER_DB_NAME",
	User:            "DOSSIER_DB_USER",
	Password:        "DOSSIER_DB_PASSWORD",
	SSLMode:         "DOSSIER_DB_SSL_MODE",
	MaxOpenConns:    "DOSSIER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "DOSSIER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DOSSIER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "DOSSIER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "DOSSIER_STORAGE_PROVIDER",
	Root:             "DOSSIER_STORAGE_ROOT",
	Pattern:          "DOSSIER_STORAGE_PATTERN",
	ContainerName:    "DOSSIER_STORAGE_CONTAINER_NAME",
	ConnectionString: "DOSSIER_STORAGE_CONNECTION_STRING",
	AccountURL:       "DOSSIER_STORAGE_ACCOUNT_URL",
	MaxListSize:      "DOSSIER_STORAGE_MAX_LIST_SIZE",
}

var corpusEnv = &corpus.Env{
	Count:        "DOSSIER_CORPUS_COUNT",
	Seed:         "DOSSIER_CORPUS_SEED",
	ArchiveRatio: "DOSSIER_CORPUS_ARCHIVE_RATIO",
	Watch:        "DOSSIER_CORPUS_WATCH",
	Debounce:     "DOSSIER_CORPUS_DEBOUNCE",
}

var analysisEnv = &analysis.Env{
	Delay:      "DOSSIER_ANALYSIS_DELAY",
	Models:     "DOSSIER_ANALYSIS_MODELS",
	OCREngines: "DOSSIER_ANALYSIS_OCR_ENGINES",
}

// Config is the root configuration for the Dossier service and CLI.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Corpus          corpus.Config   `toml:"corpus"`
	Analysis        analysis.Config `toml:"analysis"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the DOSSIER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvDossierEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from the working directory.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom reads the base config at path (if present), applies the
// config.<DOSSIER_ENV>.toml overlay from the same directory, and finalizes
// all values. A missing base file leaves defaults and environment variables
// to provide all configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Corpus.Merge(&overlay.Corpus)
	c.Analysis.Merge(&overlay.Analysis)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Corpus.Finalize(corpusEnv); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if err := c.Analysis.Finalize(analysisEnv); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvDossierShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvDossierVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	env := os.Getenv(EnvDossierEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
