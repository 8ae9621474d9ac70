package corpus

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultArchiveRatio = 0.2

// Config controls synthetic corpus generation and watching. ArchiveRatio and
// Watch are pointers so an explicit zero or false survives defaults and
// overlays.
type Config struct {
	Count        int      `toml:"count"`
	Seed         uint64   `toml:"seed"`
	ArchiveRatio *float64 `toml:"archive_ratio"`
	Watch        *bool    `toml:"watch"`
	Debounce     string   `toml:"debounce"`
}

// Env maps config fields to environment variable names.
type Env struct {
	Count        string
	Seed         string
	ArchiveRatio string
	Watch        string
	Debounce     string
}

// DebounceDuration parses Debounce into a time.Duration.
func (c *Config) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(c.Debounce)
	return d
}

// Ratio returns the archive share of a generated batch.
func (c *Config) Ratio() float64 {
	if c.ArchiveRatio == nil {
		return defaultArchiveRatio
	}
	return *c.ArchiveRatio
}

// WatchEnabled reports whether the server should watch the corpus root.
func (c *Config) WatchEnabled() bool {
	return c.Watch != nil && *c.Watch
}

// Archives returns the number of archive artifacts in a generated batch.
func (c *Config) Archives() int {
	return archiveCount(c.Count, c.Ratio())
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields the overlay sets.
func (c *Config) Merge(overlay *Config) {
	if overlay.Count != 0 {
		c.Count = overlay.Count
	}
	if overlay.Seed != 0 {
		c.Seed = overlay.Seed
	}
	if overlay.ArchiveRatio != nil {
		c.ArchiveRatio = overlay.ArchiveRatio
	}
	if overlay.Watch != nil {
		c.Watch = overlay.Watch
	}
	if overlay.Debounce != "" {
		c.Debounce = overlay.Debounce
	}
}

func (c *Config) loadDefaults() {
	if c.Count == 0 {
		c.Count = 52
	}
	if c.Seed == 0 {
		c.Seed = 2026
	}
	if c.ArchiveRatio == nil {
		c.ArchiveRatio = new(defaultArchiveRatio)
	}
	if c.Watch == nil {
		c.Watch = new(false)
	}
	if c.Debounce == "" {
		c.Debounce = "250ms"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Count); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Count = n
		}
	}
	if v := lookup(env.Seed); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := lookup(env.ArchiveRatio); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			c.ArchiveRatio = &r
		}
	}
	if v := lookup(env.Watch); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = &b
		}
	}
	if v := lookup(env.Debounce); v != "" {
		c.Debounce = v
	}
}

func (c *Config) validate() error {
	if c.Count < 1 {
		return fmt.Errorf("count must be positive")
	}
	if r := c.Ratio(); r < 0 || r > 1 {
		return fmt.Errorf("archive_ratio must be between 0 and 1")
	}
	if _, err := time.ParseDuration(c.Debounce); err != nil {
		return fmt.Errorf("invalid debounce: %w", err)
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
