package analysis

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds analysis pipeline settings.
// Delay is a cosmetic pause before assembly and is never interrupted.
type Config struct {
	Delay      string   `toml:"delay"`
	Models     []string `toml:"models"`
	OCREngines []string `toml:"ocr_engines"`
}

// Env maps config fields to environment variable names.
// List variables are comma-separated.
type Env struct {
	Delay      string
	Models     string
	OCREngines string
}

// DelayDuration parses Delay into a time.Duration.
func (c *Config) DelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.Delay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Delay != "" {
		c.Delay = overlay.Delay
	}
	if len(overlay.Models) > 0 {
		c.Models = overlay.Models
	}
	if len(overlay.OCREngines) > 0 {
		c.OCREngines = overlay.OCREngines
	}
}

func (c *Config) loadDefaults() {
	if c.Delay == "" {
		c.Delay = "1200ms"
	}
	if len(c.Models) == 0 {
		c.Models = []string{"Gemini 1.5 Flash", "Mistral 7B"}
	}
	if len(c.OCREngines) == 0 {
		c.OCREngines = []string{"PaddleOCR", "Tesseract"}
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Delay); v != "" {
		c.Delay = v
	}
	if list := splitList(lookup(env.Models)); len(list) > 0 {
		c.Models = list
	}
	if list := splitList(lookup(env.OCREngines)); len(list) > 0 {
		c.OCREngines = list
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model required")
	}
	if len(c.OCREngines) == 0 {
		return fmt.Errorf("at least one ocr engine required")
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func splitList(v string) []string {
	var out []string
	for item := range strings.SplitSeq(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
