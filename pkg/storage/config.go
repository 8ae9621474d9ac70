package storage

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
)

// Provider names accepted by Config.Provider.
const (
	ProviderFilesystem = "filesystem"
	ProviderAzure      = "azure"
)

// Config selects a storage provider and carries the parameters for each.
// Root and Pattern apply to the filesystem provider; the Azure fields apply
// to the azure provider. Pattern filters Walk results for both.
type Config struct {
	Provider         string `toml:"provider"`
	Root             string `toml:"root"`
	Pattern          string `toml:"pattern"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	Root             string
	Pattern          string
	ContainerName    string
	ConnectionString string
	AccountURL       string
	MaxListSize      string
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
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
	if overlay.Pattern != "" {
		c.Pattern = overlay.Pattern
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderFilesystem
	}
	if c.Root == "" {
		c.Root = "corpus"
	}
	if c.Pattern == "" {
		c.Pattern = "**"
	}
	if c.ContainerName == "" {
		c.ContainerName = "corpus"
	}
	if c.MaxListSize == 0 {
		c.MaxListSize = 50
	}
	if c.MaxListSize > MaxListCap {
		c.MaxListSize = MaxListCap
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setString(env.Provider, &c.Provider)
	setString(env.Root, &c.Root)
	setString(env.Pattern, &c.Pattern)
	setString(env.ContainerName, &c.ContainerName)
	setString(env.ConnectionString, &c.ConnectionString)
	setString(env.AccountURL, &c.AccountURL)

	if env.MaxListSize != "" {
		if v := os.Getenv(env.MaxListSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxListSize = min(int32(n), MaxListCap)
			}
		}
	}
}

func (c *Config) validate() error {
	if !doublestar.ValidatePattern(c.Pattern) {
		return fmt.Errorf("invalid pattern %q", c.Pattern)
	}

	switch c.Provider {
	case ProviderFilesystem:
		if c.Root == "" {
			return fmt.Errorf("root required")
		}
	case ProviderAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProvider, c.Provider)
	}
	return nil
}
