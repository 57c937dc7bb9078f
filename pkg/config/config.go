// Package config defines the runtime configuration of the bridge service:
// listen port, documentation toggle, and the per-request operation deadline.
// Values come from NAUTILUS_-prefixed environment variables; the network and
// pricing registry is compiled into the binary and not configurable here.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the service settings. Use Validate to fill implicit defaults
// and check bounds.
type Config struct {
	// Port is the HTTP listen port. Default: 3000.
	Port int `koanf:"port"`
	// EnableDocs mounts the interactive API documentation under /docs.
	EnableDocs bool `koanf:"use_swagger"`
	// RequestTimeout bounds each lifecycle operation, session setup
	// included. Default: 60s.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Load reads NAUTILUS_* environment variables (NAUTILUS_PORT,
// NAUTILUS_USE_SWAGGER, NAUTILUS_REQUEST_TIMEOUT) and returns a validated
// configuration.
func Load() (Config, error) {
	k := koanf.New(".")

	provider := env.Provider("NAUTILUS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "NAUTILUS_"))
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate normalizes the configuration by applying implicit defaults for
// Port and RequestTimeout and verifies the port is in range.
func (c *Config) Validate() error {
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}

	return nil
}
