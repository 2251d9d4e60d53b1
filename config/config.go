// Package config loads blogd's configuration from YAML and environment
// variables. Every section follows the same ApplyDefaults/Validate
// convention, and the loaded value is immutable after startup: components
// receive their section by value and nothing ever writes it back.
package config

import (
	"fmt"

	"github.com/kbukum/blogd/auth/password"
	"github.com/kbukum/blogd/auth/token"
	"github.com/kbukum/blogd/database"
	"github.com/kbukum/blogd/logger"
	"github.com/kbukum/blogd/server"
)

// AuthConfig groups the token and password hashing configuration.
type AuthConfig struct {
	Token    token.Config    `yaml:"token" mapstructure:"token"`
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// Config is the root configuration for the blogd service.
type Config struct {
	Name        string          `yaml:"name" mapstructure:"name"`
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Server      server.Config   `yaml:"server" mapstructure:"server"`
	Database    database.Config `yaml:"database" mapstructure:"database"`
	Auth        AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Tracing     TracingConfig   `yaml:"tracing" mapstructure:"tracing"`
}

// TracingConfig configures the optional OpenTelemetry export.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "blogd"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.Token.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	if err := c.Auth.Token.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	if err := c.Auth.Password.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	return nil
}
