package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment overrides, e.g.
// BLOGD_AUTH_TOKEN_SECRET overrides auth.token.secret.
const envPrefix = "BLOGD"

// LoaderOptions controls where Load looks for files.
type LoaderOptions struct {
	// ConfigFile is an explicit config path. If empty, standard locations
	// are searched.
	ConfigFile string
	// EnvFile is an explicit .env path. If empty, ./.env is used when present.
	EnvFile string
}

// Load reads configuration from a YAML file (if found) and the
// environment, applies defaults, and validates. A missing config file is
// not an error: env-only configuration is a supported deployment mode.
func Load(opts LoaderOptions) (*Config, error) {
	loadEnvFile(opts.EnvFile)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	// Bind the keys viper should read from the environment even when they
	// are absent from the file.
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// envKeys are the settings that may arrive via environment only.
var envKeys = []string{
	"environment",
	"logging.level",
	"logging.format",
	"server.host",
	"server.port",
	"database.dsn",
	"auth.token.secret",
	"auth.token.access_token_ttl",
	"auth.password.algorithm",
	"tracing.enabled",
	"tracing.endpoint",
}

// findConfigFile searches standard locations for a config file.
func findConfigFile() string {
	searchPaths := []string{
		"./config.yml",
		"./config/config.yml",
		"./cmd/blogd/config.yml",
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadEnvFile loads a .env file when one exists. Failures are silent: a
// missing .env is the normal case outside development.
func loadEnvFile(explicit string) {
	if explicit != "" {
		_ = godotenv.Load(explicit)
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
