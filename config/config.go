package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".moviefare"))
		}

		// Check /etc
		v.AddConfigPath("/etc/moviefare/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("providers.cache_ttl", 5*time.Minute)
	v.SetDefault("providers.cinemaworld_cache_key", "cinemaworld")
	v.SetDefault("providers.filmworld_cache_key", "filmworld")
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.max_retries", 3)

	// Auth defaults
	v.SetDefault("auth.issuer", "moviefare")
	v.SetDefault("auth.audience", "moviefare")
	v.SetDefault("auth.token_ttl", time.Hour)

	// Server defaults
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.cors_origin", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Providers.CinemaWorldURL == "" {
		return fmt.Errorf("providers.cinemaworld_url is required")
	}

	if cfg.Providers.FilmWorldURL == "" {
		return fmt.Errorf("providers.filmworld_url is required")
	}

	if cfg.Providers.AccessToken == "" {
		return fmt.Errorf("providers.access_token is required")
	}

	if cfg.Providers.CacheTTL <= 0 {
		return fmt.Errorf("providers.cache_ttl must be positive")
	}

	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}

	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return fmt.Errorf("auth.username and auth.password are required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
