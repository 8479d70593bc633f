package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProvidersConfig holds the movie provider endpoints and cache policy
type ProvidersConfig struct {
	CinemaWorldURL      string        `mapstructure:"cinemaworld_url"`
	FilmWorldURL        string        `mapstructure:"filmworld_url"`
	AccessToken         string        `mapstructure:"access_token"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	CinemaWorldCacheKey string        `mapstructure:"cinemaworld_cache_key"`
	FilmWorldCacheKey   string        `mapstructure:"filmworld_cache_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetries          int           `mapstructure:"max_retries"`
}

// AuthConfig holds the token signing settings and the login credentials
type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigin   string        `mapstructure:"cors_origin"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
