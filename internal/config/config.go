package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // metrics timezones must resolve in minimal containers

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		AcquireTimeout  string `yaml:"acquire_timeout" env:"DB_ACQUIRE_TIMEOUT"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		Migrations      bool   `yaml:"migrations" env:"DB_MIGRATIONS"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"SECRET_KEY"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		CookieName   string `yaml:"cookie_name" env:"AUTH_COOKIE_NAME"`
		CookieSecure bool   `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE"`
	} `yaml:"auth"`

	Redis struct {
		URI      string `yaml:"uri" env:"REDIS_URI"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Metrics struct {
		Timezone string `yaml:"timezone" env:"METRICS_TIMEZONE"`
		Days     int    `yaml:"days" env:"METRICS_DAYS"`
	} `yaml:"metrics"`

	Seed struct {
		Enabled  bool `yaml:"enabled" env:"SEED_ENABLED"`
		Students int  `yaml:"students" env:"SEED_STUDENTS"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// Required settings
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrMissingSecretKey   = errors.New("SECRET_KEY is not set")
)

// LoadConfig loads configuration from .env, a YAML file and environment variables,
// in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Database.MinConns = 1
	config.Database.MaxConns = 10
	config.Database.AcquireTimeout = "5s"
	config.Database.ConnMaxLifetime = "1h"
	config.Database.Migrations = true

	config.JWT.Expiration = "168h"
	config.JWT.Issuer = "ssis"

	config.Auth.CookieName = "access_token"

	config.Metrics.Timezone = "UTC"
	config.Metrics.Days = 7

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}

	if strings.TrimSpace(config.JWT.Secret) == "" {
		return ErrMissingSecretKey
	}

	if config.Database.MinConns < 0 || config.Database.MaxConns < 1 {
		return fmt.Errorf("database pool bounds must be positive (min=%d, max=%d)",
			config.Database.MinConns, config.Database.MaxConns)
	}

	if config.Database.MinConns > config.Database.MaxConns {
		return fmt.Errorf("database min_conns (%d) exceeds max_conns (%d)",
			config.Database.MinConns, config.Database.MaxConns)
	}

	for name, value := range map[string]string{
		"database acquire_timeout":   config.Database.AcquireTimeout,
		"database conn_max_lifetime": config.Database.ConnMaxLifetime,
		"JWT expiration":             config.JWT.Expiration,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if _, err := time.LoadLocation(config.Metrics.Timezone); err != nil {
		return fmt.Errorf("invalid metrics timezone: %w", err)
	}

	if config.Metrics.Days < 1 {
		return fmt.Errorf("metrics days must be at least 1")
	}

	return nil
}

// MetricsLocation returns the location used for daily metric buckets.
func (c *Config) MetricsLocation() *time.Location {
	loc, err := time.LoadLocation(c.Metrics.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
