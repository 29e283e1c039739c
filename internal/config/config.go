package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names an optional YAML file layered between defaults and environment
const ConfigPathEnvVar = "CONFIG_PATH"

// Config 应用配置
type Config struct {
	Port     string `koanf:"port"`
	DBPath   string `koanf:"db_path"`
	Timezone string `koanf:"timezone"` // calendar used to decide "today" for a run

	JWTSecret       string        `koanf:"jwt_secret"`
	JWTIssuer       string        `koanf:"jwt_issuer"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// envKeys maps environment variables onto koanf paths
var envKeys = map[string]string{
	"PORT":              "port",
	"DB_PATH":           "db_path",
	"TIMEZONE":          "timezone",
	"JWT_SECRET":        "jwt_secret",
	"JWT_ISSUER":        "jwt_issuer",
	"ACCESS_TOKEN_TTL":  "access_token_ttl",
	"REFRESH_TOKEN_TTL": "refresh_token_ttl",
	"LOG_LEVEL":         "log_level",
	"LOG_FORMAT":        "log_format",
	"RATE_LIMIT_RPS":    "rate_limit_rps",
	"RATE_LIMIT_BURST":  "rate_limit_burst",
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:            ":8080",
		DBPath:          "./data/runquest.db",
		Timezone:        "UTC",
		JWTSecret:       "your-secret-key-change-in-production",
		JWTIssuer:       "runquest",
		AccessTokenTTL:  60 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		LogLevel:        "info",
		LogFormat:       "json",
		RateLimitRPS:    10,
		RateLimitBurst:  20,
	}
}

// Load 加载配置: defaults, then the optional YAML file, then environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform returns "" for variables that are not ours so koanf skips them
func envTransform(key string) string {
	return envKeys[strings.ToUpper(key)]
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit values must be positive")
	}
	return nil
}

// Location returns the configured time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
