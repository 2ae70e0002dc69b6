// Package config loads service configuration from an optional file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
// Values come from defaults, then the config file (if any), then environment variables.
type Config struct {
	Port           int    `mapstructure:"port"`
	DatabaseURL    string `mapstructure:"database_url"`
	VocabularyFile string `mapstructure:"vocabulary_file"` // empty means the built-in vocabulary
	UploadDir      string `mapstructure:"upload_dir"`
	MaxUploadMB    int    `mapstructure:"max_upload_mb"`
	UseBrowser     bool   `mapstructure:"use_browser"` // render job pages with headless Chrome when needed

	CORSOrigins []string `mapstructure:"cors_origins"`

	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// AuthConfig holds password hashing and token settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`
}

// RateLimitConfig configures per-client request limits.
// Whitelist and Blacklist are comma-separated IP lists.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       string        `mapstructure:"whitelist"`
	Blacklist       string        `mapstructure:"blacklist"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"port":                      "PORT",
	"database_url":              "DATABASE_URL",
	"vocabulary_file":           "VOCABULARY_FILE",
	"upload_dir":                "UPLOAD_DIR",
	"max_upload_mb":             "MAX_UPLOAD_MB",
	"use_browser":               "USE_BROWSER",
	"cors_origins":              "CORS_ORIGINS",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
	"auth.jwt_secret":           "JWT_SECRET",
	"auth.jwt_expiration_hours": "JWT_EXPIRATION_HOURS",
	"auth.bcrypt_cost":          "BCRYPT_COST",
	"auth.password_pepper":      "PASSWORD_PEPPER",

	"rate_limit.enabled":          "RATE_LIMIT_ENABLED",
	"rate_limit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"rate_limit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"rate_limit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"rate_limit.whitelist":        "RATE_LIMIT_WHITELIST",
	"rate_limit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("use_browser", false)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.jwt_expiration_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
}

// Load reads configuration into a Config. path may be empty, in which case only
// defaults and the environment are used. A nil v uses a fresh viper instance;
// pass the instance flags were bound to so flags take part in resolution.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// DatabaseURL is not required here since only some commands need it.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port))
	}
	if c.MaxUploadMB < 1 {
		errs = append(errs, fmt.Errorf("config error: 'max_upload_mb' must be positive"))
	}
	if c.UploadDir == "" {
		errs = append(errs, fmt.Errorf("config error: 'upload_dir' must not be empty"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("config error: 'log.format' must be console or json, got %q", c.Log.Format))
	}
	if c.Auth.JWTExpirationHours < 1 {
		errs = append(errs, fmt.Errorf("config error: 'auth.jwt_expiration_hours' must be at least 1"))
	}
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("config error: 'auth.bcrypt_cost' must be %d-%d, got %d",
			minBcryptCost, maxBcryptCost, c.Auth.BcryptCost))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit < 1 {
			errs = append(errs, fmt.Errorf("config error: 'rate_limit.default_limit' must be positive"))
		}
		if c.RateLimit.DefaultWindow <= 0 {
			errs = append(errs, fmt.Errorf("config error: 'rate_limit.default_window' must be positive"))
		}
	}

	return errors.Join(errs...)
}

// RequireDatabase returns an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable (or database_url config key) is required")
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
