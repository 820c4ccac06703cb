// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; credentials go to the keyring.
// Values come from, in increasing priority: defaults, the YAML file, a local
// .env file and LANGFLOW_SESSION_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/zkfarmoor/langflow/internal/logger"
	"github.com/zkfarmoor/langflow/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// BaseURL is the identity service root, e.g. http://localhost:7860.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Endpoints are the paths appended to BaseURL.
	Endpoints Endpoints `mapstructure:"endpoints" validate:"required"`
	// RequestTimeout bounds every HTTP call to the identity service.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level"`
	// CookiePath is the scope credentials are written under.
	CookiePath string `mapstructure:"cookie_path" validate:"required,startswith=/"`
	// ProfileCacheTTL is how long a fetched profile is reused for the same access token. Zero disables caching.
	ProfileCacheTTL time.Duration `mapstructure:"profile_cache_ttl" validate:"gte=0"`
	// ProfileCacheSize caps the number of cached profiles.
	ProfileCacheSize int `mapstructure:"profile_cache_size" validate:"gt=0"`
	// DedupeRefresh rejects a refresh while another one is in flight.
	DedupeRefresh bool `mapstructure:"dedupe_refresh"`
	// UserAgent overrides the User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// Keyring configures the credential store.
	Keyring KeyringConfig `mapstructure:"keyring" validate:"required"`

	// ParsedLogLevel is set by ValidateConfig.
	ParsedLogLevel zapcore.Level `mapstructure:"-"`
}

// Endpoints lists identity service paths.
type Endpoints struct {
	AutoLogin   string `mapstructure:"auto_login" yaml:"auto_login" validate:"required,startswith=/"`
	CurrentUser string `mapstructure:"current_user" yaml:"current_user" validate:"required,startswith=/"`
	Refresh     string `mapstructure:"refresh" yaml:"refresh" validate:"required,startswith=/"`
	Version     string `mapstructure:"version" yaml:"version" validate:"required,startswith=/"`
}

// KeyringConfig selects and tunes keyring backends.
type KeyringConfig struct {
	ServiceName string `mapstructure:"service_name" yaml:"service_name" validate:"required"`
	// Backends restricts the allowed backends; empty means the platform default.
	Backends []string `mapstructure:"backends" yaml:"backends,omitempty" validate:"dive,oneof=keychain wincred secret-service kwallet pass keyctl file"`
	// FileDir is where the file backend keeps items; defaults to the XDG state dir.
	FileDir string `mapstructure:"file_dir" yaml:"file_dir,omitempty"`
	// FilePassword unlocks the file backend without prompting.
	FilePassword string `mapstructure:"file_password" yaml:"-"`
}

const (
	// DefaultConfigFilename is the file looked up in the XDG config dir.
	DefaultConfigFilename = "config.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LANGFLOW_SESSION"

	// DefaultBaseURL points at a local Langflow backend.
	DefaultBaseURL = "http://localhost:7860"
	// DefaultRequestTimeout mirrors the timeout used for all identity calls.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultProfileCacheTTL is how long a profile is reused.
	DefaultProfileCacheTTL = 10 * time.Minute
	// DefaultProfileCacheSize caps cached profiles.
	DefaultProfileCacheSize = 16
	// DefaultServiceName namespaces keyring items.
	DefaultServiceName = "langflow-session"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidConfig wraps field validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrConfigNotFound indicates that an explicitly requested config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
)

//nolint:gochecknoglobals // validator caches struct metadata; one instance is enough.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Endpoints: Endpoints{
			AutoLogin:   "/api/v1/auto_login",
			CurrentUser: "/api/v1/users/whoami",
			Refresh:     "/api/refresh-token",
			Version:     "/api/v1/version",
		},
		RequestTimeout:   DefaultRequestTimeout,
		LogLevel:         "warn",
		CookiePath:       "/",
		ProfileCacheTTL:  DefaultProfileCacheTTL,
		ProfileCacheSize: DefaultProfileCacheSize,
		Keyring: KeyringConfig{
			ServiceName: DefaultServiceName,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFilename), nil
}

// Load reads configuration. An empty filename means the XDG location, whose
// absence is not an error; an explicit filename must exist.
func Load(configFilename string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configFilename != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		configFilename = p
	}

	if _, err := os.Stat(configFilename); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configFilename)
		}
		logger.Debugf(context.Background(), "No config file at %s, using defaults", configFilename)
	} else {
		v.SetConfigFile(configFilename)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.LogLevel)
	}
	cfg.ParsedLogLevel = level

	return nil
}

// Save writes configuration as YAML with 0600 permissions.
func Save(cfg *Config, filename string) error {
	if filename == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		filename = p
	}

	b, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	return os.WriteFile(filename, b, 0o600)
}

// fileConfig is the on-disk shape; durations are written as strings.
type fileConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Endpoints        Endpoints     `yaml:"endpoints"`
	RequestTimeout   string        `yaml:"request_timeout"`
	LogLevel         string        `yaml:"log_level"`
	CookiePath       string        `yaml:"cookie_path"`
	ProfileCacheTTL  string        `yaml:"profile_cache_ttl"`
	ProfileCacheSize int           `yaml:"profile_cache_size"`
	DedupeRefresh    bool          `yaml:"dedupe_refresh"`
	UserAgent        string        `yaml:"user_agent,omitempty"`
	Keyring          KeyringConfig `yaml:"keyring"`
}

func toFile(cfg *Config) fileConfig {
	return fileConfig{
		BaseURL:          cfg.BaseURL,
		Endpoints:        cfg.Endpoints,
		RequestTimeout:   cfg.RequestTimeout.String(),
		LogLevel:         cfg.LogLevel,
		CookiePath:       cfg.CookiePath,
		ProfileCacheTTL:  cfg.ProfileCacheTTL.String(),
		ProfileCacheSize: cfg.ProfileCacheSize,
		DedupeRefresh:    cfg.DedupeRefresh,
		UserAgent:        cfg.UserAgent,
		Keyring:          cfg.Keyring,
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("endpoints.auto_login", d.Endpoints.AutoLogin)
	v.SetDefault("endpoints.current_user", d.Endpoints.CurrentUser)
	v.SetDefault("endpoints.refresh", d.Endpoints.Refresh)
	v.SetDefault("endpoints.version", d.Endpoints.Version)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cookie_path", d.CookiePath)
	v.SetDefault("profile_cache_ttl", d.ProfileCacheTTL)
	v.SetDefault("profile_cache_size", d.ProfileCacheSize)
	v.SetDefault("dedupe_refresh", d.DedupeRefresh)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("keyring.service_name", d.Keyring.ServiceName)
	v.SetDefault("keyring.backends", []string{})
	v.SetDefault("keyring.file_dir", "")
	v.SetDefault("keyring.file_password", "")
}
