package reshadx

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/reshadx/reshadx-go/internal/api"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig.
const EnvPrefix = "RESHADX_"

// Config is file and environment based client configuration. LogLevel and
// LogPretty are not used by the client itself; they are for programs that
// build a logger to pass with WithLogger.
type Config struct {
	APIKey      string        `koanf:"api_key"`
	Environment Environment   `koanf:"environment" validate:"omitempty,oneof=production sandbox"`
	BaseURL     string        `koanf:"base_url" validate:"omitempty,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"gte=0"`

	// MaxRetries of 0 keeps the default; -1 disables retries.
	MaxRetries int           `koanf:"max_retries" validate:"gte=-1"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`
	LogLevel   string        `koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogPretty  bool          `koanf:"log_pretty"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Environment: EnvironmentProduction,
		Timeout:     api.DefaultTimeout,
		MaxRetries:  api.DefaultMaxRetries,
		RetryDelay:  api.DefaultRetryDelay,
		LogLevel:    "info",
	}
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables prefixed with RESHADX_ (highest priority)
// 2. The YAML file at path, if path is not empty
// 3. Default values (lowest priority)
//
// RESHADX_API_KEY sets api_key, RESHADX_TIMEOUT sets timeout, and so on.
// Durations are written as "30s" or "1500ms".
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	d := DefaultConfig()
	defaults := map[string]any{
		"environment": string(d.Environment),
		"timeout":     d.Timeout.String(),
		"max_retries": d.MaxRetries,
		"retry_delay": d.RetryDelay.String(),
		"log_level":   d.LogLevel,
		"log_pretty":  d.LogPretty,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}

// Validate checks the configuration values. A missing API key is reported by
// NewFromConfig, not here, so that it can still be supplied another way.
func (c Config) Validate() error {
	if err := validateParams(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Options converts the configuration into client options.
func (c Config) Options() []Option {
	opts := []Option{
		WithEnvironment(c.Environment),
		WithRetries(c.MaxRetries),
	}
	if c.BaseURL != "" {
		opts = append(opts, WithBaseURL(c.BaseURL))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.RetryDelay > 0 {
		opts = append(opts, WithRetryDelay(c.RetryDelay))
	}
	return opts
}

// NewFromConfig creates a client from cfg. opts are applied after the
// configuration and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.APIKey, append(cfg.Options(), opts...)...)
}
