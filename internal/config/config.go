package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config is the runtime configuration for one scribe invocation.
// It is loaded once in the command layer and passed down explicitly.
type Config struct {
	BaseURL     string        `env:"SCRIBE_LLM_URL, default=http://localhost:18080"`
	Model       string        `env:"SCRIBE_MODEL"`
	Temperature float64       `env:"SCRIBE_TEMPERATURE, default=0.2"`
	Timeout     time.Duration `env:"SCRIBE_TIMEOUT, default=0s"`

	MaxChars   int `env:"SCRIBE_MAX_CHARS, default=12000"`
	MaxRetries int `env:"SCRIBE_MAX_RETRIES, default=3"`

	// Shrink heuristic applied after a context-size rejection.
	ShrinkFactor   float64 `env:"SCRIBE_SHRINK_FACTOR, default=0.85"`
	ShrinkMinRatio float64 `env:"SCRIBE_SHRINK_MIN_RATIO, default=0.20"`
	ShrinkMaxRatio float64 `env:"SCRIBE_SHRINK_MAX_RATIO, default=0.95"`
	MinChars       int     `env:"SCRIBE_MIN_CHARS, default=2000"`

	DiscordWebhookURL string `env:"SCRIBE_DISCORD_WEBHOOK_URL"`

	LogLevel  string `env:"SCRIBE_LOG_LEVEL, default=warn"`
	LogFormat string `env:"SCRIBE_LOG_FORMAT, default=text"`
}

// Load reads the configuration from the process environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("SCRIBE_LLM_URL must not be empty"))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.MaxChars <= 0 {
		errs = append(errs, fmt.Errorf("max chars must be positive, got %d", c.MaxChars))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries))
	}
	if c.MinChars <= 0 {
		errs = append(errs, fmt.Errorf("min chars must be positive, got %d", c.MinChars))
	}
	if c.MaxChars > 0 && c.MinChars > c.MaxChars {
		errs = append(errs, fmt.Errorf("min chars (%d) must not exceed max chars (%d)", c.MinChars, c.MaxChars))
	}
	if c.ShrinkFactor <= 0 {
		errs = append(errs, fmt.Errorf("shrink factor must be positive, got %g", c.ShrinkFactor))
	}
	if c.ShrinkMinRatio <= 0 || c.ShrinkMinRatio > 1 {
		errs = append(errs, fmt.Errorf("shrink min ratio must be in (0, 1], got %g", c.ShrinkMinRatio))
	}
	if c.ShrinkMaxRatio <= 0 || c.ShrinkMaxRatio > 1 {
		errs = append(errs, fmt.Errorf("shrink max ratio must be in (0, 1], got %g", c.ShrinkMaxRatio))
	}
	if c.ShrinkMinRatio > c.ShrinkMaxRatio {
		errs = append(errs, fmt.Errorf("shrink min ratio (%g) exceeds max ratio (%g)", c.ShrinkMinRatio, c.ShrinkMaxRatio))
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log level %q (valid: %s)", c.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log format %q (valid: %s)", c.LogFormat, strings.Join(validLogFormats, ", ")))
	}

	return errors.Join(errs...)
}
