package hypersave

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// Config groups the client settings that can come from the environment.
// Values are read from variables with the prefix "HYPERSAVE_", for example
// HYPERSAVE_API_KEY=... HYPERSAVE_TIMEOUT=10s .
type Config struct {
	APIKey  string        `envconfig:"API_KEY"`
	BaseURL string        `envconfig:"BASE_URL" default:"https://api.hypersave.io"`
	Timeout time.Duration `envconfig:"TIMEOUT"  default:"30s"`
	UserID  string        `envconfig:"USER_ID"`
	Debug   bool          `envconfig:"DEBUG"    default:"false"`
}

// LoadConfig populates Config from environment variables (prefix HYPERSAVE_).
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("HYPERSAVE", &c); err != nil {
		ve := hserrors.NewValidation("invalid HYPERSAVE_* environment: "+err.Error(), nil)
		ve.Cause = err
		return c, ve
	}
	return c, nil
}

// Options converts cfg into client options. Zero fields are skipped.
func (cfg Config) Options() []Option {
	var opts []Option
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.UserID != "" {
		opts = append(opts, WithDefaultUserID(cfg.UserID))
	}
	if cfg.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	return opts
}

// NewFromConfig constructs a Client from cfg. opts are applied after the
// options derived from cfg and therefore win.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	return New(cfg.APIKey, append(cfg.Options(), opts...)...)
}

// NewFromEnv constructs a Client from HYPERSAVE_* environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}
