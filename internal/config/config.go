// Package config loads server settings from flags, environment, an
// optional YAML file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"misleadviz/internal/logging"
)

// EnvPrefix is prepended to every environment variable, e.g. MISLEADVIZ_ADDR.
const EnvPrefix = "MISLEADVIZ"

// DefaultAddr is the listen address when nothing else is configured.
const DefaultAddr = ":8080"

var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved server configuration.
type Config struct {
	Addr      string         `mapstructure:"addr"`
	BaseURL   string         `mapstructure:"base_url"`
	Log       logging.Config `mapstructure:"log"`
	Session   Session        `mapstructure:"session"`
	Countdown Countdown      `mapstructure:"countdown"`
	Actions   Actions        `mapstructure:"actions"`
}

type Session struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Cleanup time.Duration `mapstructure:"cleanup"`
}

type Countdown struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Actions is the per-session throttle on POSTed actions.
type Actions struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// SetDefaults registers every key so that env lookups resolve even without
// a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("base_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.cleanup", time.Minute)
	v.SetDefault("countdown.interval", time.Second)
	v.SetDefault("actions.rate", 20.0)
	v.SetDefault("actions.burst", 40)
}

// New returns a viper instance wired to the environment. cfgFile may be
// empty, in which case ./misleadviz.yaml is used when present.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("misleadviz")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file if one is set or found.
func Read(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// Load resolves the configuration. PORT overrides the listen port while the
// address is still the default.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && cfg.Addr == DefaultAddr {
		cfg.Addr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr is empty", ErrInvalid)
	case c.Session.TTL <= 0:
		return fmt.Errorf("%w: session.ttl must be positive", ErrInvalid)
	case c.Session.Cleanup < 0:
		return fmt.Errorf("%w: session.cleanup must not be negative", ErrInvalid)
	case c.Countdown.Interval <= 0:
		return fmt.Errorf("%w: countdown.interval must be positive", ErrInvalid)
	case c.Actions.Rate <= 0 || c.Actions.Burst <= 0:
		return fmt.Errorf("%w: actions.rate and actions.burst must be positive", ErrInvalid)
	}
	return nil
}
