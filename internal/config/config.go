// Package config provides Viper-based configuration loading for fashionscape.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where log entries go: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// TelnetConfig holds settings for serving the outfit shell over Telnet.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxSessions caps concurrent shell sessions; 0 means unlimited.
	MaxSessions int `mapstructure:"max_sessions"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// FashionscapeConfig holds swap, randomizer, and content settings.
type FashionscapeConfig struct {
	// RandomizerIntelligence is one of "none", "low", "moderate", "high".
	RandomizerIntelligence string `mapstructure:"randomizer_intelligence"`
	// ExcludeBaseModels stops Shuffle from randomizing kits.
	ExcludeBaseModels bool `mapstructure:"exclude_base_models"`
	// ExcludeNonStandardItems keeps non-standard catalog items out of Shuffle.
	ExcludeNonStandardItems bool `mapstructure:"exclude_non_standard_items"`
	// OutfitsDir receives exports written without an explicit path.
	OutfitsDir string `mapstructure:"outfits_dir"`
	// CatalogDir holds items/*.yaml, kits.yaml, and colors.yaml.
	CatalogDir string `mapstructure:"catalog_dir"`
	// ScorerScript is an optional Lua file defining scoring hooks.
	ScorerScript string `mapstructure:"scorer_script"`
	// Profile is the player profile loaded when no --profile flag is given.
	Profile string `mapstructure:"profile"`
	// EventBuffer is the channel buffer of each event subscriber.
	EventBuffer int `mapstructure:"event_buffer"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging      LoggingConfig      `mapstructure:"logging"`
	Telnet       TelnetConfig       `mapstructure:"telnet"`
	Fashionscape FashionscapeConfig `mapstructure:"fashionscape"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTelnet(c.Telnet); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFashionscape(c.Fashionscape); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if t.MaxSessions < 0 {
		errs = append(errs, fmt.Sprintf("telnet.max_sessions must be >= 0, got %d", t.MaxSessions))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFashionscape(f FashionscapeConfig) error {
	var errs []string
	validLevels := map[string]bool{"none": true, "low": true, "moderate": true, "high": true}
	if !validLevels[strings.ToLower(f.RandomizerIntelligence)] {
		errs = append(errs, fmt.Sprintf("fashionscape.randomizer_intelligence must be one of [none, low, moderate, high], got %q", f.RandomizerIntelligence))
	}
	if f.OutfitsDir == "" {
		errs = append(errs, "fashionscape.outfits_dir must not be empty")
	}
	if f.CatalogDir == "" {
		errs = append(errs, "fashionscape.catalog_dir must not be empty")
	}
	if f.EventBuffer < 1 {
		errs = append(errs, fmt.Sprintf("fashionscape.event_buffer must be >= 1, got %d", f.EventBuffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and FASHION_ environment
// overrides applied, ready for flag binding.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with FASHION_ prefix
	v.SetEnvPrefix("FASHION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("telnet.host", "127.0.0.1")
	v.SetDefault("telnet.port", 4100)
	v.SetDefault("telnet.read_timeout", "10m")
	v.SetDefault("telnet.write_timeout", "30s")
	v.SetDefault("telnet.max_sessions", 16)

	v.SetDefault("fashionscape.randomizer_intelligence", "low")
	v.SetDefault("fashionscape.exclude_base_models", false)
	v.SetDefault("fashionscape.exclude_non_standard_items", false)
	v.SetDefault("fashionscape.outfits_dir", "outfits")
	v.SetDefault("fashionscape.catalog_dir", "content/catalog")
	v.SetDefault("fashionscape.scorer_script", "")
	v.SetDefault("fashionscape.profile", "configs/player.yaml")
	v.SetDefault("fashionscape.event_buffer", 64)
}
