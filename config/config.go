// SPDX-License-Identifier: MIT

// Package config loads kinship settings with the precedence
// env > config file > defaults, and validates the result.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/kinship/person"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full kinship configuration.
type Config struct {
	// Seed drives age resampling; 0 selects the builder default.
	Seed int64 `mapstructure:"seed" yaml:"seed" env:"KINSHIP_SEED"`

	// PlaceholderCount is the size of the offered placeholder set.
	PlaceholderCount int `mapstructure:"placeholder_count" yaml:"placeholder_count" env:"KINSHIP_PLACEHOLDER_COUNT" validate:"gte=0,lte=64"`

	// DefaultLifeExpectancy applies to persons without a species.
	DefaultLifeExpectancy float64 `mapstructure:"default_life_expectancy" yaml:"default_life_expectancy" env:"KINSHIP_DEFAULT_LIFE_EXPECTANCY" validate:"gt=0"`

	Species []SpeciesConfig `mapstructure:"species" yaml:"species" validate:"dive"`
	Log     LogConfig       `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// SpeciesConfig is one entry of the species table.
type SpeciesConfig struct {
	Name           string  `mapstructure:"name" yaml:"name" validate:"required"`
	LifeExpectancy float64 `mapstructure:"life_expectancy" yaml:"life_expectancy" validate:"gt=0"`
}

// LogConfig selects the logger flavour.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level" env:"KINSHIP_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development" yaml:"development" env:"KINSHIP_LOG_DEVELOPMENT"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled" env:"KINSHIP_METRICS_ENABLED"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" env:"KINSHIP_METRICS_NAMESPACE" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PlaceholderCount:      3,
		DefaultLifeExpectancy: 80,
		Species: []SpeciesConfig{
			{Name: "human", LifeExpectancy: 80},
		},
		Log:     LogConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "kinship"},
	}
}

// Load reads path (optional) over the defaults, overlays KINSHIP_* environment
// variables and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("placeholder_count", d.PlaceholderCount)
	v.SetDefault("default_life_expectancy", d.DefaultLifeExpectancy)

	species := make([]map[string]any, 0, len(d.Species))
	for _, s := range d.Species {
		species = append(species, map[string]any{"name": s.Name, "life_expectancy": s.LifeExpectancy})
	}
	v.SetDefault("species", species)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
}

// ApplyEnv overlays the KINSHIP_* variables that are set onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and species name uniqueness.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	seen := make(map[string]struct{}, len(c.Species))
	for _, s := range c.Species {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate species %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	return nil
}

// SpeciesTable returns the configured species keyed by name.
func (c Config) SpeciesTable() map[string]*person.Species {
	out := make(map[string]*person.Species, len(c.Species))
	for _, s := range c.Species {
		out[s.Name] = &person.Species{Name: s.Name, LifeExpectancy: s.LifeExpectancy}
	}

	return out
}
