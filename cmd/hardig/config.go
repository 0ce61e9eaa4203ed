// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// config is the configuration of an analysis run, as collected from the CLI
// flags and HARDIG_* environment variables.
type config struct {
	HAR          string        `mapstructure:"har"`
	DNS          string        `mapstructure:"dns"`
	Format       string        `mapstructure:"format"`
	Workers      uint          `mapstructure:"workers"`
	ProbeTimeout time.Duration `mapstructure:"probe-timeout"`
	Unprivileged bool          `mapstructure:"unprivileged"`
	Registrable  bool          `mapstructure:"registrable"`
	GeoIPDB      string        `mapstructure:"geoip-db"`
	GeoIPURL     string        `mapstructure:"geoip-url"`
	Netns        string        `mapstructure:"netns"`
	Container    string        `mapstructure:"container"`
	Progress     bool          `mapstructure:"progress"`
	Verbose      bool          `mapstructure:"verbose"`
}

const maxWorkers = 256

// newViper returns a viper instance that looks up HARDIG_* environment
// variables for any flags bound later, with dashes in flag names turned into
// underscores.
func newViper() *viper.Viper {
	vip := viper.New()
	vip.SetEnvPrefix("hardig")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	return vip
}

// loadConfig returns the validated configuration.
func loadConfig(vip *viper.Viper) (config, error) {
	var cfg config
	if err := vip.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	switch cfg.Format {
	case "table", "json":
	default:
		return config{}, fmt.Errorf("--format must be either 'table' or 'json', got '%s'", cfg.Format)
	}
	if cfg.Workers > maxWorkers {
		return config{}, fmt.Errorf("--workers out of range [0..%d]", maxWorkers)
	}
	if cfg.ProbeTimeout < 10*time.Millisecond {
		return config{}, fmt.Errorf("--probe-timeout must be at least 10ms")
	}
	if cfg.Netns != "" && cfg.Container != "" {
		return config{}, fmt.Errorf("--netns and --container are mutually exclusive")
	}
	if cfg.HAR == "" {
		return config{}, fmt.Errorf("--har must not be empty")
	}
	if cfg.GeoIPDB == "" {
		return config{}, fmt.Errorf("--geoip-db must not be empty")
	}
	return cfg, nil
}
