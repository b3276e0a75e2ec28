// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the analog clock configuration file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/imankur/analogclock/internal/logger"
)

const (
	DefaultWindowSize = 320 // Dp
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"

	envPrefix = "ANALOGCLOCK_"
)

// Images names the files used for the clock layers. Empty entries select
// the built-in images.
type Images struct {
	Dial   string `yaml:"dial"`
	Hour   string `yaml:"hour"`
	Minute string `yaml:"minute"`
	Second string `yaml:"second"`
}

// Window is the initial window size in Dp.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	// ShowSecondHand is a pointer to distinguish false from unset.
	ShowSecondHand *bool  `yaml:"show_second_hand"`
	TimeZone       string `yaml:"time_zone"`
	Images         Images `yaml:"images"`
	Window         Window `yaml:"window"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	MetricsAddr    string `yaml:"metrics_addr"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result. An empty path skips the file.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SecondHand reports whether the second hand is shown.
func (c *Config) SecondHand() bool {
	return c.ShowSecondHand == nil || *c.ShowSecondHand
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWindowSize
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultWindowSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "SHOW_SECOND_HAND"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSHOW_SECOND_HAND: %w", envPrefix, err)
		}
		c.ShowSecondHand = &b
	}
	strs := map[string]*string{
		"TIME_ZONE":    &c.TimeZone,
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FORMAT":   &c.LogFormat,
		"METRICS_ADDR": &c.MetricsAddr,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	return nil
}
