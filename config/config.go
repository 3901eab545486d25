// Package config loads javahl settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "javahl.toml"

type Config struct {
	// QuietPeriodMs is how long a buffer must stay unchanged before it is
	// highlighted again.
	QuietPeriodMs    int      `toml:"quiet_period_ms"`
	SourceRoots      []string `toml:"source_roots"`
	Include          []string `toml:"include"`
	Exclude          []string `toml:"exclude"`
	RespectGitignore *bool    `toml:"respect_gitignore"`
	Theme            string   `toml:"theme"`
	// LogLevel is the commonlog verbosity: 0 logs errors only and each
	// step adds a level, up to 4 for debug output.
	LogLevel int    `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration at path and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.resolveRoots(filepath.Dir(path))
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRoots makes relative source roots relative to dir, the directory
// holding the configuration file.
func (c *Config) resolveRoots(dir string) {
	for i, root := range c.SourceRoots {
		if !filepath.IsAbs(root) {
			c.SourceRoots[i] = filepath.Join(dir, root)
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.QuietPeriodMs < 0 {
		errs = append(errs, fmt.Errorf("quiet_period_ms=%d must not be negative", c.QuietPeriodMs))
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid glob %q", pattern))
		}
	}
	if c.LogLevel < 0 {
		errs = append(errs, fmt.Errorf("log_level=%d must not be negative", c.LogLevel))
	}
	return errors.Join(errs...)
}

func (c *Config) QuietPeriodOrDefault() time.Duration {
	if c.QuietPeriodMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.QuietPeriodMs) * time.Millisecond
}

func (c *Config) IncludeOrDefault() []string {
	if len(c.Include) == 0 {
		return []string{"**/*.java"}
	}
	return c.Include
}

// RespectGitignoreOrDefault is true unless respect_gitignore is set to
// false.
func (c *Config) RespectGitignoreOrDefault() bool {
	if c.RespectGitignore == nil {
		return true
	}
	return *c.RespectGitignore
}

func (c *Config) ThemeOrDefault() string {
	if c.Theme == "" {
		return "monokai"
	}
	return c.Theme
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"JAVAHL_SOURCE_ROOT", func(v string) {
			if v != "" {
				cfg.SourceRoots = strings.Split(v, string(os.PathListSeparator))
			}
		}},
		{"JAVAHL_THEME", func(v string) {
			if v != "" {
				cfg.Theme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}
