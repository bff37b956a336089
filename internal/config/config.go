// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package config loads charimport configuration from a YAML file with
// command-line flag overrides.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/jwinky/eqemu-char-import/internal/xdg"
)

// FileName is the well-known config file name.
const FileName = "dbconfig.yml"

// ErrNotFound indicates the config file does not exist. The run command maps
// it to its dedicated exit code.
var ErrNotFound = errors.New("config file not found")

// Database holds one connection target.
type Database struct {
	URL string `koanf:"url"`
}

// Config is the full charimport configuration.
type Config struct {
	// Queue is the import request queue database.
	Queue Database `koanf:"queue"`
	// Game is the game character database.
	Game Database `koanf:"game"`
	// MaxLevel caps the level a request may grant.
	MaxLevel int `koanf:"max_level"`
	// LockFile is the single-instance lock marker location.
	LockFile string `koanf:"lock_file"`
	// LogFormat selects "json" or "text" log output.
	LogFormat string `koanf:"log_format"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigDir(), FileName)
}

// Default returns a Config populated with defaults for everything except the
// two database targets, which have no sensible default.
func Default() *Config {
	return &Config{
		MaxLevel:  55,
		LockFile:  filepath.Join(xdg.RuntimeDir(), "charimport.pid"),
		LogFormat: "text",
	}
}

// Load reads the config file at path (DefaultPath when empty) and applies
// overrides from any explicitly-set flags. Flag names mirror config keys
// ("queue.url", "max_level", ...).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oops.Code("CONFIG_MISSING").With("path", path).Wrap(ErrNotFound)
		}
		return nil, oops.Code("CONFIG_STAT_FAILED").With("path", path).Wrap(err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, oops.Code("CONFIG_PARSE_FAILED").With("path", path).Wrap(err)
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").With("path", path).Wrap(err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Queue.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("queue.url is required")
	}
	if c.Game.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("game.url is required")
	}
	if c.MaxLevel < 1 {
		return oops.Code("CONFIG_INVALID").Errorf("max_level must be at least 1, got %d", c.MaxLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log_format must be \"json\" or \"text\", got %q", c.LogFormat)
	}
	return nil
}
