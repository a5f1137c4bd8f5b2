// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes the optional YAML config file buildlogscan
// and sbuildlogscan accept via --config, for settings that don't fit
// comfortably on the command line: a catalogue of known-issue
// regexps, default cache location, and logging defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// KnownIssue maps a description to the regexp that identifies it, so a
// config file can list known-flaky or known-broken failures once
// instead of repeating a command-line flag per issue.
type KnownIssue struct {
	Issue  string `yaml:"issue"`
	Regexp string `yaml:"regexp"`
}

// Config is the top-level shape of a buildlogscan config file.
type Config struct {
	// Cache is the default --cache path, used when --cache isn't
	// passed on the command line. Empty disables the cache.
	Cache string `yaml:"cache"`
	// LogLevel is the default --log-level.
	LogLevel string `yaml:"log_level"`
	// KnownIssues is consulted after classification to attach a
	// human-assigned issue name to a matched failure.
	KnownIssues []KnownIssue `yaml:"known_issues"`
}

// Default returns the configuration used when no --config file is given.
func Default() Config {
	return Config{LogLevel: "warn"}
}

// Load reads and decodes the YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the config file buildlogscan and sbuildlogscan
// consult when --config isn't passed: $BUILDLOGSCAN_CONFIG if set,
// otherwise ~/.config/buildlogscan/config.yaml. It returns "" if
// neither can be determined (e.g. $HOME is unset).
func DefaultPath() string {
	if p := os.Getenv("BUILDLOGSCAN_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "buildlogscan", "config.yaml")
}

// Resolve loads the config file at path, or at DefaultPath if path is
// empty. A missing file at the default path is not an error; it's
// only an error when an explicit, non-default path can't be read.
func Resolve(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
		if _, err := os.Stat(path); err != nil {
			return Default(), nil
		}
	}
	return Load(path)
}
