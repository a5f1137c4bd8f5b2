// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildlogscan.yaml")
	data := `
cache: /var/cache/buildlogscan/classifications.db
log_level: debug
known_issues:
  - issue: golang/go#12345
    regexp: "undefined reference to .pthread_create."
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Cache:    "/var/cache/buildlogscan/classifications.db",
		LogLevel: "debug",
		KnownIssues: []KnownIssue{
			{Issue: "golang/go#12345", Regexp: "undefined reference to .pthread_create."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load on missing file = nil error, want error")
	}
}

func TestDefault(t *testing.T) {
	if Default().LogLevel != "warn" {
		t.Errorf("Default().LogLevel = %q, want warn", Default().LogLevel)
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv("BUILDLOGSCAN_CONFIG", "/etc/buildlogscan/config.yaml")
	if got := DefaultPath(); got != "/etc/buildlogscan/config.yaml" {
		t.Errorf("DefaultPath() = %q, want /etc/buildlogscan/config.yaml", got)
	}
}

func TestDefaultPathFallsBackToHome(t *testing.T) {
	t.Setenv("BUILDLOGSCAN_CONFIG", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".config", "buildlogscan", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestResolveExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildlogscan.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LogLevel != "debug" {
		t.Errorf("Resolve(%q).LogLevel = %q, want debug", path, got.LogLevel)
	}
}

func TestResolveExplicitMissingPathIsError(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Resolve on missing explicit path = nil error, want error")
	}
}

func TestResolveDefaultMissingIsNotError(t *testing.T) {
	t.Setenv("BUILDLOGSCAN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	got, err := Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Resolve(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDefaultFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache: /tmp/x.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUILDLOGSCAN_CONFIG", path)
	got, err := Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Cache != "/tmp/x.db" {
		t.Errorf("Resolve(\"\").Cache = %q, want /tmp/x.db", got.Cache)
	}
}
