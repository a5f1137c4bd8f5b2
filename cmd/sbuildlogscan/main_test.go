// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jelmer/buildlogscan/internal/cliutil"
	"github.com/jelmer/buildlogscan/internal/config"
)

func banner(title string) []string {
	sep := "+" + strings.Repeat("-", 78) + "+"
	return []string{sep, "|" + title + "|", sep}
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassifyBuildFailure(t *testing.T) {
	logger, err := cliutil.NewLogger("error", nil)
	if err != nil {
		t.Fatal(err)
	}

	var lines []string
	lines = append(lines, banner("Build")...)
	lines = append(lines, "building...")
	lines = append(lines, "gcc: error: 'foo.h' file not found")
	lines = append(lines, banner("Summary")...)
	lines = append(lines, "Fail-Stage: build")

	path := writeLog(t, lines...)
	f, err := classify(context.Background(), nil, logger, config.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.Description, "build") {
		t.Errorf("classify() finding = %+v, want a description mentioning the build stage", f)
	}
}

func TestClassifyMissingFile(t *testing.T) {
	logger, err := cliutil.NewLogger("error", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := classify(context.Background(), nil, logger, config.Default(), filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Fatal("classify on missing file = nil error, want error")
	}
}
