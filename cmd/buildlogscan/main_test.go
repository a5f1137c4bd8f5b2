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

	"github.com/jelmer/buildlogscan/internal/cache"
	"github.com/jelmer/buildlogscan/internal/cliutil"
	"github.com/jelmer/buildlogscan/internal/config"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassifyNoSpaceOnDevice(t *testing.T) {
	logger, err := cliutil.NewLogger("error", nil)
	if err != nil {
		t.Fatal(err)
	}
	path := writeLog(t,
		"cc1: some unrelated warning",
		"write error: No space left on device",
	)

	f, err := classify(context.Background(), nil, logger, config.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.Description, "space") && len(f.Problem) == 0 {
		t.Errorf("classify() finding = %+v, want a no-space classification", f)
	}
}

func TestClassifyUsesCache(t *testing.T) {
	logger, err := cliutil.NewLogger("error", nil)
	if err != nil {
		t.Fatal(err)
	}
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	path := writeLog(t, "a random line that matches nothing in particular")

	first, err := classify(context.Background(), store, logger, config.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := classify(context.Background(), store, logger, config.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if first.Description != second.Description {
		t.Errorf("cached classification mismatch: %q != %q", first.Description, second.Description)
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

func TestClassifyAttachesKnownIssue(t *testing.T) {
	logger, err := cliutil.NewLogger("error", nil)
	if err != nil {
		t.Fatal(err)
	}
	path := writeLog(t, "write error: No space left on device")

	cfg := config.Config{
		KnownIssues: []config.KnownIssue{
			{Issue: "golang/go#99999", Regexp: "no space left on device"},
		},
	}
	f, err := classify(context.Background(), nil, logger, cfg, path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Issue != "golang/go#99999" {
		t.Errorf("f.Issue = %q, want golang/go#99999", f.Issue)
	}
}
