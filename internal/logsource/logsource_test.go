// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsource

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/storage"
)

var slowTest = flag.Bool("slow", false, "run slow tests that access GCS")

func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.log")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "line one" || lines[1] != "line two" {
		t.Errorf("lines = %v", lines)
	}
}

func TestOpenFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.log")
	if err := os.WriteFile(path, []byte("only line\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := Open(context.Background(), "file://"+path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "only line" {
		t.Errorf("lines = %v", lines)
	}
}

func TestStatMissingFile(t *testing.T) {
	if err := Stat(context.Background(), filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Error("Stat succeeded for a nonexistent path")
	}
}

func TestOpenGCS(t *testing.T) {
	if !*slowTest {
		t.Skip("reads a real GCS bucket")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := storage.NewClient(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(ctx, "gs://vcs-test/auth/or401.zip"); err != nil {
		t.Fatal(err)
	}
}
