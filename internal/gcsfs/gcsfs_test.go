// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcsfs

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var slowTest = flag.Bool("slow", false, "run slow tests that access GCS")

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(context.Background(), nil, "file://"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello\n" {
		t.Errorf("Open(file://) contents = %q, want %q", got, "hello\n")
	}
}

func TestOpenFileMissing(t *testing.T) {
	path := "file://" + filepath.Join(t.TempDir(), "missing.log")
	if _, err := Open(context.Background(), nil, path); err == nil {
		t.Fatal("Open on missing file = nil error, want error")
	}
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Stat(context.Background(), nil, "file://"+path); err != nil {
		t.Errorf("Stat(file://%s) = %v, want nil", path, err)
	}
}

func TestStatFileMissing(t *testing.T) {
	path := "file://" + filepath.Join(t.TempDir(), "missing.log")
	if err := Stat(context.Background(), nil, path); err == nil {
		t.Fatal("Stat on missing file = nil error, want error")
	}
}

func TestOpenUnsupportedScheme(t *testing.T) {
	if _, err := Open(context.Background(), nil, "ftp://example.com/build.log"); err == nil {
		t.Fatal("Open with unsupported scheme = nil error, want error")
	}
}

func TestOpenGSMissingBucket(t *testing.T) {
	if _, err := Open(context.Background(), nil, "gs:///object.log"); err == nil {
		t.Fatal("Open with missing bucket = nil error, want error")
	}
}

func TestOpenGSMissingObject(t *testing.T) {
	if _, err := Open(context.Background(), nil, "gs://bucket"); err == nil {
		t.Fatal("Open with missing object = nil error, want error")
	}
}

// TestOpenGS reads a real object from a real bucket, skipped unless
// -slow is passed and the environment has GCS credentials.
func TestOpenGS(t *testing.T) {
	if !*slowTest {
		t.Skip("reads a real GCS bucket")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	client, err := storage.NewClient(context.Background(), option.WithScopes(storage.ScopeReadOnly))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	r, err := Open(ctx, client, "gs://vcs-test/auth/or401.zip")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatal(err)
	}
}
