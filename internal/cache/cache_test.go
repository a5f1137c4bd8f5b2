// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jelmer/buildlogscan/problem"
)

func TestStoreAndLookup(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := KeyForLines([]string{"gcc: error: foo.c"})

	if _, ok, err := c.Lookup(ctx, key); err != nil || ok {
		t.Fatalf("Lookup on empty cache = %v, %v, want not found", ok, err)
	}

	p := &problem.ChrootNotFound{Chroot: "unstable-amd64-sbuild"}
	if err := c.Store(ctx, key, p, p.String()); err != nil {
		t.Fatal(err)
	}

	entry, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Lookup after Store = %v, %v, want found", ok, err)
	}
	got, ok := entry.Problem.(*problem.ChrootNotFound)
	if !ok || got.Chroot != "unstable-amd64-sbuild" {
		t.Errorf("entry.Problem = %#v", entry.Problem)
	}
	if entry.Description != p.String() {
		t.Errorf("entry.Description = %q, want %q", entry.Description, p.String())
	}
}

func TestStoreOverwritesExistingKey(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := KeyForLines([]string{"some log line"})

	if err := c.Store(ctx, key, &problem.NoSpaceOnDevice{}, "no space left on device"); err != nil {
		t.Fatal(err)
	}
	if err := c.Store(ctx, key, nil, "build failed"); err != nil {
		t.Fatal(err)
	}

	entry, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Lookup = %v, %v", ok, err)
	}
	if entry.Problem != nil {
		t.Errorf("entry.Problem = %v, want nil after overwrite", entry.Problem)
	}
	if entry.Description != "build failed" {
		t.Errorf("entry.Description = %q", entry.Description)
	}
}

func TestKeyForLinesIsStable(t *testing.T) {
	a := KeyForLines([]string{"one", "two"})
	b := KeyForLines([]string{"one", "two"})
	if a != b {
		t.Errorf("KeyForLines not stable: %q != %q", a, b)
	}
	c := KeyForLines([]string{"one", "three"})
	if a == c {
		t.Errorf("KeyForLines collided for different input")
	}
}
