// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalogue

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jelmer/buildlogscan/problem"
)

func TestEntryTryMatch(t *testing.T) {
	e := NewEntry(`missing thing: (\w+)`, func(g []string) (problem.Problem, bool) {
		return &problem.MissingCommand{Command: g[1]}, true
	})

	lines := []string{"irrelevant\n", "missing thing: frobnicate\n"}
	m, p, ok, err := e.Try(lines, 1)
	if err != nil {
		t.Fatalf("Try returned error: %v", err)
	}
	if !ok {
		t.Fatal("Try did not match, want match")
	}
	if m.LineNo() != 2 {
		t.Errorf("LineNo() = %d, want 2", m.LineNo())
	}
	want := &problem.MissingCommand{Command: "frobnicate"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Problem mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryTryBuilderRejects(t *testing.T) {
	e := NewEntry(`optional: (\w*)`, func(g []string) (problem.Problem, bool) {
		if g[1] == "" {
			return nil, false
		}
		return &problem.MissingCommand{Command: g[1]}, true
	})

	_, _, ok, err := e.Try([]string{"optional: \n"}, 0)
	if err != nil {
		t.Fatalf("Try returned error: %v", err)
	}
	if ok {
		t.Error("Try matched, want rejection (ok=false) per design note 9(a)")
	}
}

func TestEntryTryBuilderPanicBecomesMatcherError(t *testing.T) {
	e := NewEntry(`panics: (\w+)`, func(g []string) (problem.Problem, bool) {
		_ = g[5] // out of range, panics
		return nil, false
	})

	_, _, ok, err := e.Try([]string{"panics: oops\n"}, 0)
	if ok {
		t.Fatal("Try reported ok=true for a panicking builder")
	}
	if err == nil {
		t.Fatal("Try returned nil error for a panicking builder")
	}
	var merr *MatcherError
	if !errorsAs(err, &merr) {
		t.Fatalf("error %v is not a *MatcherError", err)
	}
}

func errorsAs(err error, target **MatcherError) bool {
	me, ok := err.(*MatcherError)
	if !ok {
		return false
	}
	*target = me
	return true
}

func TestBackwardWindowIndicesLatestFirst(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	w := NewBackwardWindow(lines, 3)
	got := w.Indices()
	want := []int{4, 3, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Indices() mismatch (-want +got):\n%s", diff)
	}
}

func TestBackwardWindowClampsToStart(t *testing.T) {
	lines := []string{"a", "b"}
	w := NewBackwardWindow(lines, 250)
	if w.Lo() != 0 {
		t.Errorf("Lo() = %d, want 0", w.Lo())
	}
}

func TestBackwardWindowContainsCmake(t *testing.T) {
	lines := []string{"normal line", "running CMake now", "tail"}
	w := NewBackwardWindow(lines, 10)
	if !w.ContainsCmake() {
		t.Error("ContainsCmake() = false, want true")
	}
}

func TestClassifyMissingPath(t *testing.T) {
	tests := []struct {
		path string
		want problem.Problem
	}{
		{"./configure", &problem.MissingConfigure{}},
		{"/usr/include/foo.h", &problem.MissingFile{Path: "/usr/include/foo.h"}},
		{"foo.txt", &problem.MissingCommandOrBuildFile{Filename: "foo.txt"}},
		{".git/HEAD", &problem.VCSControlDirectoryNeeded{Vcs: []string{"Git"}}},
		{"./relative/ignored", nil},
		{"/<<PKGBUILDDIR>>/ignored", &problem.MissingBuildFile{Filename: "ignored"}},
	}
	for _, tt := range tests {
		got := ClassifyMissingPath(tt.path)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ClassifyMissingPath(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestClassifyBuildFileSandboxed(t *testing.T) {
	got := ClassifyBuildFile("/<<PKGBUILDDIR>>/src/main.c")
	want := &problem.MissingBuildFile{Filename: "src/main.c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClassifyBuildFile mismatch (-want +got):\n%s", diff)
	}
}

func TestAllWithGlobalsFirstOrdersGlobalsBeforeSpecific(t *testing.T) {
	if len(GlobalEntries) == 0 {
		t.Fatal("no global entries registered")
	}
	all := AllWithGlobalsFirst()
	if len(all) != len(GlobalEntries)+len(Catalogue) {
		t.Fatalf("len(AllWithGlobalsFirst()) = %d, want %d", len(all), len(GlobalEntries)+len(Catalogue))
	}

	// A line that both the global no-space-on-device matcher and (if
	// it preceded it) nothing else in the catalogue would claim must
	// resolve to the global Problem when tried in AllWithGlobalsFirst
	// order.
	lines := []string{"dpkg-deb: error: unable to write: No space left on device\n"}
	for _, m := range all {
		_, p, ok, err := m.Try(lines, 0)
		if err != nil {
			t.Fatalf("Try returned error: %v", err)
		}
		if !ok {
			continue
		}
		if p == nil || p.Kind() != "no-space-on-device" {
			t.Fatalf("first match on disk-space line was %v, want no-space-on-device", p)
		}
		return
	}
	t.Fatal("no matcher matched the disk-space line")
}
