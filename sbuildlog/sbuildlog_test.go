// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbuildlog

import (
	"strings"
	"testing"
)

func banner(title string) []string {
	sep := "+" + strings.Repeat("-", 78) + "+"
	return []string{sep, "|" + title + "|", sep}
}

func TestParseSplitsSections(t *testing.T) {
	var lines []string
	lines = append(lines, "preamble line 1")
	lines = append(lines, banner("Build")...)
	lines = append(lines, "building stuff")
	lines = append(lines, "gcc: error: foo.c")
	lines = append(lines, banner("Summary")...)
	lines = append(lines, "Fail-Stage: build")

	log := Parse(lines)

	if got := log.Preamble(); len(got) != 1 || got[0] != "preamble line 1" {
		t.Errorf("Preamble = %v", got)
	}
	build := log.SectionLines("build")
	if len(build) != 2 || build[0] != "building stuff" {
		t.Errorf("build section = %v", build)
	}
	summary := log.SectionLines("summary")
	if len(summary) != 1 || summary[0] != "Fail-Stage: build" {
		t.Errorf("summary section = %v", summary)
	}
}

func TestFindFailedStage(t *testing.T) {
	stage, ok := FindFailedStage([]string{"Status: failed", "Fail-Stage: install-deps"})
	if !ok || stage != "install-deps" {
		t.Errorf("FindFailedStage = %q, %v", stage, ok)
	}
	if _, ok := FindFailedStage([]string{"nothing here"}); ok {
		t.Error("FindFailedStage found a stage where there was none")
	}
}

func TestStripBuildTailRemovesFinishedMarkerAndDumps(t *testing.T) {
	// The original's header-dump loop (strip_build_tail) never actually
	// appends lines to current_contents before stashing it in files, so
	// every dumped file maps to an empty slice; we mirror that exactly
	// rather than "fix" it, since a discovered file's contents were never
	// meant to be inspected by the callers that use this tail-stripping.
	lines := []string{
		"building...",
		"gcc: error: foo.c",
		"==> config.log <==",
		"line one of config.log",
		"line two of config.log",
		"Build finished at 20240101-0000",
		strings.Repeat("-", 80),
	}
	got, files := StripBuildTail(lines, DefaultLookBack)
	if len(got) != 2 || got[0] != "building..." || got[1] != "gcc: error: foo.c" {
		t.Errorf("got = %v", got)
	}
	if _, ok := files["config.log"]; !ok {
		t.Errorf("files = %v, want a config.log entry", files)
	}
}

func TestStripBuildTailNoMarkerLeavesLinesAlone(t *testing.T) {
	lines := []string{"a", "b", "c"}
	got, files := StripBuildTail(lines, DefaultLookBack)
	if len(got) != 3 {
		t.Errorf("got = %v", got)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want empty", files)
	}
}
