// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbuild

import (
	"strings"
	"testing"
)

func banner(title string) []string {
	sep := "+" + strings.Repeat("-", 78) + "+"
	return []string{sep, "|" + title + "|", sep}
}

func TestFromLogBuildFailure(t *testing.T) {
	var lines []string
	lines = append(lines, banner("Build")...)
	lines = append(lines, "building...")
	lines = append(lines, "gcc: error: 'foo.h' file not found")
	lines = append(lines, banner("Summary")...)
	lines = append(lines, "Fail-Stage: build")

	f := FromLog(lines)
	if f.Stage != "build" {
		t.Errorf("Stage = %q, want build", f.Stage)
	}
	if len(f.Phase) != 1 || f.Phase[0] != "build" {
		t.Errorf("Phase = %v, want [build]", f.Phase)
	}
}

func TestFromLogUnpackPreambleFailure(t *testing.T) {
	lines := []string{
		"dpkg-source: info: local changes detected, the modified files are:\n",
		"debian/changelog\n",
		"dpkg-source: error: aborting due to unexpected upstream changes, see /tmp/foo.diff",
	}
	f := FromLog(lines)
	if f.Stage != "unpack" {
		t.Errorf("Stage = %q, want unpack", f.Stage)
	}
	if f.Error == nil || f.Error.Kind() != "unexpected-local-upstream-changes" {
		t.Errorf("Error = %v, want unexpected-local-upstream-changes", f.Error)
	}
}

func TestFindArchCheckFailure(t *testing.T) {
	lines := []string{
		"some preamble",
		"E: dsc: source only builds not allowed for amd64 not in arch list or does not match any arch wildcards: i386 arm64 -- skipping",
	}
	_, _, err := findArchCheckFailure(lines)
	if err == nil || err.Kind() != "architecture-not-in-list" {
		t.Errorf("err = %v, want architecture-not-in-list", err)
	}
}

func TestFindCheckSpaceFailure(t *testing.T) {
	lines := []string{
		"E: Disk space is probably not sufficient for building.",
		"I: Source needs 102400 KiB, while 51200 KiB is free.",
	}
	_, _, err := findCheckSpaceFailure(lines)
	if err == nil || err.Kind() != "insufficient-disk-space" {
		t.Errorf("err = %v, want insufficient-disk-space", err)
	}
}

func TestFindCheckSpaceFailureNoTrigger(t *testing.T) {
	_, _, err := findCheckSpaceFailure([]string{"nothing relevant here"})
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestFindCreationSessionErrorChrootNotFound(t *testing.T) {
	lines := []string{
		"Starting session",
		"E: Chroot for distribution unstable, architecture amd64 not found",
	}
	_, _, err := findCreationSessionError(lines)
	if err == nil || err.Kind() != "chroot-not-found" {
		t.Errorf("err = %v, want chroot-not-found", err)
	}
}
