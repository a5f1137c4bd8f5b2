// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	_ "github.com/jelmer/buildlogscan/catalogue" // registers matchers via init()
	"github.com/jelmer/buildlogscan/problem"
)

func TestFindBuildFailureMissingCommand(t *testing.T) {
	lines := []string{
		"running build\n",
		"make: foo: Command not found\n",
	}
	res := FindBuildFailure(lines)
	if res.Match == nil {
		t.Fatal("no match found")
	}
	want := &problem.MissingCommand{Command: "foo"}
	if diff := cmp.Diff(want, res.Problem); diff != "" {
		t.Errorf("Problem mismatch (-want +got):\n%s", diff)
	}
	if res.Match.LineNo() != 2 {
		t.Errorf("LineNo() = %d, want 2", res.Match.LineNo())
	}
}

func TestFindBuildFailureGlobalWinsOverSpecific(t *testing.T) {
	lines := []string{
		"/usr/bin/ld: cannot find -lfoo\n",
		"dpkg-deb: error: unable to write file: No space left on device\n",
	}
	res := FindBuildFailure(lines)
	if res.Problem == nil {
		t.Fatal("no problem found")
	}
	if res.Problem.Kind() != "no-space-on-device" {
		t.Errorf("Kind() = %q, want no-space-on-device", res.Problem.Kind())
	}
}

func TestFindBuildFailureNoMatchFallsBackToSecondary(t *testing.T) {
	lines := []string{
		"compiling foo.c\n",
		"an unexpected ERROR: occurred here\n",
	}
	res := FindBuildFailure(lines)
	if res.Match == nil {
		t.Fatal("secondary pass did not find a location")
	}
	if res.Problem != nil {
		t.Errorf("Problem = %v, want nil for a secondary-only match", res.Problem)
	}
}

func TestFindBuildFailureEmptyInput(t *testing.T) {
	res := FindBuildFailure(nil)
	if res.Match != nil || res.Problem != nil {
		t.Errorf("got non-nil result for empty input: %+v", res)
	}
}

func TestFindSecondaryBuildFailureRespectsWindow(t *testing.T) {
	lines := make([]string, 0, 300)
	lines = append(lines, "ERROR: too far back to matter\n")
	for i := 0; i < 290; i++ {
		lines = append(lines, "noise\n")
	}
	if _, ok := FindSecondaryBuildFailure(lines, DefaultBackwardWindow); ok {
		t.Error("FindSecondaryBuildFailure found a match outside its window")
	}
}
