// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autopkgtest

import (
	"testing"
)

func TestParseLineTestFields(t *testing.T) {
	e, ok := parseLine("autopkgtest [12:34:56]: test mytest: [-----------------------")
	if !ok || e.kind != "test" || e.test != "mytest" || e.status != "begin-output" {
		t.Fatalf("parseLine = %+v, %v", e, ok)
	}
	e, ok = parseLine("autopkgtest [12:34:56]: test mytest: -----------------------]")
	if !ok || e.status != "end-output" {
		t.Fatalf("parseLine end = %+v, %v", e, ok)
	}
}

func TestParseLineNonEventLine(t *testing.T) {
	if _, ok := parseLine("some ordinary output"); ok {
		t.Error("parseLine matched a non-event line")
	}
}

func TestFindFailureTimedOut(t *testing.T) {
	lines := []string{
		"autopkgtest [12:34:56]: @@@@@@@@@@@@@@@@@@@@ summary",
		"mytest       FAIL timed out",
	}
	res := FindFailure(lines)
	if res.Problem == nil || res.Problem.Kind() != "timed-out" {
		t.Errorf("Problem = %v, want timed-out", res.Problem)
	}
	if res.Test != "mytest" {
		t.Errorf("Test = %q, want mytest", res.Test)
	}
}

func TestFindFailureBadpkg(t *testing.T) {
	lines := []string{
		"autopkgtest [12:34:56]: @@@@@@@@@@@@@@@@@@@@ summary",
		"mytest       FAIL badpkg",
		"badpkg: could not satisfy dependencies",
		"blame: deb:libfoo-dev",
	}
	res := FindFailure(lines)
	if res.Problem == nil || res.Problem.Kind() != "badpkg" {
		t.Errorf("Problem = %v, want badpkg", res.Problem)
	}
}

func TestFindFailureNoAutopkgtestContent(t *testing.T) {
	res := FindFailure([]string{"plain line one", "plain line two"})
	if res.Match == nil || res.Description != "plain line two" {
		t.Errorf("res = %+v, want fallback to last line", res)
	}
}

func TestFindFailureEmptyInput(t *testing.T) {
	res := FindFailure(nil)
	if res.Match != nil || res.Problem != nil {
		t.Errorf("res = %+v, want zero Result for empty input", res)
	}
}
