// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aptscan

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jelmer/buildlogscan/internal/cudf"
	"github.com/jelmer/buildlogscan/problem"
)

func TestFindAptGetFailureFetchFailure(t *testing.T) {
	lines := []string{
		"Reading package lists...\n",
		"E: Failed to fetch http://example.org/foo.deb  404 Not Found\n",
	}
	res := FindAptGetFailure(lines)
	want := &problem.AptFetchFailure{URL: "http://example.org/foo.deb", Error: "404 Not Found"}
	if diff := cmp.Diff(want, res.Problem); diff != "" {
		t.Errorf("Problem mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAptGetFailureFetchFailureNoSpace(t *testing.T) {
	lines := []string{
		"E: Failed to fetch http://example.org/foo.deb  No space left on device\n",
	}
	res := FindAptGetFailure(lines)
	if res.Problem == nil || res.Problem.Kind() != "no-space-on-device" {
		t.Errorf("Problem = %v, want no-space-on-device", res.Problem)
	}
}

func TestFindAptGetFailureUnknownPackage(t *testing.T) {
	lines := []string{"E: Unable to locate package libfoo-dev\n"}
	res := FindAptGetFailure(lines)
	want := &problem.AptPackageUnknown{Package: "libfoo-dev"}
	if diff := cmp.Diff(want, res.Problem); diff != "" {
		t.Errorf("Problem mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAptGetFailureBrokenPackages(t *testing.T) {
	lines := []string{
		"Some package description here\n",
		"E: Broken packages\n",
	}
	res := FindAptGetFailure(lines)
	want := &problem.AptBrokenPackages{Description: "Some package description here"}
	if diff := cmp.Diff(want, res.Problem); diff != "" {
		t.Errorf("Problem mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAptGetFailureNoMatch(t *testing.T) {
	res := FindAptGetFailure([]string{"all good\n"})
	if res.Match != nil || res.Problem != nil {
		t.Errorf("got non-empty result for clean input: %+v", res)
	}
}

func TestErrorFromDose3ReportMissingDependency(t *testing.T) {
	report := []cudf.Node{
		map[string]cudf.Node{
			"package": "sbuild-build-depends-main-dummy",
			"status":  "broken",
			"reasons": []cudf.Node{
				map[string]cudf.Node{
					"missing": map[string]cudf.Node{
						"pkg": map[string]cudf.Node{
							"unsat-dependency": "libfoo-dev (< 2.0)",
						},
					},
				},
			},
		},
	}
	p := ErrorFromDose3Report(report)
	deps, ok := p.(*problem.UnsatisfiedAptDependencies)
	if !ok {
		t.Fatalf("got %T, want *problem.UnsatisfiedAptDependencies", p)
	}
	if len(deps.Relations) != 1 || len(deps.Relations[0]) != 1 {
		t.Fatalf("unexpected relation shape: %+v", deps.Relations)
	}
	rel := deps.Relations[0][0]
	if rel.Name != "libfoo-dev" || rel.Operator != "<<" {
		t.Errorf("relation = %+v, want name=libfoo-dev operator=<<", rel)
	}
}

func TestErrorFromDose3ReportNotBroken(t *testing.T) {
	report := []cudf.Node{
		map[string]cudf.Node{
			"package": "sbuild-build-depends-main-dummy",
			"status":  "installed",
		},
	}
	if p := ErrorFromDose3Report(report); p != nil {
		t.Errorf("got %v, want nil for a non-broken package", p)
	}
}
