// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAutopkgtestDepsUnsatisfiableFromBlameLine(t *testing.T) {
	got := AutopkgtestDepsUnsatisfiableFromBlameLine("blame: deb:libfoo-dev arg:--no-install-recommends unstable\n")
	want := &AutopkgtestDepsUnsatisfiable{
		Args: []BlameArg{
			{Kind: "deb", Value: "libfoo-dev"},
			{Kind: "arg", Value: "--no-install-recommends"},
			{Value: "unstable"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromBlameLine mismatch (-want +got):\n%s", diff)
	}
}

func TestAutopkgtestDepsUnsatisfiableString(t *testing.T) {
	p := AutopkgtestDepsUnsatisfiableFromBlameLine("blame: deb:libfoo-dev unstable")
	want := "unsatisfiable test dependencies: deb:libfoo-dev unstable"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
