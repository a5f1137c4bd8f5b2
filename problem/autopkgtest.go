// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"fmt"
	"strings"
)

// This file holds the Problem variants produced by the autopkgtest
// log protocol parser (package autopkgtest) — summary-row expansions
// and testbed-level failures, as opposed to failures of the package
// under test itself (those come back through the generic matcher
// catalogue and land in one of the other families).

func init() {
	register("badpkg", false, func() Problem { return &AutopkgtestDepsUnsatisfiable{} })
	register("timed-out", false, func() Problem { return &AutopkgtestTimedOut{} })
	register("testbed-failure", false, func() Problem { return &AutopkgtestTestbedFailure{} })
	register("testbed-chroot-disappeared", false, func() Problem { return &AutopkgtestDepChrootDisappeared{} })
	register("erroneous-package", false, func() Problem { return &AutopkgtestErroneousPackage{} })
	register("stderr-output", false, func() Problem { return &AutopkgtestStderrFailure{} })
	register("testbed-setup-failure", false, func() Problem { return &AutopkgtestTestbedSetupFailure{} })
}

// BlameArg is one blame-line token split into its kind and value, e.g.
// "deb:libfoo-dev" becomes Kind "deb", Value "libfoo-dev". Kind is
// empty for a bare token with no ":" prefix (a raw package name).
type BlameArg struct {
	Kind  string `json:"kind,omitempty"`
	Value string `json:"value"`
}

func (a BlameArg) String() string {
	if a.Kind == "" {
		return a.Value
	}
	return a.Kind + ":" + a.Value
}

// AutopkgtestDepsUnsatisfiable corresponds to a "badpkg" summary row:
// Args holds the blame-line tokens, each split into its deb:/arg:/dsc:
// kind and the bare value that follows it.
type AutopkgtestDepsUnsatisfiable struct {
	Args []BlameArg `json:"args"`
}

func (p *AutopkgtestDepsUnsatisfiable) Kind() string   { return "badpkg" }
func (p *AutopkgtestDepsUnsatisfiable) IsGlobal() bool { return false }
func (p *AutopkgtestDepsUnsatisfiable) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("unsatisfiable test dependencies: %s", strings.Join(parts, " "))
}

// AutopkgtestDepsUnsatisfiableFromBlameLine builds an AutopkgtestDepsUnsatisfiable from a raw
// "blame: ..." line, mirroring the original's from_blame_line
// classmethod: the "blame: " prefix is stripped, the remainder is
// split on spaces, and each field is split again on its first ":"
// into a kind/value pair.
func AutopkgtestDepsUnsatisfiableFromBlameLine(line string) *AutopkgtestDepsUnsatisfiable {
	line = strings.TrimSuffix(strings.TrimPrefix(line, "blame: "), "\n")
	fields := strings.Fields(line)
	args := make([]BlameArg, len(fields))
	for i, f := range fields {
		if kind, value, ok := strings.Cut(f, ":"); ok {
			args[i] = BlameArg{Kind: kind, Value: value}
		} else {
			args[i] = BlameArg{Value: f}
		}
	}
	return &AutopkgtestDepsUnsatisfiable{Args: args}
}

type AutopkgtestTimedOut struct{}

func (p *AutopkgtestTimedOut) Kind() string   { return "timed-out" }
func (p *AutopkgtestTimedOut) IsGlobal() bool { return false }
func (p *AutopkgtestTimedOut) String() string { return "autopkgtest timed out" }

type AutopkgtestTestbedFailure struct {
	Reason string `json:"reason"`
}

func (p *AutopkgtestTestbedFailure) Kind() string   { return "testbed-failure" }
func (p *AutopkgtestTestbedFailure) IsGlobal() bool { return false }
func (p *AutopkgtestTestbedFailure) String() string {
	return fmt.Sprintf("testbed failure: %s", p.Reason)
}

type AutopkgtestDepChrootDisappeared struct{}

func (p *AutopkgtestDepChrootDisappeared) Kind() string   { return "testbed-chroot-disappeared" }
func (p *AutopkgtestDepChrootDisappeared) IsGlobal() bool { return false }
func (p *AutopkgtestDepChrootDisappeared) String() string {
	return "testbed chroot disappeared"
}

type AutopkgtestErroneousPackage struct {
	Reason string `json:"reason"`
}

func (p *AutopkgtestErroneousPackage) Kind() string   { return "erroneous-package" }
func (p *AutopkgtestErroneousPackage) IsGlobal() bool { return false }
func (p *AutopkgtestErroneousPackage) String() string {
	return fmt.Sprintf("erroneous package: %s", p.Reason)
}

type AutopkgtestStderrFailure struct {
	Stderr string `json:"stderr_line"`
}

func (p *AutopkgtestStderrFailure) Kind() string   { return "stderr-output" }
func (p *AutopkgtestStderrFailure) IsGlobal() bool { return false }
func (p *AutopkgtestStderrFailure) String() string {
	return fmt.Sprintf("unexpected stderr output: %s", p.Stderr)
}

type AutopkgtestTestbedSetupFailure struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

func (p *AutopkgtestTestbedSetupFailure) Kind() string   { return "testbed-setup-failure" }
func (p *AutopkgtestTestbedSetupFailure) IsGlobal() bool { return false }
func (p *AutopkgtestTestbedSetupFailure) String() string {
	return fmt.Sprintf("testbed setup command %q failed: %s", p.Command, p.Error)
}
