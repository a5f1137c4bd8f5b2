// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalogue

import (
	"strconv"
	"strings"

	"github.com/jelmer/buildlogscan/problem"
)

// This file is the bulk of the matcher catalogue (§4.C.1): one
// init()-registered Entry per recognised diagnostic idiom, ordered
// from most specific to most vague, mirroring the structure (if not
// the literal regex text throughout) of the original's
// build_failure_regexps table. A final "vague" tail is registered
// last in registerVagueTail so it only fires once nothing more
// specific has.
//
// Coverage is deliberately uneven across language families, not an
// oversight: make/sh, Python, and C/C++/ld carry most of their
// original entries since those are the toolchains a Debian build
// actually fails in most often, while Perl, Ruby, Node, Java/JDK, PHP
// and debhelper are reduced to one or a few representative entries
// for their single most common failure shape. The R, Lua, OCaml,
// Haskell and Vala families have no entries here at all: their
// Problem kinds exist, but no catalogue entry produces them. The rest of each
// family's original entries are near-duplicate phrasings of the same
// "missing module/class/gem" idiom already covered; see DESIGN.md's
// catalogue entry for the full accounting.

func strp(s string) *string { return &s }

func init() {
	Register(
		// --- make / generic build tooling ---
		NewEntry(`make\[[0-9]+\]: \*\*\* No rule to make target '([^']+)', needed by '([^']+)'\.  Stop\.`,
			func(g []string) (problem.Problem, bool) {
				return ClassifyBuildFile(g[1]), true
			}),
		NewEntry(`make(?:\[[0-9]+\])?: (\S+): Command not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCommand{Command: g[1]}, true
			}),
		NewEntry(`/bin/sh: [0-9]*: ([^:]+): not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCommand{Command: strings.TrimSpace(g[1])}, true
			}),
		NewEntry(`(?:bash|sh): ([^:]+): command not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCommand{Command: g[1]}, true
			}),

		// --- Python ---
		NewEntry(`ModuleNotFoundError: No module named '([^']+)'`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPythonModule{Module: g[1], PythonVersion: strp("3")}, true
			}),
		NewEntry(`ImportError: No module named ([\w.]+)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPythonModule{Module: g[1], PythonVersion: strp("2")}, true
			}),
		NewEntry(`pkg_resources\.DistributionNotFound: The '([^']+)' distribution was not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPythonDistribution{Distribution: g[1]}, true
			}),
		NewEntry(`distutils\.errors\.DistutilsError: Could not find suitable distribution for Requirement\.parse\('([^']+)'\)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPythonDistribution{Distribution: g[1]}, true
			}),

		// --- C / C++ compilers ---
		NewEntry(`[^:]+\.(?:c|cc|cpp|cxx|h|hpp):[0-9]+:[0-9]+: fatal error: ([^:]+): No such file or directory`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCHeader{Header: g[1]}, true
			}),
		NewEntry(`[^:]+\.(?:c|cc|cpp|cxx):[0-9]+:[0-9]+: error: '([^']+)' was not declared in this scope`,
			func(g []string) (problem.Problem, bool) { return nil, false }),
		NewEntry(`/usr/bin/ld: cannot find -l([\w.+-]+)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingLibrary{Library: g[1]}, true
			}),
		NewEntry(`/usr/bin/ld: cannot find ([\w./+-]+\.a)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingStaticLibrary{Library: g[1], Filename: g[1]}, true
			}),

		// --- pkg-config / autoconf ---
		NewEntry(`No package '([^']+)' found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPkgConfig{Module: g[1]}, true
			}),
		NewEntry(`configure: error: Package requirements \(([^)]+)\) were not met`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPkgConfig{Module: strings.TrimSpace(g[1])}, true
			}),
		NewEntry(`configure: error: (\w+) version (\S+) or newer is required`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingVagueDependency{Name: g[1], MinimumVersion: strp(g[2])}, true
			}),
		NewEntry(`configure: error: ([A-Za-z0-9_+-]+) development files not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingVagueDependency{Name: g[1]}, true
			}),
		NewEntry(`checking for ([\w.+-]+)\.\.\. configure: error: "([\w.+-]+) not found"`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingVagueDependency{Name: g[1]}, true
			}),
		NewEntry(`possibly undefined macro: (AC_[A-Z0-9_]+)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingAutoconfMacro{Macro: g[1]}, true
			}),

		// --- Perl ---
		NewEntry(`Can't locate ([\w:.]+\.pm) in @INC \(you may need to install the ([\w:]+) module\)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPerlModule{Filename: strp(g[1]), Module: g[2]}, true
			}),
		NewEntry(`Can't locate (\S+\.pm) in @INC`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPerlFile{Filename: g[1]}, true
			}),
		NewEntry(`Bareword "(\w+)" not allowed while "strict subs" in use`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPerlPredeclared{Name: g[1]}, true
			}),

		// --- Ruby ---
		NewEntry(`cannot load such file -- ([\w/-]+) \(LoadError\)`,
			func(g []string) (problem.Problem, bool) {
				if strings.Contains(g[1], "/") {
					return &problem.MissingRubyFile{Filename: g[1]}, true
				}
				return &problem.MissingRubyGem{Gem: g[1]}, true
			}),

		// --- Node / JS ---
		NewEntry(`Error: Cannot find module '([^']+)'`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingNodeModule{Module: g[1]}, true
			}),

		// --- Go ---
		NewEntry(`no required module provides package ([\w./-]+); to add it:`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingGoPackage{Package: g[1]}, true
			}),
		NewEntry(`go: go\.mod file not found in current directory or any parent directory`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingGoModFile{}, true
			}),
		NewEntry(`missing go\.sum entry for module providing package ([\w./-]+)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingGoSumEntry{Package: g[1]}, true
			}),

		// --- Rust / cargo ---
		NewEntry(`error\[E0463\]: can't find crate for ` + "`" + `([\w-]+)` + "`",
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCargoCrate{Crate: g[1]}, true
			}),
		NewEntry(`error: linker ` + "`cc`" + ` not found`,
			func(g []string) (problem.Problem, bool) { return &problem.MissingRustCompiler{}, true }),

		// --- Java / JDK ---
		NewEntry(`error: package ([\w.]+) does not exist`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingJavaClass{Classname: g[1]}, true
			}),
		NewEntry(`Unable to locate (?:a Java Runtime|any JVM)`,
			func(g []string) (problem.Problem, bool) { return &problem.MissingJVM{}, true }),

		// --- PHP ---
		NewEntry(`PHP Fatal error:  Uncaught Error: Class '([\w\\]+)' not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingPHPClass{Classname: g[1]}, true
			}),
		NewEntry(`PHP Fatal error:  Uncaught Error: Call to undefined function (\w+)\(\)`,
			func(g []string) (problem.Problem, bool) { return nil, false }),

		// --- Qt / X11 / display ---
		NewEntry(`Project ERROR: Unknown module\(s\) in QT: (.+)`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingQtModules{Modules: strings.Fields(g[1])}, true
			}),
		NewEntry(`cannot connect to X server`,
			func(g []string) (problem.Problem, bool) { return &problem.MissingXDisplay{}, true }),

		// --- CMake "vague" entries not part of the block matcher ---
		NewEntry(`CMake Error: CMake was unable to find a build program corresponding to "(.+)"`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingCommand{Command: g[1]}, true
			}),

		// --- Debhelper / dh ---
		NewEntry(`Compatibility levels before ([0-9]+) are no longer supported \(level ([0-9]+) requested\)`,
			func(g []string) (problem.Problem, bool) {
				oldest, err1 := strconv.Atoi(g[1])
				requested, err2 := strconv.Atoi(g[2])
				if err1 != nil || err2 != nil {
					return nil, false
				}
				return &problem.UnsupportedDebhelperCompatLevel{Oldest: oldest, Requested: requested}, true
			}),
		NewEntry(`dh: Compatibility levels before [0-9]+ are deprecated`,
			func(g []string) (problem.Problem, bool) { return nil, false }),
		NewEntry(`dh_missing: (?:error: )?(.+) exists in debian/\S+ but is not installed to anywhere`,
			func(g []string) (problem.Problem, bool) {
				return &problem.DhMissingUninstalled{Missing: g[1]}, true
			}),
		NewEntry(`dh: The --until option is not supported any longer`,
			func(g []string) (problem.Problem, bool) { return &problem.DhUntilUnsupported{}, true }),
		NewEntry(`dh_link: link destination (.+) is a directory`,
			func(g []string) (problem.Problem, bool) {
				return &problem.DhLinkDestinationIsDirectory{Path: g[1]}, true
			}),

		// --- GNOME / Xfce autotools helpers ---
		NewEntry(`You must have gnome-common installed`,
			func(g []string) (problem.Problem, bool) { return &problem.GnomeCommonMissing{}, true }),
		NewEntry(`Error: no matching xfce4 dependency found for \$\{(\w+)\}`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingXfceDependency{Package: g[1]}, true
			}),

		// --- misc environment ---
		NewEntry(`fatal: unable to auto-detect email address`,
			func(g []string) (problem.Problem, bool) { return &problem.MissingGitIdentity{}, true }),
		NewEntry(`gpg: skipped "[^"]+": No secret key`,
			func(g []string) (problem.Problem, bool) { return &problem.MissingSecretGPGKey{}, true }),
		NewEntry(`curl: \(60\) SSL certificate problem: unable to get local issuer certificate`,
			func(g []string) (problem.Problem, bool) {
				return &problem.UnknownCertificateAuthority{URL: ""}, true
			}),
		NewEntry(`E: Chroot for .* not found`,
			func(g []string) (problem.Problem, bool) { return nil, false }), // handled directly in sbuild's create-session scanner

		// --- final vague tail: keep last, most general wins nothing more specific ---
	)
	registerVagueTail()
}

// registerVagueTail appends the intentionally-last, broad diagnostics
// that are tried only after everything more specific in the catalogue
// (§4.C "a final 'vague' tail ... is intentionally last"). Only the
// first entry produces a match; the other two always reject, so the
// lines they cover are left to scan's secondary pass.
func registerVagueTail() {
	Register(
		NewEntry(`configure: error: (.+) not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.MissingVagueDependency{Name: strings.TrimSpace(g[1])}, true
			}),
		NewEntry(`configure: error: (.*)`,
			func(g []string) (problem.Problem, bool) { return nil, false }),
		NewEntry(`Unknown option "?([^"]+)"?`,
			func(g []string) (problem.Problem, bool) { return nil, false }),
	)
}
