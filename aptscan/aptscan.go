// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aptscan recognises apt-get/dpkg failures in the tail of a
// transcript section, and decodes the dose3 CUDF report produced by
// sbuild's aspcud-based dependency resolver.
package aptscan

import (
	"regexp"
	"strings"

	"github.com/jelmer/buildlogscan/internal/cudf"
	"github.com/jelmer/buildlogscan/match"
	"github.com/jelmer/buildlogscan/problem"
)

// TailWindow is the number of trailing lines FindAptGetFailure
// considers, mirroring find_apt_get_failure's OFFSET.
const TailWindow = 50

var (
	reFailedToFetch  = regexp.MustCompile(`^E: Failed to fetch ([^ ]+)  (.*)`)
	reNoReleaseFile  = regexp.MustCompile(`^E: The repository '([^']+)' does not have a Release file\.`)
	reDpkgDebWrite   = regexp.MustCompile(`^dpkg-deb: error: unable to write file '(.*)': No space left on device`)
	reNotEnoughSpace = regexp.MustCompile(`^E: You don't have enough free space in (.*)\.`)
	reUnableToLocate = regexp.MustCompile(`^E: Unable to locate package (.*)`)
	reDpkgError      = regexp.MustCompile(`^dpkg: error: (.*)`)
	reDpkgProcessing = regexp.MustCompile(`^dpkg: error processing package (.*) \((.*)\):`)
	reDependsBare    = regexp.MustCompile(`^\s*Depends: (.*) but it is not (?:going to be installed|installable)`)
	reDependsNamed   = regexp.MustCompile(`^\s*(.*) : Depends: (.*) but it is not (?:going to be installed|installable)`)
	reCopyFailNoSpc  = regexp.MustCompile(`^\s*cannot copy extracted data for '(.*)' to '(.*)': failed to write \(No space left on device\)`)
	reLineNoSpace    = regexp.MustCompile(`^\s.*: No space left on device`)
)

// Result mirrors scan.Result: at most one of Match/Problem is
// meaningful on its own.
type Result struct {
	Match   match.Match
	Problem problem.Problem
}

// FindAptGetFailure looks at the last TailWindow lines of an apt-get
// transcript for the recognised failure idioms (§4.E), then, failing
// that, forward-scans the whole transcript for two disk-space-only
// idioms that can appear anywhere (e.g. mid-unpack).
func FindAptGetFailure(lines []string) Result {
	lo := len(lines) - TailWindow
	if lo < 0 {
		lo = 0
	}

	var fallback Result
	haveFallback := false

	for i := len(lines) - 1; i >= lo; i-- {
		line := strings.TrimRight(lines[i], "\r\n")

		if strings.HasPrefix(line, "E: Failed to fetch ") {
			if g := reFailedToFetch.FindStringSubmatch(line); g != nil {
				var p problem.Problem
				if strings.Contains(g[2], "No space left on device") {
					p = &problem.NoSpaceOnDevice{}
				} else {
					p = &problem.AptFetchFailure{URL: g[1], Error: g[2]}
				}
				return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: p}
			}
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex")}
		}

		if line == "E: Broken packages" && i > 0 {
			desc := strings.TrimSpace(strings.TrimRight(lines[i-1], "\r\n"))
			return Result{
				Match:   match.NewSingleLineMatch(i-1, desc, "direct match"),
				Problem: &problem.AptBrokenPackages{Description: desc},
			}
		}

		if line == "E: Unable to correct problems, you have held broken packages." {
			return findHeldBrokenPackages(lines, i)
		}

		if g := reNoReleaseFile.FindStringSubmatch(line); g != nil {
			return Result{
				Match:   match.NewSingleLineMatch(i, line, "direct regex"),
				Problem: &problem.AptMissingReleaseFile{URL: g[1]},
			}
		}

		if reDpkgDebWrite.MatchString(line) {
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.NoSpaceOnDevice{}}
		}

		if reNotEnoughSpace.MatchString(line) {
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.NoSpaceOnDevice{}}
		}

		if strings.HasPrefix(line, "E: ") && !haveFallback {
			fallback = Result{Match: match.NewSingleLineMatch(i, line, "direct regex")}
			haveFallback = true
		}

		if g := reUnableToLocate.FindStringSubmatch(line); g != nil {
			return Result{
				Match:   match.NewSingleLineMatch(i, line, "direct regex"),
				Problem: &problem.AptPackageUnknown{Package: g[1]},
			}
		}

		if line == "E: Write error - write (28: No space left on device)" {
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.NoSpaceOnDevice{}}
		}

		if g := reDpkgError.FindStringSubmatch(line); g != nil {
			if strings.HasSuffix(g[1], ": No space left on device") {
				return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.NoSpaceOnDevice{}}
			}
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.DpkgError{Error: g[1]}}
		}

		if g := reDpkgProcessing.FindStringSubmatch(line); g != nil {
			anchor := i + 1
			if anchor >= len(lines) {
				anchor = i
			}
			return Result{
				Match:   match.NewSingleLineMatch(anchor, strings.TrimRight(lines[anchor], "\r\n"), "direct regex"),
				Problem: &problem.DpkgError{Error: "processing package " + g[1] + " (" + g[2] + ")"},
			}
		}
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		if reCopyFailNoSpc.MatchString(line) || reLineNoSpace.MatchString(line) {
			return Result{Match: match.NewSingleLineMatch(i, line, "direct regex"), Problem: &problem.NoSpaceOnDevice{}}
		}
	}

	if haveFallback {
		return fallback
	}
	return Result{}
}

// findHeldBrokenPackages walks backward from the "you have held
// broken packages" line collecting "Depends: X but it is not
// installable" continuation lines, mirroring the original's inline
// loop.
func findHeldBrokenPackages(lines []string, lineno int) Result {
	line := strings.TrimRight(lines[lineno], "\r\n")
	var offsets []int
	var broken []string
	for j := lineno - 1; j > 0; j-- {
		l := lines[j]
		if g := reDependsBare.FindStringSubmatch(l); g != nil {
			offsets = append(offsets, j)
			broken = append(broken, g[1])
			continue
		}
		if g := reDependsNamed.FindStringSubmatch(l); g != nil {
			offsets = append(offsets, j)
			broken = append(broken, g[2])
			continue
		}
		break
	}
	// offsets were collected nearest-first; the original's
	// MultiLineMatch wants increasing order with lineno last.
	reverse(offsets)
	offsets = append(offsets, lineno)

	rawLines := make([]string, len(offsets))
	for k, o := range offsets {
		rawLines[k] = strings.TrimRight(lines[o], "\r\n")
	}
	return Result{
		Match:   match.NewMultiLineMatch(offsets, rawLines, "direct match"),
		Problem: &problem.AptBrokenPackages{Description: strings.TrimSpace(line), Broken: broken},
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// FindInstallDepsFailure decodes a dose3 CUDF report if present in
// lines, otherwise falls back to FindAptGetFailure — mirroring
// find_install_deps_failure_description's dose3-or-apt-get dispatch.
func FindInstallDepsFailure(lines []string) Result {
	if doc, ok := cudf.FindOutput(lines); ok {
		if p := ErrorFromDose3Report(cudf.Get(doc, "report")); p != nil {
			return Result{Problem: p}
		}
		return Result{}
	}
	return FindAptGetFailure(lines)
}

// ErrorFromDose3Report turns a dose3 CUDF "report" node (a list with
// one "sbuild-build-depends-main-dummy" entry) into an
// UnsatisfiedAptDependencies or UnsatisfiedAptConflicts, mirroring
// error_from_dose3_report/fixup_relation. Returns nil if the package
// isn't broken or no reason could be decoded.
func ErrorFromDose3Report(report cudf.Node) problem.Problem {
	entries := cudf.List(report)
	if len(entries) != 1 {
		return nil
	}
	entry := entries[0]
	if cudf.String(cudf.Get(entry, "status")) != "broken" {
		return nil
	}

	var missing, conflict []problem.RelationSet

	for _, reason := range cudf.List(cudf.Get(entry, "reasons")) {
		if m := cudf.Get(reason, "missing"); m != nil {
			text := cudf.String(cudf.Get(cudf.Get(m, "pkg"), "unsat-dependency"))
			missing = append(missing, fixupRelations(problem.ParseRelations(text))...)
		}
		if c := cudf.Get(reason, "conflict"); c != nil {
			text := cudf.String(cudf.Get(cudf.Get(c, "pkg1"), "unsat-conflict"))
			conflict = append(conflict, fixupRelations(problem.ParseRelations(text))...)
		}
	}

	if len(missing) > 0 {
		return &problem.UnsatisfiedAptDependencies{Relations: missing}
	}
	if len(conflict) > 0 {
		return &problem.UnsatisfiedAptConflicts{Relations: conflict}
	}
	return nil
}

// fixupRelations normalises the non-Debian "<"/">" operators dose3
// emits to Debian's "<<"/">>", mirroring fixup_relation.
func fixupRelations(rels []problem.RelationSet) []problem.RelationSet {
	for i, rs := range rels {
		for j, r := range rs {
			switch r.Operator {
			case "<":
				rs[j].Operator = "<<"
			case ">":
				rs[j].Operator = ">>"
			}
		}
		rels[i] = rs
	}
	return rels
}
