// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan implements the generic build-log scanner (§4.D): a
// bounded backward pass over the matcher catalogue, a CMake-specific
// forward fallback, and a broad forward "secondary" pass used when
// nothing in the catalogue recognised the failure.
//
// Scan is pure and single-threaded: it never logs and never touches
// the filesystem or network. Callers that want logging wrap its
// return value themselves (see cmd/buildlogscan).
package scan

import (
	"regexp"
	"strings"

	"github.com/jelmer/buildlogscan/catalogue"
	"github.com/jelmer/buildlogscan/match"
	"github.com/jelmer/buildlogscan/problem"
)

// DefaultBackwardWindow is the number of trailing lines the primary
// pass considers, mirroring the original's OFFSET constant.
const DefaultBackwardWindow = 250

// Result is what FindBuildFailure returns: at most one of Match/
// Problem is meaningful on its own (a location-only match has a nil
// Problem; a secondary match always does).
type Result struct {
	Match   match.Match
	Problem problem.Problem
	// MatcherErrs accumulates any catalogue.MatcherError raised by a
	// builder along the way; the scan still continues past them.
	MatcherErrs []error
}

// FindBuildFailure runs the full primary+fallback+secondary pipeline
// described in §4.D over lines, using the package-level catalogue.
func FindBuildFailure(lines []string) Result {
	return find(lines, catalogue.AllWithGlobalsFirst(), DefaultBackwardWindow)
}

func find(lines []string, matchers []catalogue.Matcher, backLimit int) Result {
	var res Result
	win := catalogue.NewBackwardWindow(lines, backLimit)

	for _, i := range win.Indices() {
		for _, m := range matchers {
			mm, p, ok, err := m.Try(lines, i)
			if err != nil {
				res.MatcherErrs = append(res.MatcherErrs, err)
				continue
			}
			if !ok {
				continue
			}
			if p == nil || !p.IsGlobal() {
				// A global kind anywhere in the window still wins.
				for _, j := range win.Indices() {
					for _, g := range catalogue.GlobalEntries {
						if gm, gp, gok, _ := g.Try(lines, j); gok && gp != nil {
							res.Match = gm
							res.Problem = gp
							return res
						}
					}
				}
			}
			res.Match = mm
			res.Problem = p
			return res
		}
	}

	if win.ContainsCmake() {
		if mm, p, ok := cmakeForwardFallback(lines); ok {
			res.Match = mm
			res.Problem = p
			return res
		}
	}

	if mm, ok := FindSecondaryBuildFailure(lines, backLimit); ok {
		res.Match = mm
		return res
	}

	return res
}

// vague secondary patterns (§4.D "Secondary pass"): broad, generic
// markers with no structured Problem attached — a location is all
// that's reported.
var secondaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\berror:`),
	regexp.MustCompile(`^ERROR:`),
	regexp.MustCompile(`^FAILED`),
	regexp.MustCompile(`Unknown option\b`),
	regexp.MustCompile(`^E: `),
}

// FindSecondaryBuildFailure scans forward over the trailing backLimit
// lines of lines for a broad "vague" pattern once the primary pass
// and CMake fallback have both failed to identify anything more
// specific. It reports a location only, never a Problem.
func FindSecondaryBuildFailure(lines []string, backLimit int) (match.Match, bool) {
	lo := len(lines) - backLimit
	if lo < 0 {
		lo = 0
	}
	for i := lo; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r\n")
		for _, re := range secondaryPatterns {
			if re.MatchString(line) {
				return match.NewSingleLineMatch(i, line, "secondary vague pattern"), true
			}
		}
	}
	return nil, false
}

// missingFilePat, binaryPat and cmakeFilesPat are the three dedicated
// CMake multi-line idioms (§4.D) kept as an explicit forward fallback
// rather than folded into the catalogue's CMake block matcher,
// because they apply even without a "CMake Error at ..." banner line
// (e.g. inside a qmake/kf5 build that merely prints CMake-shaped
// output without going through cmake's own error formatter).
var (
	cmakeMissingFilePat = regexp.MustCompile(`^\s*The imported target "(.*)" references the file`)
	cmakeBinaryPat      = regexp.MustCompile(`^  Could NOT find (.*) \(missing: .*\)$`)
	cmakeFilesPat       = regexp.MustCompile(`^  Could not find a package configuration file provided by "(.*)" with any of the following names:`)
	cmakeQuotedPath     = regexp.MustCompile(`^\s*"(.*)"$`)
)

func cmakeForwardFallback(lines []string) (match.Match, problem.Problem, bool) {
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r\n")

		if g := cmakeBinaryPat.FindStringSubmatch(line); g != nil {
			return match.NewSingleLineMatch(i, line, "direct regex (cmake binary)"),
				&problem.MissingCommand{Command: strings.ToLower(g[1])}, true
		}

		if cmakeMissingFilePat.MatchString(line) {
			j := i + 1
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j+2 < len(lines) && strings.HasPrefix(lines[j+2], "  but this file does not exist.") {
				filename := strings.TrimSpace(lines[j])
				if m := cmakeQuotedPath.FindStringSubmatch(strings.TrimRight(lines[j], "\r\n")); m != nil {
					filename = m[1]
				}
				return match.SingleLineMatchFromLines(lines[i:j+1], i, "direct regex (cmake missing file)"),
					&problem.MissingFile{Path: filename}, true
			}
			continue
		}

		if i+1 < len(lines) {
			joined := line + " " + strings.TrimRight(strings.TrimLeft(lines[i+1], " "), "\r\n")
			if cmakeFilesPat.MatchString(joined) && i+2 < len(lines) && lines[i+2] == "\n" {
				var filenames []string
				k := i + 3
				for k < len(lines) && strings.TrimSpace(lines[k]) != "" {
					filenames = append(filenames, strings.TrimSpace(lines[k]))
					k++
				}
				return match.NewSingleLineMatch(i, line, "direct regex (cmake)"),
					&problem.CMakeFilesMissing{Filenames: filenames}, true
			}
		}
	}
	return nil, nil, false
}
