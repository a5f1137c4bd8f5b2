// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalogue

import (
	"regexp"
	"strings"

	"github.com/jelmer/buildlogscan/match"
	"github.com/jelmer/buildlogscan/problem"
)

// cmakeBanner matches the line that opens a CMake error or warning
// block: "CMake Error at CMakeLists.txt:12 (find_package):".
var cmakeBanner = regexp.MustCompile(`^CMake (?:Error|Warning) at (.+):([0-9]+) \((.*)\):$`)

type cmakeSubRule struct {
	re      *regexp.Regexp
	builder func(m []string) problem.Problem
}

// cmakeBlockMatcher is a Matcher for the multi-line CMake diagnostic
// shape (§4.C.2): a banner line followed by an indented block, which
// is dedented and then tried against a second, DOTALL-style table of
// sub-patterns describing specific CMake complaints.
type cmakeBlockMatcher struct {
	rules []cmakeSubRule
}

// NewCMakeBlockMatcher builds the matcher with its fixed dispatch
// table, grounded on CMakeErrorMatcher.cmake_errors in the original.
func NewCMakeBlockMatcher() Matcher {
	return &cmakeBlockMatcher{rules: cmakeSubRules()}
}

func (m *cmakeBlockMatcher) Try(lines []string, i int) (match.Match, problem.Problem, bool, error) {
	banner := stripNewline(lines[i])
	g := cmakeBanner.FindStringSubmatch(banner)
	if g == nil {
		return nil, nil, false, nil
	}

	endIdx, blockLines := extractCMakeBlock(lines, i)
	body := dedentCMakeBlock(blockLines)

	for _, rule := range m.rules {
		sm := rule.re.FindStringSubmatch(body)
		if sm == nil {
			continue
		}
		p := rule.builder(sm)
		mm := match.NewMultiLineMatch(rangeInts(i, endIdx), rawLines(lines, i, endIdx), "CMake error block")
		return mm, p, true, nil
	}

	// Banner matched but no sub-rule recognised the body: still report
	// the location, with no specific Problem (ok=true, p=nil) so the
	// caller records it as an unparsed CMake failure rather than
	// falling through to a vaguer, unrelated matcher.
	mm := match.NewMultiLineMatch(rangeInts(i, endIdx), rawLines(lines, i, endIdx), "CMake error block")
	return mm, nil, true, nil
}

// extractCMakeBlock collects the banner line plus every following
// line that is either blank or indented, stopping at the first
// unindented non-blank line (mirrors _extract_error_lines). It
// returns the last included 0-based index and the raw block lines
// (banner excluded, trailing blank lines trimmed).
func extractCMakeBlock(lines []string, i int) (endIdx int, block []string) {
	endIdx = i
	for j := i + 1; j < len(lines); j++ {
		l := stripNewline(lines[j])
		if l != "" && !strings.HasPrefix(lines[j], " ") {
			break
		}
		block = append(block, l)
		endIdx = j
	}
	for len(block) > 0 && strings.TrimSpace(block[len(block)-1]) == "" {
		block = block[:len(block)-1]
		endIdx--
	}
	return endIdx, block
}

// dedentCMakeBlock removes the common leading whitespace from block,
// mirroring textwrap.dedent, and joins it back with newlines so the
// DOTALL sub-patterns can match across line boundaries.
func dedentCMakeBlock(block []string) string {
	if len(block) == 0 {
		return ""
	}
	minIndent := -1
	for _, l := range block {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := len(l) - len(strings.TrimLeft(l, " "))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(block, "\n")
	}
	out := make([]string, len(block))
	for i, l := range block {
		if len(l) >= minIndent {
			out[i] = l[minIndent:]
		} else {
			out[i] = strings.TrimLeft(l, " ")
		}
	}
	return strings.Join(out, "\n")
}

func rangeInts(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func rawLines(lines []string, lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, stripNewline(lines[i]))
	}
	return out
}

// cmakeSubRules is a representative subset of the original's
// cmake_errors dispatch table (§4.C.2), translated to Go's RE2 regex
// dialect (no lookaround, (?s) in place of re.DOTALL).
func cmakeSubRules() []cmakeSubRule {
	return []cmakeSubRule{
		{
			re: regexp.MustCompile(`(?s)^Could NOT find (.*) \(missing:\s*(.*?)\)\s*\(found suitable version.*`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingCMakeComponents{Name: m[1], Components: strings.Fields(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could NOT find (.*) \(missing: (.*)\)$`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingCMakeComponents{Name: m[1], Components: strings.Fields(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could NOT find (.*): Found unsuitable version "(.*)", but required is exact version "(.*)" \(found (.*)\)`),
			builder: func(m []string) problem.Problem {
				return &problem.CMakeNeedExactVersion{
					Package:      m[1],
					VersionFound: m[2],
					ExactVersion: m[3],
					Path:         m[4],
				}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could NOT find (.*): Found unsuitable version "(.*)", but required is at least "(.*)" \(found (.*)\)`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingPkgConfig{Module: m[1], MinimumVersion: strp(m[3])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could not find a configuration file for package "(.*)" that is compatible with requested version "(.*)"\.`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingCMakeConfig{Name: m[1], Version: strp(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could not find a package configuration file provided by "(.*)" \(requested version (.*)\) with any of the following names:\n\n((?:  .*\n)+)`),
			builder: func(m []string) problem.Problem {
				return &problem.CMakeFilesMissing{Filenames: splitIndented(m[3]), Version: strp(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^.*Could not find a package configuration file provided by "(.*)" with any of the following names:\n\n((?:  .*\n)+)`),
			builder: func(m []string) problem.Problem {
				return &problem.CMakeFilesMissing{Filenames: splitIndented(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^The imported target "(.*)" references the file\n\n\s*"(.*)"\n\nbut this file does not exist\.`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingFile{Path: m[2]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^No CMAKE_(.*)_COMPILER could be found\.`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingCommand{Command: strings.ToLower(m[1])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^file INSTALL cannot find\s+"(.*)"\.`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingFile{Path: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s).*No space left on device.*`),
			builder: func(m []string) problem.Problem {
				return &problem.NoSpaceOnDevice{}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^\*\*\* (.*) is required to build (.*)`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingVagueDependency{Name: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could not find \'(.*)\' executable[!,].*`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingCommand{Command: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could not find (.*)_STATIC_LIBRARIES using the following names: ([a-zA-Z0-9_.]+)`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingStaticLibrary{Library: m[1], Filename: m[2]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Python module (.*) not found!`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingPythonModule{Module: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^([^\s]+) library not found\.`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingLibrary{Library: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Could not find ([A-Za-z-]+)$`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingVagueDependency{Name: m[1]}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^([^\s]+) >= (.*) is required`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingVagueDependency{Name: m[1], MinimumVersion: strp(m[2])}
			},
		},
		{
			re: regexp.MustCompile(`(?s)^Couldn't find (.*)$`),
			builder: func(m []string) problem.Problem {
				return &problem.MissingVagueDependency{Name: m[1]}
			},
		},
	}
}

// splitIndented splits a block of "  foo.cmake\n  bar.cmake\n" style
// text into trimmed entries, mirroring the list comprehension in the
// original's CMakeFilesMissing builders.
func splitIndented(block string) []string {
	var out []string
	for _, l := range strings.Split(block, "\n") {
		t := strings.TrimSpace(l)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	Register(NewCMakeBlockMatcher())
}
