// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sbuildlog splits a raw sbuild transcript into its titled
// sections, mirroring parse_sbuild_log. sbuild brackets each section
// with a banner of the form:
//
//	+------...------+
//	|section title|
//	+------...------+
//
// and everything before the first banner (the "preamble") has no
// title at all.
package sbuildlog

import (
	"regexp"
	"strings"
)

// Section is one titled region of an sbuild transcript. Title is ""
// for the untitled preamble section that precedes the first banner.
type Section struct {
	Title     string
	Lines     []string
	BeginLine int // 1-based, inclusive
	EndLine   int // 1-based, inclusive
}

// Log is a parsed sbuild transcript: its sections in the order they
// appeared, plus a by-title index mirroring worker_failure_from_sbuild_log's
// paragraphs dict (later sections with the same, lower-cased, title
// overwrite earlier ones — sbuild transcripts don't repeat titles in
// practice, but the original doesn't guard against it either).
type Log struct {
	Sections []Section
	byTitle  map[string][]string
}

var sbuildBannerSep = strings.Repeat("-", 78)

// Parse splits lines (already split on "\n", trailing newlines
// retained or not — both are accepted) into sections, mirroring
// parse_sbuild_log.
func Parse(lines []string) *Log {
	log := &Log{byTitle: map[string][]string{}}

	sep := "+" + sbuildBannerSep + "+"
	var title string
	haveTitle := false
	begin := 1
	var cur []string

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimRight(line, "\r\n") == sep && i+2 < len(lines) {
			l1 := lines[i+1]
			l2 := lines[i+2]
			l1t := strings.TrimRight(l1, "\r\n")
			if strings.HasPrefix(l1, "|") && strings.HasSuffix(l1t, "|") && strings.TrimRight(l2, "\r\n") == sep {
				end := i // 0-based index of the banner's first line, exclusive of it
				for len(cur) > 0 && cur[len(cur)-1] == "" {
					cur = cur[:len(cur)-1]
					end--
				}
				if len(cur) > 0 {
					log.appendSection(title, haveTitle, cur, begin, end)
				}
				title = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(l1t, "|"), "|"))
				haveTitle = true
				cur = nil
				begin = i + 3 + 1
				i += 3
				continue
			}
		}
		cur = append(cur, strings.TrimRight(line, "\r\n"))
		i++
	}
	log.appendSection(title, haveTitle, cur, begin, len(lines))
	return log
}

func (l *Log) appendSection(title string, haveTitle bool, lines []string, begin, end int) {
	t := ""
	if haveTitle {
		t = title
	}
	l.Sections = append(l.Sections, Section{Title: t, Lines: lines, BeginLine: begin, EndLine: end})
	l.byTitle[strings.ToLower(t)] = lines
}

// Preamble returns the untitled lines before the first banner.
func (l *Log) Preamble() []string {
	return l.byTitle[""]
}

// SectionLines returns the lines of the section whose title matches name
// case-insensitively, or nil if there is no such section.
func (l *Log) SectionLines(name string) []string {
	return l.byTitle[strings.ToLower(name)]
}

// FocusSection maps an sbuild Fail-Stage value to the transcript
// section title that explains it, mirroring SBUILD_FOCUS_SECTION.
var FocusSection = map[string]string{
	"build":                    "build",
	"run-post-build-commands":  "post build commands",
	"post-build":               "post build",
	"install-deps":             "install package build dependencies",
	"explain-bd-uninstallable": "install package build dependencies",
	"apt-get-update":           "update chroot",
	"arch-check":               "check architectures",
	"check-space":              "cleanup",
	"unpack":                   "build",
	"fetch-src":                "fetch source files",
}

// FindFailedStage returns the value of the "Fail-Stage: " line in
// lines (normally the "summary" section), mirroring find_failed_stage.
func FindFailedStage(lines []string) (string, bool) {
	for _, line := range lines {
		if !strings.HasPrefix(line, "Fail-Stage: ") {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, "Fail-Stage: ")), true
	}
	return "", false
}

// DefaultLookBack is how many trailing lines StripBuildTail inspects
// for the "Build finished at " marker, mirroring DEFAULT_LOOK_BACK.
const DefaultLookBack = 50

var headerRe = regexp.MustCompile(`^==> (.*) <==$`)

// StripBuildTail trims the uninteresting tail sbuild appends after a
// build section's actual output — the "Build finished at " timing
// line, the banner separator beneath it, and any "==> file <==" dumps
// of files captured on failure (e.g. config.log) — mirroring
// strip_build_tail. It returns the trimmed lines and a map keyed by
// dumped file name; the dumped lines themselves are dropped, so every
// value in the map is empty.
func StripBuildTail(lines []string, lookBack int) ([]string, map[string][]string) {
	if lookBack <= 0 {
		lookBack = DefaultLookBack
	}

	start := len(lines) - lookBack
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "Build finished at ") {
			lines = lines[:i]
			if len(lines) > 0 && lines[len(lines)-1] == strings.Repeat("-", 80) {
				lines = lines[:len(lines)-1]
			}
			break
		}
	}

	files := map[string][]string{}
	var current []string
	for i := len(lines) - 1; i >= 0; i-- {
		if m := headerRe.FindStringSubmatch(lines[i]); m != nil {
			files[m[1]] = current
			current = nil
			lines = lines[:i]
			continue
		}
	}
	return lines, files
}
