// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autopkgtest parses an autopkgtest run's event-tagged output
// (the "autopkgtest [HH:MM:SS]: ..." lines that bracket every test's
// output and the "testname  FAIL reason" summary table at the end)
// and turns it into the same Problem taxonomy the rest of this module
// uses, recursing into scan and aptscan for failures whose actual
// cause is a build or apt error captured inside a test's output.
package autopkgtest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jelmer/buildlogscan/aptscan"
	"github.com/jelmer/buildlogscan/match"
	"github.com/jelmer/buildlogscan/problem"
	"github.com/jelmer/buildlogscan/scan"
)

// anchorAt builds a SingleLineMatch anchored at lines[offset],
// mirroring SingleLineMatch.from_lines(lines, offset) — every offset
// below is already an index into the full transcript, not a relative
// one, so this is a plain, bounds-clamped lookup rather than the
// contiguous-run convenience match.SingleLineMatchFromLines provides.
func anchorAt(lines []string, offset int, origin string) *match.SingleLineMatch {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lines) {
		offset = len(lines) - 1
	}
	return match.NewSingleLineMatch(offset, lines[offset], origin)
}

var eventLineRe = regexp.MustCompile(`^autopkgtest \[([0-9:]+)\]: (.*)`)

type event struct {
	kind    string // "test", "summary", "error", "" (ignored)
	test    string
	status  string // kind=="test": begin-output/end-output/results/stderr/prepare-testbed/<raw>
	message string // kind=="error": the error text; kind=="" (other): the raw message
}

// parseLine recognises one "autopkgtest [...]: ..." banner line,
// mirroring parse_autopgktest_line. ok is false for ordinary test
// output lines, which the caller appends to whichever field is
// currently open.
func parseLine(line string) (e event, ok bool) {
	m := eventLineRe.FindStringSubmatch(line)
	if m == nil {
		return event{}, false
	}
	msg := m[2]
	switch {
	case strings.HasPrefix(msg, "@@@@@@@@@@@@@@@@@@@@ source "):
		return event{}, true
	case strings.HasPrefix(msg, "@@@@@@@@@@@@@@@@@@@@ summary"):
		return event{kind: "summary"}, true
	case strings.HasPrefix(msg, "test "):
		rest := strings.TrimSuffix(msg[len("test "):], "\n")
		parts := strings.SplitN(rest, ": ", 2)
		if len(parts) != 2 {
			return event{}, true
		}
		testname, status := parts[0], parts[1]
		switch status {
		case "[-----------------------":
			status = "begin-output"
		case "-----------------------]":
			status = "end-output"
		case " - - - - - - - - - - results - - - - - - - - - -":
			status = "results"
		case " - - - - - - - - - - stderr - - - - - - - - - -":
			status = "stderr"
		case "preparing testbed":
			status = "prepare-testbed"
		}
		return event{kind: "test", test: testname, status: status}, true
	case strings.HasPrefix(msg, "ERROR:"):
		return event{kind: "error", message: strings.TrimPrefix(msg, "ERROR: ")}, true
	default:
		return event{kind: "", message: msg}, true
	}
}

type fieldKey struct {
	test string
	kind string
}

// Result is find_autopkgtest_failure_description's four-tuple: the
// location of the failure, which test (if any) it belongs to, the
// classified Problem (nil if nothing could be classified), and a
// short human description.
type Result struct {
	Match       match.Match
	Test        string
	Problem     problem.Problem
	Description string
}

var (
	reQuotedStderr      = regexp.MustCompile(`^"(.*)" failed with stderr "(.*)("?)$`)
	reChrootDisappeared = regexp.MustCompile(`^W: (.*): Failed to stat file: No such file or directory$`)
	reTestbedFailure    = regexp.MustCompile(`^testbed failure: (.*)$`)
	reErroneousPkg      = regexp.MustCompile(`^erroneous package: (.*)$`)
	reXDGNotSet         = regexp.MustCompile(`^QStandardPaths: XDG_RUNTIME_DIR not set, defaulting to '(.*)'$`)
)

// FindFailure scans an autopkgtest transcript for the failure that
// explains a non-zero exit, mirroring
// find_autopkgtest_failure_description. When lines hold no summary
// section, the Result carries only the last non-blank line as Match
// and Description; it is zero only if lines are empty or all blank.
func FindFailure(lines []string) Result {
	testOutput := map[fieldKey][]string{}
	testOutputOffset := map[fieldKey]int{}
	var current *fieldKey

	for i, line := range lines {
		e, ok := parseLine(line)
		if !ok {
			if current != nil {
				testOutput[*current] = append(testOutput[*current], line)
			}
			continue
		}

		switch e.kind {
		case "test":
			if e.status == "end-output" {
				current = nil
				continue
			}
			kind := e.status
			if kind == "begin-output" {
				kind = "output"
			}
			key := fieldKey{test: e.test, kind: kind}
			current = &key
			testOutput[key] = []string{}
			testOutputOffset[key] = i + 1
		case "summary":
			key := fieldKey{kind: "summary"}
			current = &key
			testOutput[key] = []string{}
			testOutputOffset[key] = i + 1
		case "error":
			if res, ok := dispatchError(lines, i, e.message, current, testOutput, testOutputOffset); ok {
				return res
			}
		}
	}

	summaryLines, ok := testOutput[fieldKey{kind: "summary"}]
	if !ok {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) == 0 {
			return Result{}
		}
		last := len(lines) - 1
		return Result{Match: anchorAt(lines, last, "autopkgtest"), Description: lines[last]}
	}
	summaryOffset := testOutputOffset[fieldKey{kind: "summary"}]
	return dispatchSummary(lines, summaryLines, summaryOffset, testOutput, testOutputOffset)
}

// dispatchError mirrors the content[0]=="error" branch of
// find_autopkgtest_failure_description's main loop.
func dispatchError(lines []string, i int, msg string, current *fieldKey, testOutput map[fieldKey][]string, testOutputOffset map[fieldKey]int) (Result, bool) {
	lastTest := ""
	if current != nil {
		lastTest = current.test
	}

	if m := reQuotedStderr.FindStringSubmatch(msg); m != nil {
		stderr := m[2]
		if reChrootDisappeared.MatchString(stderr) {
			return Result{
				Match:       anchorAt(lines, i, "autopkgtest"),
				Test:        lastTest,
				Problem:     &problem.AutopkgtestDepChrootDisappeared{},
				Description: stderr,
			}, true
		}
	}

	if m := reTestbedFailure.FindStringSubmatch(msg); m != nil {
		reason := m[1]
		if current != nil && reason == "testbed auxverb failed with exit code 255" {
			field := fieldKey{test: current.test, kind: "output"}
			if out, ok := testOutput[field]; ok {
				res := scan.FindBuildFailure(out)
				if res.Problem != nil {
					return Result{
						Match:       anchorAt(lines, testOutputOffset[field]+res.Match.Offset(), "autopkgtest"),
						Test:        lastTest,
						Problem:     res.Problem,
						Description: res.Match.Line(),
					}, true
				}
			}
		}
		if reason == "sent `auxverb_debug_fail', got `copy-failed', expected `ok...'" {
			res := scan.FindBuildFailure(lines)
			if res.Problem != nil {
				return Result{Match: res.Match, Test: lastTest, Problem: res.Problem, Description: res.Match.Line()}, true
			}
		}
		if reason == "cannot send to testbed: [Errno 32] Broken pipe" {
			if m2, p2, ok := findTestbedSetupFailure(lines); ok {
				return Result{Match: m2, Test: lastTest, Problem: p2, Description: m2.Line()}, true
			}
		}
		if reason == "apt repeatedly failed to download packages" {
			res := aptscan.FindAptGetFailure(lines)
			if res.Problem != nil {
				return Result{Match: res.Match, Test: lastTest, Problem: res.Problem, Description: res.Match.Line()}, true
			}
			return Result{
				Match:   anchorAt(lines, i, "autopkgtest"),
				Test:    lastTest,
				Problem: &problem.AptFetchFailure{Error: reason},
			}, true
		}
		return Result{
			Match:   anchorAt(lines, i, "autopkgtest"),
			Test:    lastTest,
			Problem: &problem.AutopkgtestTestbedFailure{Reason: reason},
		}, true
	}

	if m := reErroneousPkg.FindStringSubmatch(msg); m != nil {
		res := scan.FindBuildFailure(lines[:i])
		if res.Problem != nil {
			return Result{Match: res.Match, Test: lastTest, Problem: res.Problem, Description: res.Match.Line()}, true
		}
		return Result{
			Match:   anchorAt(lines, i, "autopkgtest"),
			Test:    lastTest,
			Problem: &problem.AutopkgtestErroneousPackage{Reason: m[1]},
		}, true
	}

	if current != nil {
		if out, ok := testOutput[*current]; ok {
			res := aptscan.FindAptGetFailure(out)
			if res.Problem != nil {
				if off, ok := testOutputOffset[*current]; ok {
					return Result{
						Match:       anchorAt(lines, off+res.Match.Offset(), "autopkgtest"),
						Test:        lastTest,
						Problem:     res.Problem,
						Description: res.Match.Line(),
					}, true
				}
			}
		}
	}

	if msg == "autopkgtest" && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == ": error cleaning up:" {
		off := i
		if current != nil {
			if o, ok := testOutputOffset[*current]; ok {
				off = o
			}
		}
		desc := ""
		if i > 0 {
			desc = strings.TrimSpace(lines[i-1])
		}
		return Result{
			Match:       anchorAt(lines, off, "autopkgtest"),
			Test:        lastTest,
			Problem:     &problem.AutopkgtestTimedOut{},
			Description: desc,
		}, true
	}

	return Result{Match: anchorAt(lines, i, "autopkgtest"), Test: lastTest, Description: msg}, true
}

type summaryRow struct {
	offset   int
	test     string
	result   string
	reason   string
	extra    []string
}

var (
	reJustPass   = regexp.MustCompile(`^([^ ]+)[ ]+PASS$`)
	reResultLine = regexp.MustCompile(`^([^ ]+)[ ]+(FAIL|PASS|SKIP|FLAKY) (.+)$`)
)

// parseSummary mirrors parse_autopkgtest_summary.
func parseSummary(lines []string) []summaryRow {
	var rows []summaryRow
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if m := reJustPass.FindStringSubmatch(line); m != nil {
			rows = append(rows, summaryRow{offset: i, test: m[1], result: "PASS"})
			continue
		}
		m := reResultLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		row := summaryRow{offset: i, test: m[1], result: m[2], reason: m[3]}
		if row.reason == "badpkg" {
			for i+1 < len(lines) && (strings.HasPrefix(lines[i+1], "badpkg:") || strings.HasPrefix(lines[i+1], "blame:")) {
				row.extra = append(row.extra, lines[i+1])
				i++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// dispatchSummary walks the autopkgtest summary table for the first
// non-passing row and classifies it, mirroring the tail half of
// find_autopkgtest_failure_description.
func dispatchSummary(lines, summaryLines []string, summaryOffset int, testOutput map[fieldKey][]string, testOutputOffset map[fieldKey]int) Result {
	for _, row := range parseSummary(summaryLines) {
		if row.result == "PASS" || row.result == "SKIP" {
			continue
		}

		switch {
		case row.reason == "timed out":
			return Result{
				Match:       anchorAt(lines, summaryOffset+row.offset, "autopkgtest"),
				Test:        row.test,
				Problem:     &problem.AutopkgtestTimedOut{},
				Description: row.reason,
			}

		case strings.HasPrefix(row.reason, "stderr: "):
			return dispatchStderr(lines, row, summaryOffset, testOutput, testOutputOffset)

		case row.reason == "badpkg":
			return dispatchBadpkg(lines, row, summaryOffset, testOutput, testOutputOffset)

		default:
			outKey := fieldKey{test: row.test, kind: "output"}
			outLines := testOutput[outKey]
			outOffset, hasOut := testOutputOffset[outKey]
			res := scan.FindBuildFailure(outLines)
			offset := summaryOffset + row.offset
			description := fmt.Sprintf("Test %s failed: %s", row.test, row.reason)
			if res.Match != nil && hasOut {
				offset = res.Match.Offset() + outOffset
				description = res.Match.Line()
			}
			return Result{
				Match:       anchorAt(lines, offset, "autopkgtest"),
				Test:        row.test,
				Problem:     res.Problem,
				Description: description,
			}
		}
	}
	return Result{}
}

func dispatchStderr(lines []string, row summaryRow, summaryOffset int, testOutput map[fieldKey][]string, testOutputOffset map[fieldKey]int) Result {
	output := strings.TrimPrefix(row.reason, "stderr: ")
	stderrKey := fieldKey{test: row.test, kind: "stderr"}
	stderrLines := testOutput[stderrKey]
	stderrOffset, hasStderrOffset := testOutputOffset[stderrKey]

	var p problem.Problem
	var description string
	offset := summaryOffset + row.offset
	haveOffset := false

	if len(stderrLines) > 0 {
		res := scan.FindBuildFailure(stderrLines)
		if res.Match != nil && hasStderrOffset {
			offset = res.Match.Offset() + stderrOffset
			haveOffset = true
			description = res.Match.Line()
			p = res.Problem
		} else if len(stderrLines) == 1 && reXDGNotSet.MatchString(stderrLines[0]) {
			p = &problem.XDGRunTimeNotSet{}
			description = stderrLines[0]
			if hasStderrOffset {
				offset = stderrOffset
				haveOffset = true
			}
		} else if hasStderrOffset {
			offset = stderrOffset
			haveOffset = true
		}
	} else {
		res := scan.FindBuildFailure([]string{output})
		if res.Match != nil {
			offset = summaryOffset + row.offset + res.Match.Offset()
			haveOffset = true
			description = res.Match.Line()
			p = res.Problem
		}
	}
	if !haveOffset {
		offset = summaryOffset + row.offset
	}
	if p == nil {
		p = &problem.AutopkgtestStderrFailure{Stderr: output}
		if description == "" {
			description = fmt.Sprintf("Test %s failed due to unauthorized stderr output: %s", row.test, output)
		}
	}
	return Result{Match: anchorAt(lines, offset, "autopkgtest"), Test: row.test, Problem: p, Description: description}
}

func dispatchBadpkg(lines []string, row summaryRow, summaryOffset int, testOutput map[fieldKey][]string, testOutputOffset map[fieldKey]int) Result {
	outKey := fieldKey{test: row.test, kind: "prepare-testbed"}
	if outLines, ok := testOutput[outKey]; ok && len(outLines) > 0 {
		if outOffset, ok := testOutputOffset[outKey]; ok {
			res := aptscan.FindAptGetFailure(outLines)
			if res.Problem != nil {
				return Result{
					Match:   anchorAt(lines, res.Match.Offset()+outOffset, "autopkgtest"),
					Test:    row.test,
					Problem: res.Problem,
				}
			}
		}
	}

	var badpkg, blame string
	blameOffset := 0
	for idx, l := range row.extra {
		if strings.HasPrefix(l, "badpkg: ") {
			badpkg = strings.TrimPrefix(l, "badpkg: ")
		}
		if strings.HasPrefix(l, "blame: ") {
			blame = l
			blameOffset = idx + 1
		}
	}
	description := fmt.Sprintf("Test %s failed", row.test)
	if badpkg != "" {
		description = fmt.Sprintf("Test %s failed: %s", row.test, strings.TrimRight(badpkg, "\n"))
	}
	p := problem.AutopkgtestDepsUnsatisfiableFromBlameLine(blame)
	return Result{
		Match:       anchorAt(lines, summaryOffset+row.offset+blameOffset, "autopkgtest"),
		Test:        row.test,
		Problem:     p,
		Description: description,
	}
}

var (
	reSetupFailed     = regexp.MustCompile(`^\[(.*)\] failed \(exit status ([0-9]+), stderr '(.*)'\)$`)
	reSetupChrootGone = regexp.MustCompile(`^E: (.*): Chroot not found\\n$`)
	reVirtSubprocFail = regexp.MustCompile("^<VirtSubproc>: failure: \\['(.*)'\\] unexpectedly produced stderr output `(.*)")
	reStatFileGone    = regexp.MustCompile(`^W: /var/lib/schroot/session/(.*): Failed to stat file: No such file or directory`)
)

// findTestbedSetupFailure mirrors find_testbed_setup_failure.
func findTestbedSetupFailure(lines []string) (match.Match, problem.Problem, bool) {
	for i := len(lines) - 1; i > 0; i-- {
		line := lines[i]
		if m := reSetupFailed.FindStringSubmatch(line); m != nil {
			command := m[1]
			stderr := m[3]
			if n := reSetupChrootGone.FindStringSubmatch(stderr); n != nil {
				return anchorAt(lines, i, "autopkgtest"), &problem.ChrootNotFound{Chroot: n[1]}, true
			}
			return anchorAt(lines, i, "autopkgtest"),
				&problem.AutopkgtestTestbedSetupFailure{Command: command, Error: stderr}, true
		}
		if m := reVirtSubprocFail.FindStringSubmatch(line); m != nil {
			command := m[1]
			stderrOutput := m[2]
			if reStatFileGone.MatchString(stderrOutput) {
				return anchorAt(lines, i, "autopkgtest"), &problem.AutopkgtestDepChrootDisappeared{}, true
			}
			return anchorAt(lines, i, "autopkgtest"),
				&problem.AutopkgtestTestbedSetupFailure{Command: command, Error: stderrOutput}, true
		}
	}
	return nil, nil, false
}
