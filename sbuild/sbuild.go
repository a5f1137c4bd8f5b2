// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sbuild ties the section segmenter (sbuildlog), the generic
// build scanner (scan), the apt/dose3 scanner (aptscan), and the
// autopkgtest parser (autopkgtest) together into the single entry
// point a caller with a full sbuild transcript actually wants:
// "what failed, and why".
package sbuild

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jelmer/buildlogscan/aptscan"
	"github.com/jelmer/buildlogscan/autopkgtest"
	"github.com/jelmer/buildlogscan/problem"
	"github.com/jelmer/buildlogscan/scan"
	"github.com/jelmer/buildlogscan/sbuildlog"
)

// Failure is worker_failure_from_sbuild_log's return value: which
// stage sbuild reported as failed (from its "Fail-Stage: " summary
// line), a short human description, the classified Problem (nil if
// none could be classified), and a phase tuple identifying where
// inside that stage things went wrong (e.g. ["autopkgtest", testname]).
type Failure struct {
	Stage       string
	Description string
	Error       problem.Problem
	Phase       []string
}

// FromLog classifies a whole sbuild transcript, mirroring
// worker_failure_from_sbuild_log.
func FromLog(lines []string) Failure {
	log := sbuildlog.Parse(lines)

	if len(log.Sections) == 1 {
		_, desc, err := findPreambleFailure(log.Preamble())
		if err != nil {
			return Failure{Stage: "unpack", Description: desc, Error: err}
		}
	}

	summaryLines := log.SectionLines("summary")
	failedStage, _ := sbuildlog.FindFailedStage(summaryLines)
	focusSection := sbuildlog.FocusSection[failedStage]
	if failedStage == "run-post-build-commands" || failedStage == "post-build" {
		failedStage = "autopkgtest"
	}

	sectionLines := log.SectionLines(focusSection)

	var description string
	var phase []string
	var perr problem.Problem

	switch failedStage {
	case "fetch-src":
		if len(sectionLines) > 0 && strings.TrimSpace(sectionLines[0]) == "" {
			sectionLines = sectionLines[1:]
		}
		if len(sectionLines) == 1 && strings.HasPrefix(sectionLines[0], "E: Could not find ") {
			_, desc, err := findPreambleFailure(log.Preamble())
			return Failure{Stage: "unpack", Description: desc, Error: err}
		}

	case "create-session":
		_, _, err := findCreationSessionError(sectionLines)
		if err != nil {
			phase = []string{"create-session"}
			perr = err
			description = err.String()
		}

	case "unpack":
		_, desc, err := findPreambleFailure(sectionLines)
		if err != nil {
			return Failure{Stage: "unpack", Description: desc, Error: err}
		}

	case "build":
		stripped, _ := sbuildlog.StripBuildTail(sectionLines, sbuildlog.DefaultLookBack)
		res := scan.FindBuildFailure(stripped)
		phase = []string{"build"}
		if res.Problem != nil {
			perr = res.Problem
			description = res.Problem.String()
		} else if res.Match != nil {
			description = res.Match.Line()
		}

	case "autopkgtest":
		res := autopkgtest.FindFailure(sectionLines)
		phase = []string{"autopkgtest", res.Test}
		if res.Problem != nil {
			perr = res.Problem
			description = res.Description
			if description == "" {
				description = res.Problem.String()
			}
		} else if res.Description != "" {
			description = res.Description
		}

	case "apt-get-update":
		res := aptscan.FindAptGetFailure(sectionLines)
		if res.Problem != nil {
			perr = res.Problem
			description = res.Problem.String()
		} else if res.Match != nil {
			description = res.Match.Line()
		}

	case "install-deps", "explain-bd-uninstallable":
		res := aptscan.FindInstallDepsFailure(sectionLines)
		phase = []string{"build"}
		if res.Problem != nil {
			perr = res.Problem
			description = strings.TrimPrefix(res.Problem.String(), "E: ")
		} else if res.Match != nil {
			description = strings.TrimPrefix(res.Match.Line(), "E: ")
		}

	case "arch-check":
		_, _, err := findArchCheckFailure(sectionLines)
		if err != nil {
			perr = err
			description = err.String()
		}

	case "check-space":
		_, _, err := findCheckSpaceFailure(sectionLines)
		if err != nil {
			perr = err
			description = err.String()
		}
	}

	if description == "" && failedStage != "" {
		description = fmt.Sprintf("build failed stage %s", failedStage)
	}
	if description == "" {
		description = "build failed"
		phase = []string{"buildenv"}
		if len(log.Sections) == 1 {
			_, desc, err := findPreambleFailure(log.Preamble())
			if err != nil {
				perr = err
				description = desc
			} else {
				res := scan.FindBuildFailure(log.Preamble())
				if res.Problem != nil {
					perr = res.Problem
					description = res.Problem.String()
				} else if res.Match != nil {
					description = res.Match.Line()
				}
			}
		}
	}

	return Failure{Stage: failedStage, Description: description, Error: perr, Phase: phase}
}

// PreambleLookBack bounds the trailing lines findPreambleFailure
// inspects (the last PreambleLookBack-1 of them), mirroring
// find_preamble_failure_description's OFFSET.
const PreambleLookBack = 100

var (
	reUnwantedBinary     = regexp.MustCompile(`^dpkg-source: error: detected ([0-9]+) unwanted binary file`)
	reMissingControl     = regexp.MustCompile(`^dpkg-source: error: cannot read (.*/debian/control): No such file or directory$`)
	reSourceNoSpace      = regexp.MustCompile(`^dpkg-source: error: .*: No space left on device$`)
	reTarNoSpace         = regexp.MustCompile(`^tar: .*: Cannot write: No space left on device$`)
	reBinaryChanged      = regexp.MustCompile(`^dpkg-source: error: cannot represent change to (.*): binary file contents changed$`)
	reSourceFormatUnsupp = regexp.MustCompile(`^dpkg-source: error: source package format '(.*)' is not supported: Can't locate (.*) in @INC \(you may need to install the (.*) module\) \(@INC contains: (.*)\) at \(eval [0-9]+\) line [0-9]+\.$`)
	rePackageFailed      = regexp.MustCompile(`^E: Failed to package source directory (.*)$`)
	reBadVersion         = regexp.MustCompile(`^E: Bad version unknown in (.*)$`)
	reBadVersionDetail   = regexp.MustCompile(`^dpkg-parsechangelog: warning: .*\(l[0-9]+\): version '(.*)' is invalid: (.*)$`)
	rePatchDoesNotApply  = regexp.MustCompile(`^Patch (.*) does not apply \(enforce with -f\)$`)
	rePatchRejected      = regexp.MustCompile(`^dpkg-source: error: LC_ALL=C patch .* --reject-file=- < .*/debian/patches/([^ ]+) subprocess returned exit status 1$`)
	reUnbuildableFormat  = regexp.MustCompile(`^dpkg-source: error: can't build with source format '(.*)': (.*)$`)
	rePatchFileMissing   = regexp.MustCompile(`^dpkg-source: error: cannot read (.*): No such file or directory$`)
	reFormatUnsupported2 = regexp.MustCompile(`^dpkg-source: error: source package format '(.*)' is not supported: (.*)$`)
	reNoSuchRevision     = regexp.MustCompile(`^breezy\.errors\.NoSuchRevision: (.*) has no revision b'(.*)'$`)
	reSourcePackFailed   = regexp.MustCompile(`^dpkg-source: error: (.*)$`)
)

// findPreambleFailure scans the last PreambleLookBack lines of an
// untitled (no Fail-Stage) transcript, newest first, for one of the
// fixed dpkg-source/tar/patch idioms that explain why unpacking the
// source package itself failed, mirroring
// find_preamble_failure_description. It returns as soon as it finds
// one of the "definite" causes; a couple of vaguer matches
// (E: Failed to package..., trailing dpkg-source: error: ...) are
// remembered as a fallback and returned only if nothing more precise
// turns up by the time the window is exhausted.
func findPreambleFailure(lines []string) (offset int, description string, err problem.Problem) {
	var fallbackOffset int
	var fallbackDesc string
	var fallbackErr problem.Problem
	haveFallback := false

	limit := PreambleLookBack
	for i := 1; i < limit; i++ {
		lineno := len(lines) - i
		if lineno < 0 {
			break
		}
		line := strings.TrimRight(lines[lineno], "\n")

		if strings.HasPrefix(line, "dpkg-source: error: aborting due to unexpected upstream changes, see ") {
			var files []string
			j := lineno - 1
			for j > 0 {
				if lines[j] == "dpkg-source: info: local changes detected, the modified files are:\n" {
					e := &problem.DpkgSourceLocalChanges{Files: files}
					return lineno + 1, e.String(), e
				}
				files = append(files, strings.TrimSpace(lines[j]))
				j--
			}
			e := &problem.DpkgSourceLocalChanges{}
			return lineno + 1, e.String(), e
		}
		if line == "dpkg-source: error: unrepresentable changes to source" {
			e := &problem.DpkgSourceUnrepresentableChanges{}
			return lineno + 1, line, e
		}
		if reUnwantedBinary.MatchString(line) {
			e := &problem.DpkgUnwantedBinaryFiles{}
			return lineno + 1, line, e
		}
		if m := reMissingControl.FindStringSubmatch(line); m != nil {
			e := &problem.MissingControlFile{Path: m[1]}
			return lineno + 1, line, e
		}
		if reSourceNoSpace.MatchString(line) || reTarNoSpace.MatchString(line) {
			e := &problem.NoSpaceOnDevice{}
			return lineno + 1, line, e
		}
		if m := reBinaryChanged.FindStringSubmatch(line); m != nil {
			e := &problem.DpkgBinaryFileChanged{Files: []string{m[1]}}
			return lineno + 1, line, e
		}
		if m := reSourceFormatUnsupp.FindStringSubmatch(line); m != nil {
			e := &problem.SourceFormatUnsupported{Format: m[1]}
			return lineno + 1, line, e
		}
		if m := rePackageFailed.FindStringSubmatch(line); m != nil {
			e := &problem.DpkgSourcePackFailed{}
			fallbackOffset, fallbackDesc, fallbackErr, haveFallback = lineno+1, line, e, true
			_ = m
		}
		if m := reBadVersion.FindStringSubmatch(line); m != nil && lineno > 0 && strings.HasPrefix(lines[lineno-1], "LINE: ") && lineno-2 >= 0 {
			if d := reBadVersionDetail.FindStringSubmatch(strings.TrimRight(lines[lineno-2], "\n")); d != nil {
				e := &problem.DpkgBadVersion{Version: d[1], Reason: d[2]}
				return lineno + 1, line, e
			}
			_ = m
		}
		if m := rePatchDoesNotApply.FindStringSubmatch(line); m != nil {
			parts := strings.Split(m[1], "/")
			e := &problem.PatchApplicationFailed{Name: parts[len(parts)-1]}
			return lineno + 1, e.String(), e
		}
		if m := rePatchRejected.FindStringSubmatch(line); m != nil {
			e := &problem.PatchApplicationFailed{Name: m[1]}
			return lineno + 1, e.String(), e
		}
		if m := reUnbuildableFormat.FindStringSubmatch(line); m != nil {
			e := &problem.SourceFormatUnbuildable{Format: m[1]}
			return lineno + 1, e.String(), e
		}
		if m := rePatchFileMissing.FindStringSubmatch(line); m != nil {
			rest := m[1]
			if idx := strings.Index(rest, "/"); idx >= 0 {
				rest = rest[idx+1:]
			}
			e := &problem.PatchFileMissing{Patch: rest}
			return lineno + 1, e.String(), e
		}
		if m := reFormatUnsupported2.FindStringSubmatch(line); m != nil {
			res := scan.FindBuildFailure([]string{m[2]})
			var e problem.Problem
			if res.Problem != nil {
				e = res.Problem
			} else {
				e = &problem.SourceFormatUnsupported{Format: m[1]}
			}
			return lineno + 1, e.String(), e
		}
		if m := reNoSuchRevision.FindStringSubmatch(line); m != nil {
			e := &problem.MissingRevision{Revision: m[2]}
			return lineno + 1, e.String(), e
		}
		if m := reSourcePackFailed.FindStringSubmatch(line); m != nil {
			e := &problem.DpkgSourcePackFailed{Reason: m[1]}
			fallbackOffset, fallbackDesc, fallbackErr, haveFallback = lineno+1, e.String(), e, true
		}
	}

	if haveFallback {
		return fallbackOffset, fallbackDesc, fallbackErr
	}
	return 0, "", nil
}

var (
	reChrootNotFound = regexp.MustCompile(`^E: Chroot for distribution (.*), architecture (.*) not found$`)
)

// findCreationSessionError mirrors find_creation_session_error: the
// chroot-session setup section only ever reports the chroot-not-found
// and disk-space idioms precisely, everything else just leaves behind
// the last "E: " line it saw (scanning backward, so "last" here means
// nearest the top of the section) as a best-effort description.
func findCreationSessionError(lines []string) (offset int, line string, err problem.Problem) {
	for i := len(lines) - 1; i > 0; i-- {
		l := strings.TrimRight(lines[i], "\n")
		if strings.HasPrefix(l, "E: ") {
			offset, line, err = i+1, l, nil
		}
		if m := reChrootNotFound.FindStringSubmatch(l); m != nil {
			return i + 1, l, &problem.ChrootNotFound{Chroot: fmt.Sprintf("%s-%s-sbuild", m[1], m[2])}
		}
		if strings.HasSuffix(l, ": No space left on device") {
			return i + 1, l, &problem.NoSpaceOnDevice{}
		}
	}
	return offset, line, err
}

var reArchNotInList = regexp.MustCompile(`^E: dsc: (.*) not in arch list or does not match any arch wildcards: (.*) -- skipping$`)

// findArchCheckFailure mirrors find_arch_check_failure_description.
func findArchCheckFailure(lines []string) (offset int, line string, err problem.Problem) {
	for i, l := range lines {
		l = strings.TrimRight(l, "\n")
		if m := reArchNotInList.FindStringSubmatch(l); m != nil {
			return i, l, &problem.ArchitectureNotInList{Arch: m[1], ArchList: strings.Fields(m[2])}
		}
	}
	if len(lines) == 0 {
		return 0, "", nil
	}
	return len(lines) - 1, lines[len(lines)-1], nil
}

var reDiskSpaceDetail = regexp.MustCompile(`^I: Source needs ([0-9]+) KiB, while ([0-9]+) KiB is free\.?\)?$`)

// findCheckSpaceFailure mirrors find_check_space_failure_description.
// The original falls off the end of the function with no return
// value at all if the trigger line is never found, which would raise
// at the call site; we return a zero offset, an empty line and a nil
// Problem instead.
func findCheckSpaceFailure(lines []string) (offset int, line string, err problem.Problem) {
	for i, l := range lines {
		if strings.TrimRight(l, "\n") != "E: Disk space is probably not sufficient for building." {
			continue
		}
		if i+1 >= len(lines) {
			return i + 1, l, nil
		}
		if m := reDiskSpaceDetail.FindStringSubmatch(strings.TrimRight(lines[i+1], "\n")); m != nil {
			needed, _ := strconv.ParseInt(m[1], 10, 64)
			free, _ := strconv.ParseInt(m[2], 10, 64)
			return i + 1, l, &problem.InsufficientDiskSpace{Needed: needed, Free: free}
		}
		return i + 1, l, nil
	}
	return 0, "", nil
}
