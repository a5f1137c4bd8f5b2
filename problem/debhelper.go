// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "fmt"

// This file holds debhelper-specific failures and the small
// quality-gate family (coverage, symbol, and gettext-version checks
// that fail the build on a policy violation rather than an error).

func init() {
	register("missing-dh-compat-level", false, func() Problem { return &MissingDHCompatLevel{} })
	register("duplicate-dh-compat-level", false, func() Problem { return &DuplicateDHCompatLevel{} })
	register("unsupported-debhelper-compat-level", false, func() Problem { return &UnsupportedDebhelperCompatLevel{} })
	register("debhelper-pattern-not-found", false, func() Problem { return &DebhelperPatternNotFound{} })
	register("dh-addon-load-failure", false, func() Problem { return &DhAddonLoadFailure{} })
	register("dh-link-destination-is-directory", false, func() Problem { return &DhLinkDestinationIsDirectory{} })
	register("dh-missing-uninstalled", false, func() Problem { return &DhMissingUninstalled{} })
	register("dh-until-unsupported", false, func() Problem { return &DhUntilUnsupported{} })
	register("dh-with-order-incorrect", false, func() Problem { return &DhWithOrderIncorrect{} })
	register("minimum-autoconf-too-old", false, func() Problem { return &MinimumAutoconfTooOld{} })
	register("code-coverage-too-low", false, func() Problem { return &CodeCoverageTooLow{} })
	register("disappeared-symbols", false, func() Problem { return &DisappearedSymbols{} })
	register("mismatch-gettext-versions", false, func() Problem { return &MismatchGettextVersions{} })
	register("esmodule-must-use-import", false, func() Problem { return &ESModuleMustUseImport{} })
	register("setuptools-scm-version-issue", false, func() Problem { return &SetuptoolScmVersionIssue{} })
}

type MissingDHCompatLevel struct {
	Command string `json:"command"`
}

func (p *MissingDHCompatLevel) Kind() string   { return "missing-dh-compat-level" }
func (p *MissingDHCompatLevel) IsGlobal() bool { return false }
func (p *MissingDHCompatLevel) String() string {
	return fmt.Sprintf("missing debhelper compat level for %s", p.Command)
}

type DuplicateDHCompatLevel struct {
	Command string `json:"command"`
}

func (p *DuplicateDHCompatLevel) Kind() string   { return "duplicate-dh-compat-level" }
func (p *DuplicateDHCompatLevel) IsGlobal() bool { return false }
func (p *DuplicateDHCompatLevel) String() string {
	return fmt.Sprintf("duplicate debhelper compat level for %s", p.Command)
}

type UnsupportedDebhelperCompatLevel struct {
	Oldest    int `json:"oldest_supported"`
	Requested int `json:"requested"`
}

func (p *UnsupportedDebhelperCompatLevel) Kind() string {
	return "unsupported-debhelper-compat-level"
}
func (p *UnsupportedDebhelperCompatLevel) IsGlobal() bool { return false }
func (p *UnsupportedDebhelperCompatLevel) String() string {
	return fmt.Sprintf("unsupported debhelper compat level %d (oldest supported %d)", p.Requested, p.Oldest)
}

type DebhelperPatternNotFound struct {
	Pattern string   `json:"pattern"`
	Tool    string   `json:"tool"`
	Dirs    []string `json:"directories,omitempty"`
}

func (p *DebhelperPatternNotFound) Kind() string   { return "debhelper-pattern-not-found" }
func (p *DebhelperPatternNotFound) IsGlobal() bool { return false }
func (p *DebhelperPatternNotFound) String() string {
	return fmt.Sprintf("debhelper pattern not found: %s (%s)", p.Pattern, p.Tool)
}

type DhAddonLoadFailure struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
}

func (p *DhAddonLoadFailure) Kind() string   { return "dh-addon-load-failure" }
func (p *DhAddonLoadFailure) IsGlobal() bool { return false }
func (p *DhAddonLoadFailure) String() string {
	return fmt.Sprintf("failed to load debhelper addon %s from %s", p.Name, p.Path)
}

type DhLinkDestinationIsDirectory struct {
	Path string `json:"path"`
}

func (p *DhLinkDestinationIsDirectory) Kind() string   { return "dh-link-destination-is-directory" }
func (p *DhLinkDestinationIsDirectory) IsGlobal() bool { return false }
func (p *DhLinkDestinationIsDirectory) String() string {
	return fmt.Sprintf("link destination is a directory: %s", p.Path)
}

type DhMissingUninstalled struct {
	Missing string `json:"missing_file"`
}

func (p *DhMissingUninstalled) Kind() string   { return "dh-missing-uninstalled" }
func (p *DhMissingUninstalled) IsGlobal() bool { return false }
func (p *DhMissingUninstalled) String() string {
	return fmt.Sprintf("missing files left uninstalled: %s", p.Missing)
}

type DhUntilUnsupported struct{}

func (p *DhUntilUnsupported) Kind() string   { return "dh-until-unsupported" }
func (p *DhUntilUnsupported) IsGlobal() bool { return false }
func (p *DhUntilUnsupported) String() string { return "debhelper --until is no longer supported" }

type DhWithOrderIncorrect struct{}

func (p *DhWithOrderIncorrect) Kind() string   { return "dh-with-order-incorrect" }
func (p *DhWithOrderIncorrect) IsGlobal() bool { return false }
func (p *DhWithOrderIncorrect) String() string { return "dh --with order is incorrect" }

type MinimumAutoconfTooOld struct {
	Minimum string `json:"minimum_version"`
}

func (p *MinimumAutoconfTooOld) Kind() string   { return "minimum-autoconf-too-old" }
func (p *MinimumAutoconfTooOld) IsGlobal() bool { return false }
func (p *MinimumAutoconfTooOld) String() string {
	return fmt.Sprintf("autoconf minimum version %s is too old", p.Minimum)
}

type CodeCoverageTooLow struct {
	Actual   float64 `json:"actual"`
	Required float64 `json:"required"`
}

func (p *CodeCoverageTooLow) Kind() string   { return "code-coverage-too-low" }
func (p *CodeCoverageTooLow) IsGlobal() bool { return false }
func (p *CodeCoverageTooLow) String() string {
	return fmt.Sprintf("code coverage %.1f%% below required %.1f%%", p.Actual, p.Required)
}

type DisappearedSymbols struct {
	Symbols []string `json:"symbols"`
}

func (p *DisappearedSymbols) Kind() string   { return "disappeared-symbols" }
func (p *DisappearedSymbols) IsGlobal() bool { return false }
func (p *DisappearedSymbols) String() string {
	return fmt.Sprintf("symbols disappeared: %v", p.Symbols)
}

type MismatchGettextVersions struct {
	VersionMakefile string `json:"makefile_version"`
	VersionRuntime  string `json:"configure_version"`
}

func (p *MismatchGettextVersions) Kind() string   { return "mismatch-gettext-versions" }
func (p *MismatchGettextVersions) IsGlobal() bool { return false }
func (p *MismatchGettextVersions) String() string {
	return fmt.Sprintf("mismatched gettext versions: %s vs %s", p.VersionMakefile, p.VersionRuntime)
}

type ESModuleMustUseImport struct {
	Path string `json:"path"`
}

func (p *ESModuleMustUseImport) Kind() string   { return "esmodule-must-use-import" }
func (p *ESModuleMustUseImport) IsGlobal() bool { return false }
func (p *ESModuleMustUseImport) String() string {
	return fmt.Sprintf("%s is an ES module, must use import", p.Path)
}

type SetuptoolScmVersionIssue struct {
	Reason string `json:"reason"`
}

func (p *SetuptoolScmVersionIssue) Kind() string   { return "setuptools-scm-version-issue" }
func (p *SetuptoolScmVersionIssue) IsGlobal() bool { return false }
func (p *SetuptoolScmVersionIssue) String() string {
	return fmt.Sprintf("setuptools_scm version issue: %s", p.Reason)
}
