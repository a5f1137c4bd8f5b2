// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"encoding/json"
	"fmt"
	"strings"
)

// This file holds the dpkg/apt/sbuild family: failures from the
// Debian packaging toolchain itself, as opposed to a missing upstream
// dependency of the package being built.

func init() {
	register("apt-broken-packages", false, func() Problem { return &AptBrokenPackages{} })
	register("apt-file-fetch-failure", false, func() Problem { return &AptFetchFailure{} })
	register("missing-release-file", false, func() Problem { return &AptMissingReleaseFile{} })
	register("apt-package-unknown", false, func() Problem { return &AptPackageUnknown{} })
	register("dpkg-error", false, func() Problem { return &DpkgError{} })
	register("unsatisfied-apt-dependencies", false, func() Problem { return &UnsatisfiedAptDependencies{} })
	register("unsatisfied-apt-conflicts", false, func() Problem { return &UnsatisfiedAptConflicts{} })
	register("unexpected-local-upstream-changes", false, func() Problem { return &DpkgSourceLocalChanges{} })
	register("unrepresentable-changes", false, func() Problem { return &DpkgSourceUnrepresentableChanges{} })
	register("unwanted-binary-files", false, func() Problem { return &DpkgUnwantedBinaryFiles{} })
	register("changed-binary-files", false, func() Problem { return &DpkgBinaryFileChanged{} })
	register("missing-control-file", false, func() Problem { return &MissingControlFile{} })
	register("unable-to-find-upstream-tarball", false, func() Problem { return &UnableToFindUpstreamTarball{} })
	register("patch-application-failed", false, func() Problem { return &PatchApplicationFailed{} })
	register("unsupported-source-format", false, func() Problem { return &SourceFormatUnsupported{} })
	register("unbuildable-source-format", false, func() Problem { return &SourceFormatUnbuildable{} })
	register("patch-file-missing", false, func() Problem { return &PatchFileMissing{} })
	register("unknown-mercurial-extra-fields", false, func() Problem { return &UnknownMercurialExtraFields{} })
	register("upstream-pgp-signature-verification-failed", false, func() Problem { return &UpstreamPGPSignatureVerificationFailed{} })
	register("uscan-requested-version-missing", false, func() Problem { return &UScanRequestVersionMissing{} })
	register("uscan-failed", false, func() Problem { return &UScanFailed{} })
	register("debcargo-failed", false, func() Problem { return &DebcargoFailure{} })
	register("debcargo-unacceptable-predicate", false, func() Problem { return &DebcargoUnacceptablePredicate{} })
	register("inconsistent-source-format", false, func() Problem { return &InconsistentSourceFormat{} })
	register("upstream-metadata-file-parse-error", false, func() Problem { return &UpstreamMetadataFileParseError{} })
	register("dpkg-source-pack-failed", false, func() Problem { return &DpkgSourcePackFailed{} })
	register("dpkg-bad-version", false, func() Problem { return &DpkgBadVersion{} })
	register("debian-version-rejected", false, func() Problem { return &DebianVersionRejected{} })
	register("missing-revision", false, func() Problem { return &MissingRevision{} })
}

type AptBrokenPackages struct {
	Description string   `json:"description"`
	Broken      []string `json:"broken,omitempty"`
}

func (p *AptBrokenPackages) Kind() string   { return "apt-broken-packages" }
func (p *AptBrokenPackages) IsGlobal() bool { return false }
func (p *AptBrokenPackages) String() string { return fmt.Sprintf("broken packages: %s", p.Description) }

type AptFetchFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (p *AptFetchFailure) Kind() string   { return "apt-file-fetch-failure" }
func (p *AptFetchFailure) IsGlobal() bool { return false }
func (p *AptFetchFailure) String() string {
	return fmt.Sprintf("failed to fetch %s: %s", p.URL, p.Error)
}

type AptMissingReleaseFile struct {
	URL string `json:"url"`
}

func (p *AptMissingReleaseFile) Kind() string   { return "missing-release-file" }
func (p *AptMissingReleaseFile) IsGlobal() bool { return false }
func (p *AptMissingReleaseFile) String() string {
	return fmt.Sprintf("repository %s has no Release file", p.URL)
}

type AptPackageUnknown struct {
	Package string `json:"package"`
}

func (p *AptPackageUnknown) Kind() string   { return "apt-package-unknown" }
func (p *AptPackageUnknown) IsGlobal() bool { return false }
func (p *AptPackageUnknown) String() string { return fmt.Sprintf("unknown package: %s", p.Package) }

type DpkgError struct {
	Error string `json:"error"`
}

func (p *DpkgError) Kind() string   { return "dpkg-error" }
func (p *DpkgError) IsGlobal() bool { return false }
func (p *DpkgError) String() string { return fmt.Sprintf("dpkg error: %s", p.Error) }

// Relation is a single normalised Debian package relation, e.g.
// {Name: "libfoo-dev", Version: "1.2", Operator: ">="}.
type Relation struct {
	Name     string `json:"name"`
	Operator string `json:"operator,omitempty"`
	Version  string `json:"version,omitempty"`
	Archs    []string `json:"archs,omitempty"`
}

// String renders the relation in Debian control-file syntax, e.g.
// "libfoo-dev (>= 1.2)".
func (r Relation) String() string {
	if r.Operator == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s %s)", r.Name, r.Operator, r.Version)
}

// RelationSet is a list of alternative relations joined by "|", the
// PkgRelation.parse representation used by python-debian.
type RelationSet []Relation

func (rs RelationSet) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " | ")
}

// UnsatisfiedAptDependencies overrides the default field-map JSON form:
// it serialises to its canonical Debian relation string rather than a
// structured field list, per spec §4.A ("a few variants override the
// default").
type UnsatisfiedAptDependencies struct {
	Relations []RelationSet `json:"-"`
}

func (p *UnsatisfiedAptDependencies) Kind() string   { return "unsatisfied-apt-dependencies" }
func (p *UnsatisfiedAptDependencies) IsGlobal() bool { return false }
func (p *UnsatisfiedAptDependencies) String() string {
	return fmt.Sprintf("unsatisfied dependencies: %s", p.canonical())
}

func (p *UnsatisfiedAptDependencies) canonical() string {
	parts := make([]string, len(p.Relations))
	for i, rs := range p.Relations {
		parts[i] = rs.String()
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON implements the canonical-string override.
func (p *UnsatisfiedAptDependencies) MarshalJSON() ([]byte, error) {
	return marshalCanonicalRelations(p.canonical())
}

// UnmarshalJSON accepts the canonical string form only; any other
// JSON value is an error.
func (p *UnsatisfiedAptDependencies) UnmarshalJSON(data []byte) error {
	rels, err := unmarshalCanonicalRelations(data)
	if err != nil {
		return err
	}
	p.Relations = rels
	return nil
}

type UnsatisfiedAptConflicts struct {
	Relations []RelationSet `json:"-"`
}

func (p *UnsatisfiedAptConflicts) Kind() string   { return "unsatisfied-apt-conflicts" }
func (p *UnsatisfiedAptConflicts) IsGlobal() bool { return false }
func (p *UnsatisfiedAptConflicts) String() string {
	return fmt.Sprintf("unsatisfied conflicts: %s", p.canonical())
}

func (p *UnsatisfiedAptConflicts) canonical() string {
	parts := make([]string, len(p.Relations))
	for i, rs := range p.Relations {
		parts[i] = rs.String()
	}
	return strings.Join(parts, ", ")
}

func (p *UnsatisfiedAptConflicts) MarshalJSON() ([]byte, error) {
	return marshalCanonicalRelations(p.canonical())
}

func (p *UnsatisfiedAptConflicts) UnmarshalJSON(data []byte) error {
	rels, err := unmarshalCanonicalRelations(data)
	if err != nil {
		return err
	}
	p.Relations = rels
	return nil
}

type DpkgSourceLocalChanges struct {
	DiffFile string   `json:"diff_file,omitempty"`
	Files    []string `json:"files,omitempty"`
}

func (p *DpkgSourceLocalChanges) Kind() string   { return "unexpected-local-upstream-changes" }
func (p *DpkgSourceLocalChanges) IsGlobal() bool { return false }
func (p *DpkgSourceLocalChanges) String() string {
	return fmt.Sprintf("unexpected upstream changes: %v", p.Files)
}

type DpkgSourceUnrepresentableChanges struct{}

func (p *DpkgSourceUnrepresentableChanges) Kind() string   { return "unrepresentable-changes" }
func (p *DpkgSourceUnrepresentableChanges) IsGlobal() bool { return false }
func (p *DpkgSourceUnrepresentableChanges) String() string {
	return "unrepresentable upstream changes"
}

type DpkgUnwantedBinaryFiles struct {
	Files []string `json:"files"`
}

func (p *DpkgUnwantedBinaryFiles) Kind() string   { return "unwanted-binary-files" }
func (p *DpkgUnwantedBinaryFiles) IsGlobal() bool { return false }
func (p *DpkgUnwantedBinaryFiles) String() string {
	return fmt.Sprintf("unwanted binary files: %v", p.Files)
}

type DpkgBinaryFileChanged struct {
	Files []string `json:"files"`
}

func (p *DpkgBinaryFileChanged) Kind() string   { return "changed-binary-files" }
func (p *DpkgBinaryFileChanged) IsGlobal() bool { return false }
func (p *DpkgBinaryFileChanged) String() string {
	return fmt.Sprintf("changed binary files: %v", p.Files)
}

type MissingControlFile struct {
	Path string `json:"path"`
}

func (p *MissingControlFile) Kind() string   { return "missing-control-file" }
func (p *MissingControlFile) IsGlobal() bool { return false }
func (p *MissingControlFile) String() string {
	return fmt.Sprintf("missing control file: %s", p.Path)
}

type UnableToFindUpstreamTarball struct {
	Package string `json:"package"`
	Version string `json:"version"`
}

func (p *UnableToFindUpstreamTarball) Kind() string   { return "unable-to-find-upstream-tarball" }
func (p *UnableToFindUpstreamTarball) IsGlobal() bool { return false }
func (p *UnableToFindUpstreamTarball) String() string {
	return fmt.Sprintf("unable to find upstream tarball for %s %s", p.Package, p.Version)
}

type PatchApplicationFailed struct {
	Name string `json:"name"`
}

func (p *PatchApplicationFailed) Kind() string   { return "patch-application-failed" }
func (p *PatchApplicationFailed) IsGlobal() bool { return false }
func (p *PatchApplicationFailed) String() string {
	return fmt.Sprintf("patch application failed: %s", p.Name)
}

type SourceFormatUnsupported struct {
	Format string `json:"format"`
}

func (p *SourceFormatUnsupported) Kind() string   { return "unsupported-source-format" }
func (p *SourceFormatUnsupported) IsGlobal() bool { return false }
func (p *SourceFormatUnsupported) String() string {
	return fmt.Sprintf("unsupported source format: %s", p.Format)
}

type SourceFormatUnbuildable struct {
	Format string `json:"format"`
}

func (p *SourceFormatUnbuildable) Kind() string   { return "unbuildable-source-format" }
func (p *SourceFormatUnbuildable) IsGlobal() bool { return false }
func (p *SourceFormatUnbuildable) String() string {
	return fmt.Sprintf("unbuildable source format: %s", p.Format)
}

type PatchFileMissing struct {
	Patch string `json:"patch"`
}

func (p *PatchFileMissing) Kind() string   { return "patch-file-missing" }
func (p *PatchFileMissing) IsGlobal() bool { return false }
func (p *PatchFileMissing) String() string { return fmt.Sprintf("missing patch file: %s", p.Patch) }

type UnknownMercurialExtraFields struct {
	Field string `json:"field"`
}

func (p *UnknownMercurialExtraFields) Kind() string   { return "unknown-mercurial-extra-fields" }
func (p *UnknownMercurialExtraFields) IsGlobal() bool { return false }
func (p *UnknownMercurialExtraFields) String() string {
	return fmt.Sprintf("unknown mercurial extra field: %s", p.Field)
}

type UpstreamPGPSignatureVerificationFailed struct{}

func (p *UpstreamPGPSignatureVerificationFailed) Kind() string {
	return "upstream-pgp-signature-verification-failed"
}
func (p *UpstreamPGPSignatureVerificationFailed) IsGlobal() bool { return false }
func (p *UpstreamPGPSignatureVerificationFailed) String() string {
	return "upstream PGP signature verification failed"
}

type UScanRequestVersionMissing struct {
	Version string `json:"version"`
}

func (p *UScanRequestVersionMissing) Kind() string   { return "uscan-requested-version-missing" }
func (p *UScanRequestVersionMissing) IsGlobal() bool { return false }
func (p *UScanRequestVersionMissing) String() string {
	return fmt.Sprintf("uscan requested version %s missing", p.Version)
}

type UScanFailed struct {
	Reason string `json:"reason"`
}

func (p *UScanFailed) Kind() string   { return "uscan-failed" }
func (p *UScanFailed) IsGlobal() bool { return false }
func (p *UScanFailed) String() string { return fmt.Sprintf("uscan failed: %s", p.Reason) }

type DebcargoFailure struct {
	Reason string `json:"reason,omitempty"`
}

func (p *DebcargoFailure) Kind() string   { return "debcargo-failed" }
func (p *DebcargoFailure) IsGlobal() bool { return false }
func (p *DebcargoFailure) String() string { return fmt.Sprintf("debcargo failed: %s", p.Reason) }

type DebcargoUnacceptablePredicate struct {
	Crate     string `json:"crate"`
	Predicate string `json:"predicate"`
}

func (p *DebcargoUnacceptablePredicate) Kind() string   { return "debcargo-unacceptable-predicate" }
func (p *DebcargoUnacceptablePredicate) IsGlobal() bool { return false }
func (p *DebcargoUnacceptablePredicate) String() string {
	return fmt.Sprintf("debcargo unacceptable predicate %s for %s", p.Predicate, p.Crate)
}

type InconsistentSourceFormat struct{}

func (p *InconsistentSourceFormat) Kind() string   { return "inconsistent-source-format" }
func (p *InconsistentSourceFormat) IsGlobal() bool { return false }
func (p *InconsistentSourceFormat) String() string { return "inconsistent source format" }

type UpstreamMetadataFileParseError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func (p *UpstreamMetadataFileParseError) Kind() string   { return "upstream-metadata-file-parse-error" }
func (p *UpstreamMetadataFileParseError) IsGlobal() bool { return false }
func (p *UpstreamMetadataFileParseError) String() string {
	return fmt.Sprintf("failed to parse %s: %s", p.Path, p.Error)
}

type DpkgSourcePackFailed struct {
	Reason string `json:"reason,omitempty"`
}

func (p *DpkgSourcePackFailed) Kind() string   { return "dpkg-source-pack-failed" }
func (p *DpkgSourcePackFailed) IsGlobal() bool { return false }
func (p *DpkgSourcePackFailed) String() string {
	return fmt.Sprintf("dpkg-source pack failed: %s", p.Reason)
}

type DpkgBadVersion struct {
	Version string `json:"version"`
	Reason  string `json:"reason,omitempty"`
}

func (p *DpkgBadVersion) Kind() string   { return "dpkg-bad-version" }
func (p *DpkgBadVersion) IsGlobal() bool { return false }
func (p *DpkgBadVersion) String() string {
	return fmt.Sprintf("bad version %s: %s", p.Version, p.Reason)
}

type DebianVersionRejected struct {
	Version string `json:"version"`
}

func (p *DebianVersionRejected) Kind() string   { return "debian-version-rejected" }
func (p *DebianVersionRejected) IsGlobal() bool { return false }
func (p *DebianVersionRejected) String() string {
	return fmt.Sprintf("version %s rejected", p.Version)
}

type MissingRevision struct {
	Revision string `json:"revision"`
}

func (p *MissingRevision) Kind() string   { return "missing-revision" }
func (p *MissingRevision) IsGlobal() bool { return false }
func (p *MissingRevision) String() string { return fmt.Sprintf("missing revision: %s", p.Revision) }

func marshalCanonicalRelations(canonical string) ([]byte, error) {
	return json.Marshal(canonical)
}

// ParseRelations parses a Debian control-file relation string (the
// format produced by python-debian's PkgRelation.str and consumed by
// PkgRelation.parse_relations) into a RelationSet slice, comma-
// separated groups of pipe-separated alternatives. Exported for
// package aptscan, which builds UnsatisfiedAptDependencies/Conflicts
// out of CUDF "unsat-dependency"/"unsat-conflict" relation strings.
func ParseRelations(text string) []RelationSet {
	rels, _ := unmarshalCanonicalRelations(mustMarshalString(text))
	return rels
}

func mustMarshalString(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

// unmarshalCanonicalRelations parses the canonical Debian relation
// string form ("a (>= 1) | b, c") back into a RelationSet slice. It is
// a small, deliberately forgiving parser: a relation missing its
// operator/version is treated as a bare name.
func unmarshalCanonicalRelations(data []byte) ([]RelationSet, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	var out []RelationSet
	for _, group := range strings.Split(s, ",") {
		var rs RelationSet
		for _, alt := range strings.Split(group, "|") {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				continue
			}
			rs = append(rs, parseRelation(alt))
		}
		if len(rs) > 0 {
			out = append(out, rs)
		}
	}
	return out, nil
}

func parseRelation(s string) Relation {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Relation{Name: strings.TrimSpace(s)}
	}
	name := strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	parts := strings.SplitN(inner, " ", 2)
	if len(parts) != 2 {
		return Relation{Name: name}
	}
	return Relation{Name: name, Operator: parts[0], Version: parts[1]}
}
