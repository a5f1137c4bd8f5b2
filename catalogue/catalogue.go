// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalogue holds the ordered matcher table: regular
// expressions (and two multi-line shapes, CMake error blocks and
// Python tracebacks) paired with small builder functions that turn a
// captured line or block into a problem.Problem.
//
// The catalogue is consulted by package scan. It never logs and never
// panics on its own: a builder that cannot make sense of its capture
// returns ok=false and the caller moves on to the next matcher, rather
// than raising the way the Python original's builders sometimes did.
package catalogue

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/jelmer/buildlogscan/match"
	"github.com/jelmer/buildlogscan/problem"
)

// Builder turns a regex's captured groups (index 0 is the whole
// match) into a Problem. Returning ok=false means "this match doesn't
// actually tell us anything useful, keep scanning" — e.g. an optional
// group that didn't participate and is required for this variant.
// Builder may also be nil, for a location-only matcher (§4.C "a
// builder may ... return no Problem").
type Builder func(groups []string) (p problem.Problem, ok bool)

// MatcherError wraps a panic recovered from within a Builder. The
// catalogue never lets a single bad matcher crash a scan: Entry.Try
// recovers and returns this error instead, and the caller decides
// whether to log it — the core scan package never logs on its own.
type MatcherError struct {
	Origin string
	Cause  error
}

func (e *MatcherError) Error() string {
	return "matcher " + e.Origin + ": " + e.Cause.Error()
}
func (e *MatcherError) Unwrap() error { return e.Cause }

// Matcher is implemented by every catalogue member: single-line regex
// entries, the CMake block matcher, and the Python traceback matcher.
type Matcher interface {
	// Try attempts a match anchored at lines[i]. ok=false means "did
	// not apply here"; err is non-nil only if a builder failed on a
	// capture it should have been able to handle (see MatcherError).
	Try(lines []string, i int) (m match.Match, p problem.Problem, ok bool, err error)
}

// Entry is a single-line regex matcher: the most common catalogue
// shape (§4.C.1).
type Entry struct {
	re     *regexp.Regexp
	origin string
	build  Builder
}

// NewEntry compiles pattern once and pairs it with build (which may be
// nil for a location-only entry).
func NewEntry(pattern string, build Builder) Entry {
	return Entry{re: regexp.MustCompile(pattern), origin: "direct regex (" + pattern + ")", build: build}
}

func (e Entry) Try(lines []string, i int) (m match.Match, p problem.Problem, ok bool, err error) {
	line := stripNewline(lines[i])
	groups := e.re.FindStringSubmatch(line)
	if groups == nil {
		return nil, nil, false, nil
	}
	if e.build == nil {
		return match.NewSingleLineMatch(i, line, e.origin), nil, true, nil
	}
	p, matched, err := e.tryBuild(groups)
	if err != nil {
		return nil, nil, false, err
	}
	if !matched {
		return nil, nil, false, nil
	}
	return match.NewSingleLineMatch(i, line, e.origin), p, true, nil
}

func (e Entry) tryBuild(groups []string) (p problem.Problem, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, isErr := r.(error)
			if !isErr {
				rerr = errors.Errorf("%v", r)
			}
			err = &MatcherError{Origin: e.origin, Cause: rerr}
		}
	}()
	p, ok = e.build(groups)
	return p, ok, nil
}

func stripNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// Window is a bounded reverse iterator over a line slice: it never
// copies the underlying slice, only tracks the index range, which is
// the "bounded reverse iterator" design note 9 calls for.
type Window struct {
	lines []string
	lo    int // inclusive
	hi    int // exclusive
}

// NewBackwardWindow returns a Window covering the last backLimit lines
// of lines (or all of them, if shorter).
func NewBackwardWindow(lines []string, backLimit int) Window {
	lo := len(lines) - backLimit
	if lo < 0 {
		lo = 0
	}
	return Window{lines: lines, lo: lo, hi: len(lines)}
}

// Indices returns the covered 0-based indices from hi-1 down to lo,
// i.e. latest line first — the order the backward scanner in package
// scan wants to try matchers in.
func (w Window) Indices() []int {
	out := make([]int, 0, w.hi-w.lo)
	for i := w.hi - 1; i >= w.lo; i-- {
		out = append(out, i)
	}
	return out
}

// Lo is the first (lowest) index covered by the window.
func (w Window) Lo() int { return w.lo }

// Hi is one past the last index covered by the window.
func (w Window) Hi() int { return w.hi }

// ContainsCmake reports whether any line in the window contains the
// substring "cmake" (case-insensitive), the side-effect the backward
// scanner in package scan uses to decide whether to run the CMake
// fallback (§4.D).
func (w Window) ContainsCmake() bool {
	for i := w.lo; i < w.hi; i++ {
		if strings.Contains(strings.ToLower(w.lines[i]), "cmake") {
			return true
		}
	}
	return false
}

// Catalogue is the full ordered list of matchers tried at each anchor
// line, built once at init() time by the generated entries in
// regexps.go plus the CMake and Python-traceback matchers.
var Catalogue []Matcher

// GlobalEntries holds matchers whose builder always returns a global
// (is_global=true) Problem, e.g. the disk-space family. Registered
// directly by RegisterGlobal rather than discovered by introspection.
var GlobalEntries []Matcher

// AllWithGlobalsFirst returns GlobalEntries followed by Catalogue,
// which is what the backward scanner in package scan actually uses:
// trying globals first at every anchor implements the "no-space wins
// the tie-break" rule (§4.D) without needing a second full pass.
func AllWithGlobalsFirst() []Matcher {
	out := make([]Matcher, 0, len(GlobalEntries)+len(Catalogue))
	out = append(out, GlobalEntries...)
	out = append(out, Catalogue...)
	return out
}

// Register appends entries to Catalogue in order; call from an
// init() in regexps.go (and friends) so ordering matches source
// order, which is the priority order the spec requires.
func Register(entries ...Matcher) {
	Catalogue = append(Catalogue, entries...)
}

// RegisterGlobal is like Register but also marks the entries as
// global-first candidates for AllWithGlobalsFirst.
func RegisterGlobal(entries ...Matcher) {
	Catalogue = append(Catalogue, entries...)
	GlobalEntries = append(GlobalEntries, entries...)
}
