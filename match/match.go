// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package match defines the Match value: the line(s) in a log that
// justify a Problem, independent of what (if anything) was found
// there.
package match

// Match is implemented by SingleLineMatch and MultiLineMatch.
type Match interface {
	// Offsets are the 0-based line indices this match covers, in
	// increasing order.
	Offsets() []int
	// Lines are the raw (newline-stripped) text of each offset, same
	// length and order as Offsets.
	Lines() []string
	// Offset is the last element of Offsets — the "anchor" line.
	Offset() int
	// Line is the last element of Lines.
	Line() string
	// LineNo is Offset()+1, the 1-based line number callers print.
	LineNo() int
	// LineNos is Offsets() shifted to 1-based.
	LineNos() []int
	// Origin is a short provenance tag for debugging, not semantics.
	Origin() string
}

// SingleLineMatch is a match anchored at exactly one line.
type SingleLineMatch struct {
	offset int
	line   string
	origin string
}

// NewSingleLineMatch builds a SingleLineMatch at offset (0-based) with
// the given line text and origin tag.
func NewSingleLineMatch(offset int, line, origin string) *SingleLineMatch {
	return &SingleLineMatch{offset: offset, line: line, origin: origin}
}

// SingleLineMatchFromLines builds a SingleLineMatch anchored at the last line of
// lines, where lines[0] corresponds to the line at firstOffset.
// Mirrors the original's SingleLineMatch.from_lines, which is used
// when a builder wants to report the match as "the group of lines
// that produced it" while still being a single logical anchor.
func SingleLineMatchFromLines(lines []string, firstOffset int, origin string) *SingleLineMatch {
	last := len(lines) - 1
	return &SingleLineMatch{offset: firstOffset + last, line: lines[last], origin: origin}
}

func (m *SingleLineMatch) Offsets() []int   { return []int{m.offset} }
func (m *SingleLineMatch) Lines() []string  { return []string{m.line} }
func (m *SingleLineMatch) Offset() int      { return m.offset }
func (m *SingleLineMatch) Line() string     { return m.line }
func (m *SingleLineMatch) LineNo() int      { return m.offset + 1 }
func (m *SingleLineMatch) LineNos() []int   { return []int{m.offset + 1} }
func (m *SingleLineMatch) Origin() string   { return m.origin }

// MultiLineMatch is a match spanning several, not necessarily
// contiguous, lines. Offset()/Line() alias the last element, per
// spec §3.
type MultiLineMatch struct {
	offsets []int
	lines   []string
	origin  string
}

// NewMultiLineMatch builds a MultiLineMatch. offsets and lines must be
// the same length and offsets must be strictly increasing.
func NewMultiLineMatch(offsets []int, lines []string, origin string) *MultiLineMatch {
	return &MultiLineMatch{offsets: offsets, lines: lines, origin: origin}
}

// MultiLineMatchFromLines builds a MultiLineMatch covering a
// contiguous run of lines starting at firstOffset.
func MultiLineMatchFromLines(lines []string, firstOffset int, origin string) *MultiLineMatch {
	offsets := make([]int, len(lines))
	for i := range lines {
		offsets[i] = firstOffset + i
	}
	return &MultiLineMatch{offsets: offsets, lines: lines, origin: origin}
}

func (m *MultiLineMatch) Offsets() []int  { return m.offsets }
func (m *MultiLineMatch) Lines() []string { return m.lines }
func (m *MultiLineMatch) Offset() int     { return m.offsets[len(m.offsets)-1] }
func (m *MultiLineMatch) Line() string    { return m.lines[len(m.lines)-1] }
func (m *MultiLineMatch) LineNo() int     { return m.Offset() + 1 }
func (m *MultiLineMatch) LineNos() []int {
	out := make([]int, len(m.offsets))
	for i, o := range m.offsets {
		out[i] = o + 1
	}
	return out
}
func (m *MultiLineMatch) Origin() string { return m.origin }
