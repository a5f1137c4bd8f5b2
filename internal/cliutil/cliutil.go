// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cliutil holds the output plumbing shared by cmd/buildlogscan
// and cmd/sbuildlogscan: a colorizer, a JSON/Markdown/plain-text result
// writer, an argv echo, and a logrus logger, so both commands render
// findings identically instead of each growing its own copy.
package cliutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
	md "rsc.io/markdown"

	"github.com/jelmer/buildlogscan/internal/config"
	"github.com/jelmer/buildlogscan/problem"
)

// Colorizer renders the three roles a classified finding distinguishes
// on a terminal: a matched error line, a file path, and the colon
// after it. The ANSI work itself is delegated to fatih/color rather
// than a hand-rolled escape-code table.
type Colorizer struct {
	path      func(a ...interface{}) string
	pathColon func(a ...interface{}) string
	match     func(a ...interface{}) string
}

// NewColorizer builds a Colorizer for mode, one of "never", "always",
// or "auto" (fatih/color's own terminal/NO_COLOR detection).
func NewColorizer(mode string) (*Colorizer, error) {
	switch mode {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	case "auto":
		// color.NoColor already reflects isatty/NO_COLOR detection.
	default:
		return nil, fmt.Errorf("cliutil: color mode must be never, always, or auto, got %q", mode)
	}
	return &Colorizer{
		path:      color.New(color.FgMagenta).SprintFunc(),
		pathColon: color.New(color.FgCyan).SprintFunc(),
		match:     color.New(color.FgRed, color.Bold).SprintFunc(),
	}, nil
}

func (c *Colorizer) Path(s string) string      { return c.path(s) }
func (c *Colorizer) PathColon(s string) string { return c.pathColon(s) }
func (c *Colorizer) Match(s string) string     { return c.match(s) }

// EchoArgv writes args back out as a single shell-quoted line, so a
// saved report starts with the exact invocation that produced it.
func EchoArgv(w io.Writer, args []string) error {
	_, err := fmt.Fprintf(w, "`%s`\n", shellquote.Join(args...))
	return err
}

// Finding is one classified log: where it came from, the match anchor
// line number (0 if none), the classified Problem (nil if
// unclassified), a short description, and an optional known-issue
// label attached by matching Description against a config-supplied
// KnownIssue list.
type Finding struct {
	Source      string          `json:"source"`
	LineNo      int             `json:"line_no,omitempty"`
	Description string          `json:"description"`
	Problem     json.RawMessage `json:"problem,omitempty"`
	Issue       string          `json:"issue,omitempty"`
}

// NewFinding builds a Finding from a resolved Problem, using
// problem.MarshalEnvelope for the {kind, is_global, ...fields} payload.
func NewFinding(source string, lineNo int, description string, p problem.Problem) (Finding, error) {
	f := Finding{Source: source, LineNo: lineNo, Description: description}
	if p == nil {
		return f, nil
	}
	envelope, err := problem.MarshalEnvelope(p)
	if err != nil {
		return Finding{}, fmt.Errorf("cliutil: encoding finding for %s: %w", source, err)
	}
	f.Problem = envelope
	return f, nil
}

// MatchKnownIssue returns the Issue name of the first entry in known
// whose Regexp matches description, or "" if none match.
func MatchKnownIssue(known []config.KnownIssue, description string) string {
	for _, k := range known {
		re, err := regexp.Compile(k.Regexp)
		if err != nil {
			continue
		}
		if re.MatchString(description) {
			return k.Issue
		}
	}
	return ""
}

// WriteJSON writes findings as a JSON array, one object per finding.
func WriteJSON(w io.Writer, findings []Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// WriteMarkdown writes findings as a Markdown bullet list, one per
// finding, suitable for pasting into a bug report or CI summary.
func WriteMarkdown(w io.Writer, findings []Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "\n(no matching failures)")
		return err
	}
	for _, f := range findings {
		line := fmt.Sprintf("- `%s`: %s", f.Source, f.Description)
		if f.Issue != "" {
			line += fmt.Sprintf(" (%s)", f.Issue)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// mdParser builds a rsc.io/markdown Parser for PlainText's one-off
// parses. HeadingIDs doesn't matter for the short, headingless
// description text it's given, but the field still has to be set
// since rsc.io/markdown's zero Parser has no usable defaults.
func mdParser() *md.Parser {
	var p md.Parser
	p.HeadingIDs = true
	return &p
}

// PlainText strips Markdown formatting from s for plain-terminal
// output, walking the parsed Document's blocks and inlines down to
// their text content. Problem descriptions are already plain text today,
// but this keeps non-plain-text environment strings (e.g. a testbed
// stderr blob quoted verbatim with inline backticks) readable without
// leaking `*`/backtick noise into a non-Markdown report.
func PlainText(s string) string {
	doc := mdParser().Parse(s)
	var buf bytes.Buffer
	for _, b := range doc.Blocks {
		buf.WriteString(blockText(b))
	}
	return buf.String()
}

func blockText(b md.Block) string {
	switch b := b.(type) {
	case *md.Heading:
		return blockText(b.Text)
	case *md.Text:
		return inlineText(b.Inline)
	case *md.Paragraph:
		return blockText(b.Text)
	case *md.CodeBlock:
		return joinLines(b.Text)
	case *md.Empty:
		return ""
	default:
		// Anything else (lists, quotes, HTML) shouldn't appear in a
		// single-line description; render nothing rather than panic
		// on input we don't fully control the shape of.
		return ""
	}
}

func joinLines(lines []string) string {
	var buf bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(l)
	}
	return buf.String()
}

func inlineText(ins []md.Inline) string {
	var buf bytes.Buffer
	for _, in := range ins {
		in.PrintText(&buf)
	}
	return buf.String()
}

// commandFormatter renders a logrus.Entry the way sbuild's own log
// lines read: "level: message key=value ...", with no timestamp
// unless TimestampFormat is set. When a Colorizer is set, the level of
// warn and more severe entries is colored; nothing else is.
type commandFormatter struct {
	TimestampFormat string
	Colorizer       *Colorizer
}

func (f *commandFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	level := entry.Level.String()
	if f.Colorizer != nil && entry.Level <= logrus.WarnLevel {
		level = f.Colorizer.Match(level)
	}
	if f.TimestampFormat != "" {
		fmt.Fprintf(&buf, "%s ", entry.Time.Format(f.TimestampFormat))
	}
	fmt.Fprintf(&buf, "%s: %s", level, entry.Message)
	for k, v := range entry.Data {
		fmt.Fprintf(&buf, " %s=%v", k, v)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// NewLogger builds a logrus.Logger at level, formatted with
// commandFormatter. level is any string logrus.ParseLevel accepts
// ("debug", "info", "warn", "error", ...).
func NewLogger(level string, c *Colorizer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cliutil: %w", err)
	}
	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&commandFormatter{Colorizer: c})
	return logger, nil
}
