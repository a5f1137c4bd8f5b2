// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jelmer/buildlogscan/internal/config"
	"github.com/jelmer/buildlogscan/problem"
)

func TestNewColorizerModes(t *testing.T) {
	if _, err := NewColorizer("loud"); err == nil {
		t.Fatal("NewColorizer(\"loud\") = nil error, want error")
	}

	c, err := NewColorizer("always")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[31;1mfoo\x1b[0m", c.Match("foo"))

	c, err = NewColorizer("never")
	require.NoError(t, err)
	assert.Equal(t, "foo", c.Match("foo"))
}

func TestEchoArgv(t *testing.T) {
	var buf bytes.Buffer
	if err := EchoArgv(&buf, []string{"buildlogscan", "--color=never", "a log.txt"}); err != nil {
		t.Fatal(err)
	}
	want := "`buildlogscan --color=never 'a log.txt'`\n"
	if buf.String() != want {
		t.Errorf("EchoArgv = %q, want %q", buf.String(), want)
	}
}

func TestNewFindingAndWriteJSON(t *testing.T) {
	f, err := NewFinding("build.log", 42, "chroot not found", &problem.ChrootNotFound{Chroot: "unstable-amd64-sbuild"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []Finding{f}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"source": "build.log"`, `"kind": "chroot-not-found"`, `"chroot": "unstable-amd64-sbuild"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("WriteJSON output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestNewFindingNilProblem(t *testing.T) {
	f, err := NewFinding("build.log", 0, "build failed", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Finding{Source: "build.log", Description: "build failed"}, f); diff != "" {
		t.Errorf("NewFinding mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no matching failures") {
		t.Errorf("WriteMarkdown(nil) = %q", buf.String())
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("**local changes detected**, see `debdiff`")
	want := "local changes detected, see debdiff"
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestMatchKnownIssue(t *testing.T) {
	known := []config.KnownIssue{
		{Issue: "golang/go#1", Regexp: `foo\.h`},
		{Issue: "golang/go#2", Regexp: `bar\.h`},
	}
	if got := MatchKnownIssue(known, "gcc: error: 'foo.h' file not found"); got != "golang/go#1" {
		t.Errorf("MatchKnownIssue = %q, want golang/go#1", got)
	}
	if got := MatchKnownIssue(known, "gcc: error: 'baz.h' file not found"); got != "" {
		t.Errorf("MatchKnownIssue = %q, want \"\"", got)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, err := NewLogger("deafening", nil); err == nil {
		t.Fatal("NewLogger with bad level = nil error, want error")
	}
}

func TestNewLoggerFormats(t *testing.T) {
	logger, err := NewLogger("info", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.WithField("kind", "chroot-not-found").Info("classified failure")

	got := buf.String()
	if !strings.Contains(got, "info: classified failure") || !strings.Contains(got, "kind=chroot-not-found") {
		t.Errorf("logger output = %q", got)
	}
}
