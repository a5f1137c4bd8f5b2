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

// pyFileNotFoundRe matches the final line of a Python traceback
// raised by a failed os-level file lookup, with or without pytest's
// "E   " prefix.
var pyFileNotFoundRe = regexp.MustCompile(`^(?:E\s+)?FileNotFoundError: \[Errno 2\] No such file or directory: '(.*)'$`)

// pyTracebackMatcher recognises a Python FileNotFoundError traceback
// tail (§4.C.3): it looks two lines back for "subprocess" to decide
// whether the missing path names a command (subprocess.Popen/run
// failing to exec it) or a plain file.
type pyTracebackMatcher struct{}

// NewPythonTracebackMatcher returns the Matcher for Python
// FileNotFoundError tracebacks.
func NewPythonTracebackMatcher() Matcher { return pyTracebackMatcher{} }

func (pyTracebackMatcher) Try(lines []string, i int) (match.Match, problem.Problem, bool, error) {
	line := stripNewline(lines[i])
	g := pyFileNotFoundRe.FindStringSubmatch(line)
	if g == nil {
		return nil, nil, false, nil
	}
	path := g[1]

	if i-2 >= 0 && strings.Contains(lines[i-2], "subprocess") {
		return match.NewSingleLineMatch(i, line, "python FileNotFoundError traceback"),
			&problem.MissingCommand{Command: path}, true, nil
	}

	p := ClassifyMissingPath(path)
	return match.NewSingleLineMatch(i, line, "python FileNotFoundError traceback"), p, true, nil
}

func init() {
	Register(NewPythonTracebackMatcher())
}
