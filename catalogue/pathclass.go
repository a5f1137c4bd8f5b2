// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalogue

import (
	"strings"

	"github.com/jelmer/buildlogscan/problem"
)

// sandboxMarker is the sbuild chroot build directory placeholder that
// shows up in paths inside a build log.
const sandboxMarker = "/<<PKGBUILDDIR>>/"

// ClassifyMissingPath applies the builder heuristics common to every
// path-capturing matcher (§4.C "Builder heuristics"): it turns a path
// string found in a "no such file" style diagnostic into the right
// Problem, or nil if the path should be ignored outright.
func ClassifyMissingPath(p string) problem.Problem {
	switch {
	case strings.HasSuffix(p, "/.git/HEAD"), strings.HasSuffix(p, "/CVS/Root"),
		p == ".git/HEAD", p == "CVS/Root":
		vcs := "Git"
		if strings.Contains(p, "CVS") {
			vcs = "CVS"
		}
		return &problem.VCSControlDirectoryNeeded{Vcs: []string{vcs}}
	case p == "./configure":
		return &problem.MissingConfigure{}
	case strings.Contains(p, sandboxMarker):
		rel := strings.SplitN(p, sandboxMarker, 2)[1]
		return &problem.MissingBuildFile{Filename: rel}
	case strings.HasPrefix(p, "./"), strings.HasPrefix(p, "../"):
		return nil
	case strings.HasPrefix(p, "/"):
		return &problem.MissingFile{Path: p}
	case strings.Contains(p, "/"):
		// A relative path with a directory component but no leading
		// sandbox marker: treat the same as an absolute path outside
		// the sandbox, since we cannot resolve it against a build
		// root we don't have.
		return &problem.MissingFile{Path: p}
	default:
		return &problem.MissingCommandOrBuildFile{Filename: p}
	}
}

// ClassifyBuildFile is used by matchers that already know the path is
// relative to the build tree (e.g. make's "No rule to make target"
// with a bare filename argument), so it defers to ClassifyMissingPath
// for everything — kept as its own entry point since callers name
// their intent at the call site, not because the classification
// differs.
func ClassifyBuildFile(p string) problem.Problem {
	return ClassifyMissingPath(p)
}
