// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalogue

import (
	"strconv"

	"github.com/jelmer/buildlogscan/problem"
)

// This file registers the is_global=true catalogue entries (§4.D
// "global-kind tie-break"): the handful of kinds whose presence
// anywhere in the scanned window should win over a more specific
// match found in the same window, because they tend to cause a flood
// of unrelated-looking symptoms downstream (a full disk breaks
// dozens of later build steps in ways that look like missing files).

func init() {
	RegisterGlobal(
		NewEntry(`.*No space left on device.*`,
			func(g []string) (problem.Problem, bool) { return &problem.NoSpaceOnDevice{}, true }),
		NewEntry(`E: Chroot for distribution (.*), architecture (.*) not found`,
			func(g []string) (problem.Problem, bool) {
				return &problem.ChrootNotFound{Chroot: g[1] + "/" + g[2]}, true
			}),
		NewEntry(`go: .*: Get "(.*)": x509: certificate signed by unknown authority`,
			func(g []string) (problem.Problem, bool) {
				return &problem.UnknownCertificateAuthority{URL: g[1]}, true
			}),
		NewEntry(`fatal: unable to access '(.*)': server certificate verification failed\. CAfile: none CRLfile: none`,
			func(g []string) (problem.Problem, bool) {
				return &problem.UnknownCertificateAuthority{URL: g[1]}, true
			}),
		NewEntry(`E: Build killed with signal TERM after ([0-9]+) minutes of inactivity`,
			func(g []string) (problem.Problem, bool) {
				minutes, err := strconv.Atoi(g[1])
				if err != nil {
					return nil, false
				}
				return &problem.InactiveKilled{Minutes: minutes}, true
			}),
		NewEntry(`Build was cancelled`,
			func(g []string) (problem.Problem, bool) { return &problem.Cancelled{}, true }),
		NewEntry(`E: Disk space is probably not sufficient for building\.`,
			func(g []string) (problem.Problem, bool) { return nil, false }), // needs the follow-up line, handled in sbuild's dedicated scanner
	)
}
