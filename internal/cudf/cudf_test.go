// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cudf

import "testing"

func TestFindOutputLocatesBlock(t *testing.T) {
	lines := []string{
		"Solving dependencies...\n",
		"output-version: 1.2\n",
		"report:\n",
		" -\n",
		"   package: sbuild-build-depends-main-dummy\n",
		"   status: broken\n",
		"\n",
		"trailing noise\n",
	}
	doc, ok := FindOutput(lines)
	if !ok {
		t.Fatal("FindOutput did not find the report block")
	}
	report := List(Get(doc, "report"))
	if len(report) != 1 {
		t.Fatalf("len(report) = %d, want 1", len(report))
	}
	if got := String(Get(report[0], "package")); got != "sbuild-build-depends-main-dummy" {
		t.Errorf("package = %q, want sbuild-build-depends-main-dummy", got)
	}
	if got := String(Get(report[0], "status")); got != "broken" {
		t.Errorf("status = %q, want broken", got)
	}
}

func TestFindOutputAbsent(t *testing.T) {
	if _, ok := FindOutput([]string{"nothing here\n"}); ok {
		t.Error("FindOutput found a block where there was none")
	}
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	doc := map[string]Node{"a": "b"}
	if Get(doc, "missing") != nil {
		t.Error("Get on a missing key should return nil")
	}
}
