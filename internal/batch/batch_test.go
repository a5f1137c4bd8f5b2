// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestRunClassifiesEveryRef(t *testing.T) {
	refs := []string{"a.log", "b.log", "c.log", "d.log"}
	results, err := Run(context.Background(), refs, 2, func(ctx context.Context, ref string) (interface{}, error) {
		if ref == "c.log" {
			return nil, errors.New("boom")
		}
		return "classified:" + ref, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != len(refs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(refs))
	}

	byRef := make(map[string]Result)
	for _, r := range results {
		byRef[r.Ref] = r
	}
	if byRef["a.log"].Finding != "classified:a.log" {
		t.Errorf("a.log result = %+v", byRef["a.log"])
	}
	if byRef["c.log"].Err == nil {
		t.Errorf("c.log should have a per-ref error, got nil")
	}
	if byRef["c.log"].RunID == "" || byRef["c.log"].RunID != byRef["a.log"].RunID {
		t.Errorf("all results in one batch should share a RunID")
	}
}

func TestRunRespectsParallelism(t *testing.T) {
	const limit = 3
	var current, max int32
	refs := make([]string, 20)
	for i := range refs {
		refs[i] = fmt.Sprintf("log-%d", i)
	}

	_, err := Run(context.Background(), refs, limit, func(ctx context.Context, ref string) (interface{}, error) {
		n := atomic.AddInt32(&current, 1)
		defer atomic.AddInt32(&current, -1)
		for {
			m := atomic.LoadInt32(&max)
			if n <= m || atomic.CompareAndSwapInt32(&max, m, n) {
				break
			}
		}
		return ref, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if max > limit {
		t.Errorf("observed %d concurrent calls, want <= %d", max, limit)
	}
}

func TestRunDefaultParallelism(t *testing.T) {
	refs := []string{"only.log"}
	results, err := Run(context.Background(), refs, 0, func(ctx context.Context, ref string) (interface{}, error) {
		return ref, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Finding != "only.log" {
		t.Errorf("results = %+v", results)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	refs := []string{"a.log", "b.log"}
	_, err := Run(ctx, refs, 1, func(ctx context.Context, ref string) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	if err == nil {
		t.Fatal("Run on a canceled context = nil error, want error")
	}
}
