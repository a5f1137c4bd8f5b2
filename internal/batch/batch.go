// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch fans a classification function out over many log
// references with bounded concurrency, the way devapp/stats.go fans
// independent App Engine datastore fetches out with an errgroup — here
// bounded with Group.SetLimit, since a batch run may be given
// thousands of sbuild logs and opening them all from gs:// at once
// would exhaust file descriptors and GCS connection quota alike.
package batch

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent classifications when a caller
// passes parallelism <= 0, matching both CLIs' --jobs default.
func DefaultParallelism() int {
	return runtime.NumCPU()
}

// Result pairs a log reference with its classification outcome. Err is
// set instead of Finding when Classify failed for that one reference;
// a failure for one reference never aborts the rest of the batch.
type Result struct {
	RunID   string
	Ref     string
	Finding interface{}
	Err     error
}

// Classify is the thing batch.Run fans out: classify the log named by
// ref and return a caller-defined finding value (typically a
// cliutil.Finding, left as interface{} here so this package doesn't
// need to import cliutil).
type Classify func(ctx context.Context, ref string) (interface{}, error)

// Run classifies every ref in refs concurrently, bounded to
// parallelism simultaneous calls to classify (DefaultParallelism() if
// parallelism <= 0). Every ref gets a Result; Run itself only returns
// an error if ctx is canceled, since per-ref failures are reported in
// their Result instead of aborting the batch.
func Run(ctx context.Context, refs []string, parallelism int, classify Classify) ([]Result, error) {
	if parallelism <= 0 {
		parallelism = DefaultParallelism()
	}

	runID := uuid.New().String()
	results := make([]Result, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			finding, err := classify(gctx, ref)
			results[i] = Result{RunID: runID, Ref: ref, Finding: finding, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
