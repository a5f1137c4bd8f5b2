// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logsource resolves a user-supplied log location — a bare
// path, a file:// or gs:// URL, or "-" for stdin — into its raw
// contents, reusing gcsfs for anything that isn't stdin so a build log
// stored in a GCS bucket reads exactly like one on local disk.
package logsource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/jelmer/buildlogscan/internal/gcsfs"
)

// Open reads ref's content and splits it into lines the way a build
// log is expected to be consumed: on "\n", with the newline (and a
// "\r" before it) stripped from every line. A last line without a
// newline is kept, and no empty final element is added whether or not
// the log ends in a newline. ref may be:
//   - "-", meaning read from stdin
//   - a bare filesystem path
//   - a file:// or gs://bucket/object URL
//
// A GCS client is constructed lazily, only when ref is a gs:// URL, so
// callers reading only local logs never need credentials configured.
func Open(ctx context.Context, ref string) ([]string, error) {
	var r io.ReadCloser
	var err error

	switch {
	case ref == "-":
		r = io.NopCloser(os.Stdin)
	case strings.HasPrefix(ref, "gs://"):
		client, cerr := storage.NewClient(ctx)
		if cerr != nil {
			return nil, fmt.Errorf("logsource: connecting to GCS: %w", cerr)
		}
		defer client.Close()
		r, err = gcsfs.Open(ctx, client, ref)
	case strings.HasPrefix(ref, "file://"):
		r, err = gcsfs.Open(ctx, nil, ref)
	default:
		r, err = os.Open(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("logsource: opening %s: %w", ref, err)
	}
	defer r.Close()

	return readLines(r)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Stat reports whether ref names something that exists, without
// reading its contents. It is used by the CLI to give a clean error
// before attempting to classify a nonexistent log.
func Stat(ctx context.Context, ref string) error {
	if ref == "-" {
		return nil
	}
	if strings.HasPrefix(ref, "gs://") {
		client, cerr := storage.NewClient(ctx)
		if cerr != nil {
			return fmt.Errorf("logsource: connecting to GCS: %w", cerr)
		}
		defer client.Close()
		return gcsfs.Stat(ctx, client, ref)
	}
	if strings.HasPrefix(ref, "file://") {
		return gcsfs.Stat(ctx, nil, ref)
	}
	_, err := os.Stat(ref)
	return err
}
