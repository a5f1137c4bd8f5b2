// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcsfs opens a single file:// or gs:// object for reading.
// It is a purpose-built slice of golang.org/x/build's gcsfs package,
// trimmed to what logsource actually needs: a build log is always one
// object, read start to finish, never written and never listed as a
// directory.
package gcsfs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// Open opens the object named by base, a file:// or gs:// URL.
// client is only used for gs:// URLs and may be nil otherwise.
func Open(ctx context.Context, client *storage.Client, base string) (io.ReadCloser, error) {
	bucket, object, scheme, err := parse(base)
	if err != nil {
		return nil, err
	}
	if scheme == "gs" {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	}
	return os.Open(object)
}

// Stat reports whether the object named by base exists, without
// reading its contents. client is only used for gs:// URLs and may be
// nil otherwise.
func Stat(ctx context.Context, client *storage.Client, base string) error {
	bucket, object, scheme, err := parse(base)
	if err != nil {
		return err
	}
	if scheme == "gs" {
		_, err := client.Bucket(bucket).Object(object).Attrs(ctx)
		return err
	}
	_, err = os.Stat(object)
	return err
}

// parse splits base into a bucket and object name for gs:// URLs, or
// a bare path for file:// URLs. object is the object path with any
// leading slash stripped for gs://, or the plain filesystem path for
// file://.
func parse(base string) (bucket, object, scheme string, err error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", "", "", err
	}
	switch u.Scheme {
	case "gs":
		if u.Host == "" {
			return "", "", "", fmt.Errorf("missing bucket in %q", base)
		}
		object = strings.TrimPrefix(u.Path, "/")
		if object == "" {
			return "", "", "", fmt.Errorf("missing object in %q", base)
		}
		return u.Host, object, "gs", nil
	case "file":
		return "", u.Path, "file", nil
	default:
		return "", "", u.Scheme, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}
