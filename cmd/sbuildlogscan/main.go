// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sbuildlogscan classifies one or more full sbuild
// transcripts: chroot setup, apt/dpkg phases, build proper, and any
// autopkgtest run, dispatching on each transcript's own "Fail-Stage:"
// summary line.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jelmer/buildlogscan/internal/batch"
	"github.com/jelmer/buildlogscan/internal/cache"
	"github.com/jelmer/buildlogscan/internal/cliutil"
	"github.com/jelmer/buildlogscan/internal/config"
	"github.com/jelmer/buildlogscan/internal/logsource"
	"github.com/jelmer/buildlogscan/sbuild"
)

var (
	flagColor  string
	flagJSON   bool
	flagMD     bool
	flagCache  string
	flagLogFmt string
	flagConfig string
	flagJobs   int
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sbuildlogscan [flags] path...",
		Short: "classify the root cause of one or more sbuild failures",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
	cmd.Flags().StringVar(&flagColor, "color", "auto", "highlight output in color: mode is never, always, or auto")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "output findings as JSON")
	cmd.Flags().BoolVar(&flagMD, "md", false, "output findings as a Markdown bullet list")
	cmd.Flags().StringVar(&flagCache, "cache", "", "path to a sqlite3 classification cache (disabled if empty)")
	cmd.Flags().StringVar(&flagLogFmt, "log-level", "", "logging verbosity: debug, info, warn, error (default from --config, else warn)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "path to a buildlogscan YAML config file")
	cmd.Flags().IntVar(&flagJobs, "jobs", 0, "number of logs to classify concurrently (default runtime.NumCPU())")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(flagConfig)
	if err != nil {
		return err
	}
	if flagCache == "" {
		flagCache = cfg.Cache
	}
	if flagLogFmt == "" {
		flagLogFmt = cfg.LogLevel
	}

	colorizer, err := cliutil.NewColorizer(flagColor)
	if err != nil {
		return err
	}
	logger, err := cliutil.NewLogger(flagLogFmt, colorizer)
	if err != nil {
		return err
	}

	var store *cache.Cache
	if flagCache != "" {
		store, err = cache.Open(flagCache)
		if err != nil {
			return fmt.Errorf("sbuildlogscan: %w", err)
		}
		defer store.Close()
	}

	if err := cliutil.EchoArgv(cmd.OutOrStdout(), os.Args); err != nil {
		return err
	}

	results, err := batch.Run(ctx, args, flagJobs, func(ctx context.Context, path string) (interface{}, error) {
		return classify(ctx, store, logger, cfg, path)
	})
	if err != nil {
		return fmt.Errorf("sbuildlogscan: %w", err)
	}

	var findings []cliutil.Finding
	for _, r := range results {
		if r.Err != nil {
			logger.WithField("path", r.Ref).WithError(r.Err).Error("skipping log")
			continue
		}
		findings = append(findings, r.Finding.(cliutil.Finding))
	}

	out := cmd.OutOrStdout()
	switch {
	case flagJSON:
		return cliutil.WriteJSON(out, findings)
	case flagMD:
		return cliutil.WriteMarkdown(out, findings)
	default:
		for _, f := range findings {
			line := fmt.Sprintf("%s: %s", colorizer.Path(f.Source), cliutil.PlainText(f.Description))
			if f.Issue != "" {
				line += fmt.Sprintf(" (%s)", f.Issue)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// classify reads path as a full sbuild transcript and classifies it
// with sbuild.FromLog, consulting and populating store (if non-nil)
// and annotating the result against cfg.KnownIssues along the way.
func classify(ctx context.Context, store *cache.Cache, logger *logrus.Logger, cfg config.Config, path string) (cliutil.Finding, error) {
	lines, err := logsource.Open(ctx, path)
	if err != nil {
		return cliutil.Finding{}, err
	}

	var key string
	if store != nil {
		key = cache.KeyForLines(lines)
		if entry, ok, err := store.Lookup(ctx, key); err != nil {
			logger.WithField("path", path).WithError(err).Warn("cache lookup failed")
		} else if ok {
			logger.WithField("path", path).Debug("cache hit")
			f, err := cliutil.NewFinding(path, 0, entry.Description, entry.Problem)
			if err == nil {
				f.Issue = cliutil.MatchKnownIssue(cfg.KnownIssues, f.Description)
			}
			return f, err
		}
	}

	failure := sbuild.FromLog(lines)

	description := failure.Description
	if len(failure.Phase) > 0 {
		description = fmt.Sprintf("%s (%s)", description, strings.Join(failure.Phase, "/"))
	}

	if store != nil {
		if err := store.Store(ctx, key, failure.Error, description); err != nil {
			logger.WithField("path", path).WithError(err).Warn("cache store failed")
		}
	}

	f, err := cliutil.NewFinding(path, 0, description, failure.Error)
	if err != nil {
		return cliutil.Finding{}, err
	}
	f.Issue = cliutil.MatchKnownIssue(cfg.KnownIssues, f.Description)
	return f, nil
}
