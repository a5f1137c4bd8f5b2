// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command buildlogscan classifies the generic build-failure tail of
// one or more build transcripts (a plain compiler/make/cmake log, or
// the "Build" section of an sbuild transcript already split out by a
// caller). For a whole sbuild transcript, including its apt, dpkg,
// and autopkgtest phases, use sbuildlogscan instead.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jelmer/buildlogscan/internal/batch"
	"github.com/jelmer/buildlogscan/internal/cache"
	"github.com/jelmer/buildlogscan/internal/cliutil"
	"github.com/jelmer/buildlogscan/internal/config"
	"github.com/jelmer/buildlogscan/internal/logsource"
	"github.com/jelmer/buildlogscan/scan"
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
		Use:   "buildlogscan [flags] path...",
		Short: "classify the failure tail of one or more build logs",
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
			return fmt.Errorf("buildlogscan: %w", err)
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
		return fmt.Errorf("buildlogscan: %w", err)
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
			loc := colorizer.Path(f.Source)
			if f.LineNo > 0 {
				loc = fmt.Sprintf("%s%s%d", loc, colorizer.PathColon(":"), f.LineNo)
			}
			line := fmt.Sprintf("%s: %s", loc, cliutil.PlainText(f.Description))
			if f.Issue != "" {
				line += fmt.Sprintf(" (%s)", f.Issue)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// classify reads path, classifies its contents with scan.FindBuildFailure,
// and returns the result as a Finding, consulting and populating store
// (if non-nil) and annotating the result against cfg.KnownIssues along
// the way.
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

	res := scan.FindBuildFailure(lines)
	for _, merr := range res.MatcherErrs {
		logger.WithField("path", path).WithError(merr).Warn("matcher error")
	}

	description := "build failed"
	lineNo := 0
	if res.Match != nil {
		lineNo = res.Match.LineNo()
	}
	if res.Problem != nil {
		description = res.Problem.String()
	}

	if store != nil {
		if err := store.Store(ctx, key, res.Problem, description); err != nil {
			logger.WithField("path", path).WithError(err).Warn("cache store failed")
		}
	}

	f, err := cliutil.NewFinding(path, lineNo, description, res.Problem)
	if err != nil {
		return cliutil.Finding{}, err
	}
	f.Issue = cliutil.MatchKnownIssue(cfg.KnownIssues, f.Description)
	return f, nil
}
