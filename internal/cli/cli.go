// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli is the command line shared by the chart commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alphabeta/timingplot/internal/report"
)

type flags struct {
	dataDir string
	summary bool
	csv     bool
	verbose bool
}

// Main runs the command for the named report and exits with status 1
// if it fails.
func Main(name string) {
	if err := NewCommand(name).Execute(); err != nil {
		log := newLogger(os.Stderr, false)
		log.Fatal().Err(err).Msgf("%s failed", name)
	}
}

// NewCommand returns a command that draws the charts of the named
// report from the catalog.
func NewCommand(name string) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           name,
		Short:         fmt.Sprintf("draw the %s charts", name),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, name, f)
		},
	}
	if rep, err := report.Lookup(name); err == nil && rep.Description != "" {
		cmd.Short = rep.Description
	}
	cmd.Flags().StringVar(&f.dataDir, "data", "", "`dir`ectory holding the result files and receiving the charts (default ../data beside the executable)")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print a table of the aggregated metrics")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "print the aggregated metrics as CSV")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log baselines and aggregation details")
	return cmd
}

func run(cmd *cobra.Command, name string, f flags) error {
	log := newLogger(cmd.ErrOrStderr(), f.verbose)

	rep, err := report.Lookup(name)
	if err != nil {
		return err
	}
	dir := f.dataDir
	if dir == "" {
		if dir, err = defaultDataDir(); err != nil {
			return err
		}
	}

	opts := report.Options{DataDir: dir, Log: log}
	if f.summary {
		opts.Summary = cmd.OutOrStdout()
	}
	if f.csv {
		opts.CSV = cmd.OutOrStdout()
	}
	written, err := rep.Run(opts)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Int("charts", len(written)).Msg("done")
	return nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// defaultDataDir returns ../data relative to the running executable.
func defaultDataDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if p, err := filepath.EvalSymlinks(exe); err == nil {
		exe = p
	}
	return filepath.Join(filepath.Dir(exe), "..", "data"), nil
}
