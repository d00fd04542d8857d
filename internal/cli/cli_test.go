// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsCSV = `trial,num_threads,num_nodes,time
0,1,100,1000
1,1,100,1000
2,1,100,1000
3,2,150,600
4,2,160,620
`

func execute(t *testing.T, name string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errb bytes.Buffer
	cmd := NewCommand(name)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	err = cmd.Execute()
	return out.String(), errb.String(), err
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"timing_results_pos_0.csv", "timing_results_pos_1.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(resultsCSV), 0666))
	}

	stdout, stderr, err := execute(t, "plottiming", "--data", dir, "--summary", "--csv", "-v")
	require.NoError(t, err)
	for _, name := range []string{"speedup_per_node.png", "node_factor.png", "total_speedup.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Contains(t, stdout, "timing_results_pos_0.csv:")
	assert.Contains(t, stdout, "# timing_results_pos_1.csv")
	assert.Contains(t, stderr, "wrote chart")
	assert.Contains(t, stderr, "computed baseline")
}

func TestCommandQuiet(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"timing_results_pos_0.csv", "timing_results_pos_1.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(resultsCSV), 0666))
	}
	stdout, stderr, err := execute(t, "plottiming", "--data", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, "computed baseline")
}

func TestCommandErrors(t *testing.T) {
	_, _, err := execute(t, "plottiming", "extra")
	assert.Error(t, err)

	_, _, err = execute(t, "plotnothing", "--data", t.TempDir())
	assert.EqualError(t, err, `unknown report "plotnothing"`)

	_, _, err = execute(t, "plotscaling", "--data", t.TempDir())
	assert.ErrorContains(t, err, "timing_results_pos_0_depth_5.csv")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug().Msg("hidden")
	log.Error().Msg("plottiming failed")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "plottiming failed")

	buf.Reset()
	log = newLogger(&buf, true)
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDefaultDataDir(t *testing.T) {
	dir, err := defaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "data", filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

func TestShort(t *testing.T) {
	assert.Equal(t, "Per-node speedup, node factor and total speedup by thread count.", NewCommand("plottiming").Short)
	assert.Equal(t, "draw the plotnothing charts", NewCommand("plotnothing").Short)
}
