// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingchart

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeta/timingplot/timingproc"
)

func testSeries(metric string, mean, sd []float64) *timingproc.Series {
	threads := []int{1, 2, 4, 8}
	return &timingproc.Series{Metric: metric, Threads: threads[:len(mean)], Mean: mean, StdDev: sd}
}

func decode(t *testing.T, b []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	r := img.Bounds()
	return r.Dx(), r.Dy()
}

func TestRenderSingle(t *testing.T) {
	one := 1.0
	c := &Chart{
		Title:  "Total speedup",
		XLabel: "threads",
		YLabel: "speedup",
		Panels: [][]*Panel{{{
			Lines: []Line{
				{Label: "Early Game", Series: testSeries("total_speedup", []float64{1, 1.8, 3.1}, []float64{0, 0.1, 0.2})},
				{Label: "End Game", Series: testSeries("total_speedup", []float64{1, 1.9, 3.5}, []float64{0, 0.05, math.NaN()})},
			},
			Reference: &one,
		}}},
	}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	w, h := decode(t, buf.Bytes())
	assert.InDelta(t, 640, w, 1)
	assert.InDelta(t, 480, h, 1)
}

func TestRenderGrid(t *testing.T) {
	c := &Chart{
		Title:  "Cutoff speedup by depth",
		XLabel: "threads",
		YLabel: "speedup",
		Style:  Band,
		Panels: [][]*Panel{
			{
				{Title: "depth 4", Lines: []Line{{Label: "shared", Series: testSeries("s", []float64{1, 2}, []float64{0, 0.3})}}},
				{Title: "depth 4 end", Lines: []Line{{Label: "local", Series: testSeries("s", []float64{1, 1.5}, []float64{0, 0.2})}}},
			},
			{
				// Short row.
				{Title: "depth 5", Lines: []Line{{Label: "blended", Series: testSeries("s", []float64{1, 2.5, 4}, []float64{0, 0.1, 0.4})}}},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	w, h := decode(t, buf.Bytes())
	assert.InDelta(t, 2*640, w, 2)
	assert.Greater(t, h, 2*480)
}

func TestRenderNonFinite(t *testing.T) {
	// A series with no finite means still renders an empty panel.
	c := &Chart{
		Title: "Time per node",
		Panels: [][]*Panel{{{Lines: []Line{
			{Series: testSeries("time_per_node", []float64{math.Inf(1), math.NaN()}, []float64{math.NaN(), math.NaN()})},
		}}}},
	}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	decode(t, buf.Bytes())
}

func TestRenderDeterministic(t *testing.T) {
	c := &Chart{
		Title:  "Additional nodes",
		YLabel: "nodes",
		Panels: [][]*Panel{{{Lines: []Line{
			{Label: "pos 0", Series: testSeries("additional_nodes", []float64{0, 12000, 25000}, []float64{0, 900, 1500})},
		}}}},
	}
	var a, b bytes.Buffer
	require.NoError(t, c.Render(&a))
	require.NoError(t, c.Render(&b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRenderErrors(t *testing.T) {
	assert.EqualError(t, (&Chart{}).Render(new(bytes.Buffer)), "chart has no panels")

	c := &Chart{Panels: [][]*Panel{{{Title: "p", Lines: []Line{{Label: "x"}}}}}}
	assert.EqualError(t, c.Render(new(bytes.Buffer)), `panel "p": line "x" has no series`)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.png")
	c := &Chart{Panels: [][]*Panel{{{Lines: []Line{
		{Series: testSeries("m", []float64{1, 2}, []float64{0, 0})},
	}}}}}
	// Saving twice overwrites.
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0666))
	require.NoError(t, c.Save(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	decode(t, b)
}

func TestParseStyle(t *testing.T) {
	for _, name := range []string{"errorbars", "band"} {
		s, err := ParseStyle(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}
	s, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, ErrorBars, s)
	_, err = ParseStyle("violin")
	assert.EqualError(t, err, `unknown chart style "violin"`)
}

func TestPoints(t *testing.T) {
	pts, errs := points(testSeries("m", []float64{1, math.Inf(1), 3}, []float64{0.5, 1, math.NaN()}))
	require.Len(t, pts, 2)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 4.0, pts[1].X)
	assert.Equal(t, 0.5, errs[0].Low)
	assert.Equal(t, 0.0, errs[1].High)
}

func TestLineColors(t *testing.T) {
	cs, err := lineColors(1)
	require.NoError(t, err)
	assert.Len(t, cs, 1)

	cs, err = lineColors(12)
	require.NoError(t, err)
	require.Len(t, cs, 12)
	assert.Equal(t, cs[0], cs[9])
}
