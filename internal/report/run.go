// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/alphabeta/timingplot/timingchart"
	"github.com/alphabeta/timingplot/timingfmt"
	"github.com/alphabeta/timingplot/timingmath"
	"github.com/alphabeta/timingplot/timingproc"
)

// Options configures Run.
type Options struct {
	// DataDir holds the input CSV files and receives the charts.
	DataDir string

	// Summary, if not nil, receives an aligned text table for each
	// input file.
	Summary io.Writer

	// CSV, if not nil, receives the aggregated statistics of each
	// input file as CSV, each table preceded by a "# file" line.
	CSV io.Writer

	Log zerolog.Logger
}

type fileKey struct {
	depth, scenario int
}

// Run loads every input file of r, aggregates the metrics its charts
// need and writes the charts to opts.DataDir, replacing existing
// files. It returns the paths written, in catalog order.
//
// The first failure stops the run.
func (r *Report) Run(opts Options) ([]string, error) {
	log := opts.Log.With().Str("report", r.Name).Logger()

	depths := r.Depths
	if len(depths) == 0 {
		depths = []int{0}
	}
	metrics := r.metrics()
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = m.Name()
	}

	sums := make(map[fileKey]*timingproc.Summary)
	for _, depth := range depths {
		for si, sc := range r.Scenarios {
			path := filepath.Join(opts.DataDir, expand(r.Input, sc.Pos, depth))
			s, err := summarize(path, metrics, names, log)
			if err != nil {
				return nil, err
			}
			sums[fileKey{depth, si}] = s

			if opts.Summary != nil {
				if err := writeSummary(opts.Summary, filepath.Base(path), s); err != nil {
					return nil, err
				}
			}
			if opts.CSV != nil {
				if _, err := fmt.Fprintf(opts.CSV, "# %s\n", filepath.Base(path)); err != nil {
					return nil, err
				}
				if err := s.WriteCSV(opts.CSV); err != nil {
					return nil, err
				}
			}
		}
	}

	var written []string
	save := func(ch *timingchart.Chart, name string) error {
		path := filepath.Join(opts.DataDir, name)
		if err := ch.Save(path); err != nil {
			return err
		}
		log.Info().Str("chart", path).Msg("wrote chart")
		written = append(written, path)
		return nil
	}
	for _, c := range r.Charts {
		if r.perDepth(c) {
			for _, depth := range depths {
				ch := r.newChart(c, expand(c.Title, 0, depth))
				ch.Panels = [][]*timingchart.Panel{r.panelRow(c, depth, sums, false)}
				if err := save(ch, expand(c.Output, 0, depth)); err != nil {
					return nil, err
				}
			}
			continue
		}
		ch := r.newChart(c, c.Title)
		for _, depth := range depths {
			ch.Panels = append(ch.Panels, r.panelRow(c, depth, sums, true))
		}
		if err := save(ch, c.Output); err != nil {
			return nil, err
		}
	}
	return written, nil
}

// summarize loads, derives and aggregates one input file.
func summarize(path string, metrics []timingmath.Metric, names []string, log zerolog.Logger) (*timingproc.Summary, error) {
	res, err := timingfmt.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Int("rows", res.Len()).Strs("columns", res.Columns()).Msg("loaded results")

	d, err := timingmath.Derive(res, metrics...)
	if err != nil {
		return nil, err
	}
	cols := make([]timingmath.Columns, 0, len(d.Baselines))
	for c := range d.Baselines {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Time < cols[j].Time })
	for _, c := range cols {
		log.Debug().Str("file", path).Str("time", c.Time).Str("nodes", c.Nodes).
			Stringer("baseline", d.Baselines[c]).Msg("computed baseline")
	}

	s, err := timingproc.Aggregate(d.Table, names...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("file", path).Ints("threads", s.Threads).Msg("aggregated")
	return s, nil
}

func (r *Report) newChart(c *Chart, title string) *timingchart.Chart {
	return &timingchart.Chart{
		Title:  title,
		XLabel: c.XLabel,
		YLabel: c.YLabel,
		Style:  c.style,
	}
}

// panelRow returns the panels of chart c at depth. If byDepth is set
// the row is one of several depths and panel titles name the depth.
func (r *Report) panelRow(c *Chart, depth int, sums map[fileKey]*timingproc.Summary, byDepth bool) []*timingchart.Panel {
	if c.Layout == Overlay {
		pn := &timingchart.Panel{Reference: c.Reference}
		if byDepth {
			pn.Title = fmt.Sprintf("Depth %d", depth)
		}
		for si, sc := range r.Scenarios {
			pn.Lines = append(pn.Lines, r.lines(c, sc, sums[fileKey{depth, si}])...)
		}
		return []*timingchart.Panel{pn}
	}

	row := make([]*timingchart.Panel, len(r.Scenarios))
	for si, sc := range r.Scenarios {
		pn := &timingchart.Panel{Title: sc.Label, Reference: c.Reference}
		if byDepth {
			pn.Title = fmt.Sprintf("%s (Depth %d)", sc.Label, depth)
		}
		pn.Lines = r.lines(c, sc, sums[fileKey{depth, si}])
		row[si] = pn
	}
	return row
}

func (r *Report) lines(c *Chart, sc Scenario, s *timingproc.Summary) []timingchart.Line {
	out := make([]timingchart.Line, 0, len(c.Lines))
	for _, ln := range c.Lines {
		// Names were checked against the aggregated metrics.
		sr, _ := s.Series(ln.metric.Name())
		out = append(out, timingchart.Line{Label: r.lineLabel(c, sc, ln), Series: sr})
	}
	return out
}

func (r *Report) lineLabel(c *Chart, sc Scenario, ln Line) string {
	switch {
	case c.Layout == Panels || len(r.Scenarios) == 1:
		return ln.Label
	case len(c.Lines) == 1 || ln.Label == "":
		return sc.Label
	}
	return sc.Label + " " + ln.Label
}
