// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report describes the fixed set of timing charts each
// command draws and runs the load, derive, aggregate and render
// pipeline for them.
package report

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alphabeta/timingplot/timingchart"
	"github.com/alphabeta/timingplot/timingfmt"
	"github.com/alphabeta/timingplot/timingmath"
)

//go:embed reports.yaml
var catalog []byte

// Template placeholders.
const (
	varPos   = "{pos}"
	varDepth = "{depth}"
)

// A Report is a set of charts drawn from one family of result files.
type Report struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Input       string     `yaml:"input"`
	Depths      []int      `yaml:"depths"`
	Scenarios   []Scenario `yaml:"scenarios"`
	Charts      []*Chart   `yaml:"charts"`
}

// A Scenario is one benchmarked game position.
type Scenario struct {
	Label string `yaml:"label"`
	Pos   int    `yaml:"pos"`
}

// A Chart describes one output image.
type Chart struct {
	Output    string   `yaml:"output"`
	Title     string   `yaml:"title"`
	XLabel    string   `yaml:"xlabel"`
	YLabel    string   `yaml:"ylabel"`
	Layout    Layout   `yaml:"layout"`
	Style     string   `yaml:"style"`
	Reference *float64 `yaml:"reference"`
	Lines     []Line   `yaml:"lines"`

	style timingchart.Style
}

// A Line selects the metric drawn for each scenario.
type Line struct {
	Label  string `yaml:"label"`
	Metric string `yaml:"metric"`
	Time   string `yaml:"time"`
	Nodes  string `yaml:"nodes"`

	metric timingmath.Metric
}

// Layout arranges scenarios within a chart.
type Layout string

const (
	// Overlay draws every scenario in one panel.
	Overlay Layout = "overlay"
	// Panels draws one panel per scenario, side by side.
	Panels Layout = "panels"
)

// Catalog returns the built-in reports.
func Catalog() ([]*Report, error) {
	return Parse(bytes.NewReader(catalog))
}

// Lookup returns the built-in report called name.
func Lookup(name string) (*Report, error) {
	reps, err := Catalog()
	if err != nil {
		return nil, err
	}
	for _, r := range reps {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown report %q", name)
}

// Parse decodes and checks a YAML list of reports.
func Parse(r io.Reader) ([]*Report, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var reps []*Report
	if err := dec.Decode(&reps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse report catalog: %w", err)
	}
	seen := make(map[string]bool)
	for i, rep := range reps {
		if rep.Name == "" {
			return nil, fmt.Errorf("report at index %d has no name", i)
		}
		if seen[rep.Name] {
			return nil, fmt.Errorf("report %q defined twice", rep.Name)
		}
		seen[rep.Name] = true
		if err := rep.check(); err != nil {
			return nil, fmt.Errorf("report %q: %w", rep.Name, err)
		}
	}
	return reps, nil
}

func (r *Report) check() error {
	if r.Input == "" {
		return errors.New("no input")
	}
	if len(r.Scenarios) == 0 {
		return errors.New("no scenarios")
	}
	if len(r.Charts) == 0 {
		return errors.New("no charts")
	}
	hasDepth := strings.Contains(r.Input, varDepth)
	if hasDepth != (len(r.Depths) > 0) {
		return fmt.Errorf("input %q must use %s exactly when depths are listed", r.Input, varDepth)
	}
	if len(r.Scenarios) > 1 && !strings.Contains(r.Input, varPos) {
		return fmt.Errorf("input %q must use %s with more than one scenario", r.Input, varPos)
	}

	outputs := make(map[string]bool)
	names := make(map[string]timingmath.Metric)
	for _, c := range r.Charts {
		if c.Output == "" {
			return errors.New("chart with no output")
		}
		if outputs[c.Output] {
			return fmt.Errorf("output %q used twice", c.Output)
		}
		outputs[c.Output] = true
		if !hasDepth && strings.Contains(c.Output, varDepth) {
			return fmt.Errorf("output %q uses %s without depths", c.Output, varDepth)
		}
		switch c.Layout {
		case "":
			c.Layout = Overlay
		case Overlay, Panels:
		default:
			return fmt.Errorf("chart %s: unknown layout %q", c.Output, c.Layout)
		}
		var err error
		if c.style, err = timingchart.ParseStyle(c.Style); err != nil {
			return fmt.Errorf("chart %s: %w", c.Output, err)
		}
		if len(c.Lines) == 0 {
			return fmt.Errorf("chart %s: no lines", c.Output)
		}
		for i := range c.Lines {
			ln := &c.Lines[i]
			k, err := timingmath.ParseKind(ln.Metric)
			if err != nil {
				return fmt.Errorf("chart %s: %w", c.Output, err)
			}
			ln.metric = timingmath.Metric{Kind: k, Time: ln.Time, Nodes: ln.Nodes}
			if ln.metric.Time == "" {
				ln.metric.Time = timingfmt.ColTime
			}
			if ln.metric.Nodes == "" {
				ln.metric.Nodes = timingfmt.ColNodes
			}
			// One derived column per name.
			name := ln.metric.Name()
			if prev, ok := names[name]; ok && prev != ln.metric {
				return fmt.Errorf("chart %s: metric %s has conflicting columns", c.Output, name)
			}
			names[name] = ln.metric
		}
	}
	return nil
}

// metrics returns the distinct metrics drawn by r's charts, in the
// order they first appear.
func (r *Report) metrics() []timingmath.Metric {
	var ms []timingmath.Metric
	seen := make(map[timingmath.Metric]bool)
	for _, c := range r.Charts {
		for _, ln := range c.Lines {
			if !seen[ln.metric] {
				seen[ln.metric] = true
				ms = append(ms, ln.metric)
			}
		}
	}
	return ms
}

// perDepth reports whether c is drawn as a separate image per depth.
func (r *Report) perDepth(c *Chart) bool {
	return len(r.Depths) == 0 || strings.Contains(c.Output, varDepth)
}

// expand substitutes the scenario position and depth into tmpl.
func expand(tmpl string, pos, depth int) string {
	return strings.NewReplacer(
		varPos, strconv.Itoa(pos),
		varDepth, strconv.Itoa(depth),
	).Replace(tmpl)
}
