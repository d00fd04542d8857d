// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timingmath derives speedup and node-count metrics from
// timing results.
//
// Every ratio is taken relative to a Baseline: the mean time and
// node count of the first BaselineRows rows of a results file, which
// are the sequential trials of the benchmark.
package timingmath

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/alphabeta/timingplot/timingfmt"
)

// BaselineRows is the number of leading rows of a results file that
// make up the baseline.
const BaselineRows = 3

// A Baseline is the reference measurement of a results file.
type Baseline struct {
	// Time and Nodes are the mean elapsed time and node count of
	// the baseline rows.
	Time, Nodes float64

	// Threads is the thread count of the baseline rows.
	Threads int

	// Rows is the number of rows averaged.
	Rows int
}

func (b Baseline) String() string {
	return fmt.Sprintf("time=%g nodes=%g threads=%d rows=%d", b.Time, b.Nodes, b.Threads, b.Rows)
}

// A BaselineError reports results whose leading rows cannot serve as
// a baseline.
type BaselineError struct {
	FileName string
	Msg      string
}

func (e *BaselineError) Error() string {
	return fmt.Sprintf("%s: bad baseline: %s", e.FileName, e.Msg)
}

// ComputeBaseline averages timeCol and nodesCol over the first
// BaselineRows rows of res, in file order.
//
// The baseline rows must all have the same thread count, and it must
// be the smallest thread count in res.
func ComputeBaseline(res *timingfmt.Results, timeCol, nodesCol string) (Baseline, error) {
	if res.Len() < BaselineRows {
		return Baseline{}, &BaselineError{res.Name, fmt.Sprintf("need %d rows, have %d", BaselineRows, res.Len())}
	}
	threads, err := res.Ints(timingfmt.ColThreads)
	if err != nil {
		return Baseline{}, err
	}
	times, err := res.Floats(timeCol)
	if err != nil {
		return Baseline{}, err
	}
	nodes, err := res.Floats(nodesCol)
	if err != nil {
		return Baseline{}, err
	}

	base := threads[0]
	for i, th := range threads[:BaselineRows] {
		if th != base {
			return Baseline{}, &BaselineError{res.Name, fmt.Sprintf("row %d has %d threads, row 0 has %d", i, th, base)}
		}
	}
	for i, th := range threads {
		if th < base {
			return Baseline{}, &BaselineError{res.Name, fmt.Sprintf("row %d has %d threads, fewer than the baseline's %d", i, th, base)}
		}
	}

	return Baseline{
		Time:    stats.Mean(times[:BaselineRows]),
		Nodes:   stats.Mean(nodes[:BaselineRows]),
		Threads: base,
		Rows:    BaselineRows,
	}, nil
}
