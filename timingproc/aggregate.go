// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timingproc aggregates derived timing metrics by thread
// count.
package timingproc

import (
	"fmt"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/alphabeta/timingplot/timingfmt"
)

// Statistic column prefixes in the aggregated table.
const (
	statMean   = "mean "
	statStdDev = "stddev "
	statCount  = "n"
)

// A Summary holds per-thread-count statistics of a set of metrics.
//
// Conceptually it is a table indexed by thread count whose columns
// are (metric, statistic) pairs.
type Summary struct {
	// Threads lists the distinct thread counts in ascending order.
	Threads []int

	// Counts[i] is the number of rows with Threads[i] threads.
	Counts []int

	metrics []string
	series  map[string]*Series
}

// A Series is the mean and standard deviation of one metric at each
// thread count.
type Series struct {
	Metric  string
	Threads []int
	Mean    []float64
	StdDev  []float64
}

// Len returns the number of thread counts.
func (s *Summary) Len() int {
	return len(s.Threads)
}

// Metrics returns the aggregated metric names in the order they were
// requested.
func (s *Summary) Metrics() []string {
	return s.metrics
}

// Series returns the statistics of metric.
func (s *Summary) Series(metric string) (*Series, bool) {
	sr, ok := s.series[metric]
	return sr, ok
}

// Aggregate groups the rows of t by thread count and computes the
// arithmetic mean and sample standard deviation of each metric
// column.
//
// A thread count with a single row has a standard deviation of 0.
func Aggregate(t *table.Table, metrics ...string) (*Summary, error) {
	for _, col := range append([]string{timingfmt.ColThreads}, metrics...) {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("aggregate: unknown column %q", col)
		}
	}
	if _, ok := t.Column(timingfmt.ColThreads).([]int); !ok {
		return nil, fmt.Errorf("aggregate: column %q is not an integer column", timingfmt.ColThreads)
	}

	s := &Summary{
		metrics: metrics,
		series:  make(map[string]*Series, len(metrics)),
	}
	if t.Len() == 0 {
		for _, m := range metrics {
			s.series[m] = &Series{Metric: m}
		}
		return s, nil
	}

	agg := ggstat.Agg(timingfmt.ColThreads)(
		ggstat.AggCount(statCount),
		ggstat.AggMean(metrics...),
		aggStdDev(metrics...),
	)
	out := table.Flatten(table.SortBy(agg.F(t), timingfmt.ColThreads))

	s.Threads = out.MustColumn(timingfmt.ColThreads).([]int)
	s.Counts = out.MustColumn(statCount).([]int)
	for _, m := range metrics {
		var mean, sd []float64
		slice.Convert(&mean, out.MustColumn(statMean+m))
		slice.Convert(&sd, out.MustColumn(statStdDev+m))
		s.series[m] = &Series{Metric: m, Threads: s.Threads, Mean: mean, StdDev: sd}
	}
	return s, nil
}

// aggStdDev returns an aggregate function that computes the sample
// standard deviation of each of cols. The resulting columns are named
// "stddev <col>".
func aggStdDev(cols ...string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		for _, col := range cols {
			sds := make([]float64, 0, len(input.Tables()))
			var xs []float64
			for _, gid := range input.Tables() {
				slice.Convert(&xs, input.Table(gid).MustColumn(col))
				sds = append(sds, stats.StdDev(xs))
			}
			b.Add(statStdDev+col, sds)
		}
	}
}
