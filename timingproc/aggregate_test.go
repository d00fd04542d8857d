// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingproc

import (
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeta/timingplot/timingfmt"
	"github.com/alphabeta/timingplot/timingmath"
)

func derive(t *testing.T, in string, metrics ...timingmath.Metric) *table.Table {
	t.Helper()
	res, err := timingfmt.Read(strings.NewReader(in), "test.csv")
	require.NoError(t, err)
	d, err := timingmath.Derive(res, metrics...)
	require.NoError(t, err)
	return d.Table
}

func series(t *testing.T, s *Summary, metric string) *Series {
	t.Helper()
	sr, ok := s.Series(metric)
	require.True(t, ok, "no series %q", metric)
	return sr
}

const scalingCSV = `trial,num_threads,num_nodes,time
0,1,100,1000
1,1,100,1000
2,1,100,1000
3,2,150,600
`

func TestAggregateScaling(t *testing.T) {
	tab := derive(t, scalingCSV,
		timingmath.M(timingmath.SpeedupFactor),
		timingmath.M(timingmath.AdditionalNodes),
		timingmath.M(timingmath.TimePerNode))
	s, err := Aggregate(tab, "speedup_factor", "additional_nodes", "time_per_node")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, s.Threads)
	assert.Equal(t, []int{3, 1}, s.Counts)
	assert.Equal(t, []string{"speedup_factor", "additional_nodes", "time_per_node"}, s.Metrics())

	sf := series(t, s, "speedup_factor")
	assert.Equal(t, 1.0, sf.Mean[0])
	assert.InDelta(t, 1000.0/600, sf.Mean[1], 1e-12)
	assert.Equal(t, []float64{0, 0}, sf.StdDev)

	assert.Equal(t, 50.0, series(t, s, "additional_nodes").Mean[1])
	assert.Equal(t, 4.0, series(t, s, "time_per_node").Mean[1])
	assert.Equal(t, 10.0, series(t, s, "time_per_node").Mean[0])
}

func TestAggregateIdentical(t *testing.T) {
	tab := derive(t, `trial,num_threads,num_nodes,time
0,1,10,100
1,1,10,100
2,1,10,100
`, timingmath.M(timingmath.TotalSpeedup), timingmath.M(timingmath.NodeFactor), timingmath.M(timingmath.SpeedupPerNode))
	s, err := Aggregate(tab, "total_speedup", "node_factor", "speedup_per_node")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	for _, m := range s.Metrics() {
		sr := series(t, s, m)
		assert.Equal(t, []float64{1}, sr.Mean, m)
		assert.Equal(t, []float64{0}, sr.StdDev, m)
	}
}

func TestAggregateGroups(t *testing.T) {
	// Rows are out of thread order to check that groups come back
	// sorted.
	tab := derive(t, `trial,num_threads,num_nodes,time
0,1,10,120
1,1,10,120
2,1,10,120
3,4,10,30
4,2,10,60
5,4,10,40
6,2,10,40
7,4,10,50
8,2,10,80
`, timingmath.M(timingmath.TimePerNode))
	s, err := Aggregate(tab, "time_per_node")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4}, s.Threads)
	assert.Equal(t, []int{3, 3, 3}, s.Counts)
	sr := series(t, s, "time_per_node")
	assert.Equal(t, []int{1, 2, 4}, sr.Threads)
	assert.Equal(t, []float64{12, 6, 4}, sr.Mean)
	assert.Equal(t, 0.0, sr.StdDev[0])
	// Sample standard deviation of {6, 4, 8} and {3, 4, 5}.
	assert.InDelta(t, 2.0, sr.StdDev[1], 1e-12)
	assert.InDelta(t, 1.0, sr.StdDev[2], 1e-12)
}

func TestAggregateDeterministic(t *testing.T) {
	const in = `trial,num_threads,num_nodes,time
0,1,1013,1000.3
1,1,1007,998.1
2,1,1011,1003.7
3,2,1500,611.2
4,2,1490,598.9
5,2,1530,604.4
6,8,2100,199.5
7,8,2230,210.7
8,8,2190,190.1
`
	metrics := []timingmath.Metric{
		timingmath.M(timingmath.SpeedupPerNode),
		timingmath.M(timingmath.NodeFactor),
		timingmath.M(timingmath.TotalSpeedup),
	}
	run := func() *Summary {
		s, err := Aggregate(derive(t, in, metrics...), "speedup_per_node", "node_factor", "total_speedup")
		require.NoError(t, err)
		return s
	}
	a, b := run(), run()
	for _, m := range a.Metrics() {
		assert.Equal(t, series(t, a, m), series(t, b, m))
	}
}

func TestAggregateNonFinite(t *testing.T) {
	tab := derive(t, `trial,num_threads,num_nodes,time
0,1,10,100
1,1,10,100
2,1,10,100
3,2,0,50
4,2,0,50
`, timingmath.M(timingmath.TimePerNode))
	s, err := Aggregate(tab, "time_per_node")
	require.NoError(t, err)
	sr := series(t, s, "time_per_node")
	x := sr.Mean[1]
	assert.True(t, math.IsInf(x, 0) || math.IsNaN(x), "got %v", x)
}

func TestAggregateEmpty(t *testing.T) {
	res, err := timingfmt.Read(strings.NewReader("trial,num_threads,num_nodes,time\n"), "empty.csv")
	require.NoError(t, err)
	s, err := Aggregate(res.Table, "time")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	sr := series(t, s, "time")
	assert.Empty(t, sr.Mean)
}

func TestAggregateErrors(t *testing.T) {
	res, err := timingfmt.Read(strings.NewReader("trial,num_nodes,time\n0,1,1\n"), "t.csv")
	require.NoError(t, err)
	_, err = Aggregate(res.Table, "time")
	assert.EqualError(t, err, `aggregate: unknown column "num_threads"`)

	tab := derive(t, scalingCSV, timingmath.M(timingmath.TimePerNode))
	_, err = Aggregate(tab, "node_factor")
	assert.EqualError(t, err, `aggregate: unknown column "node_factor"`)
}

func TestWriteCSV(t *testing.T) {
	tab := derive(t, scalingCSV, timingmath.M(timingmath.AdditionalNodes), timingmath.M(timingmath.TimePerNode))
	s, err := Aggregate(tab, "additional_nodes", "time_per_node")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, s.WriteCSV(&buf))
	want := `num_threads,n,mean additional_nodes,stddev additional_nodes,mean time_per_node,stddev time_per_node
1,3,0,0,10,0
2,1,50,0,4,0
`
	assert.Equal(t, want, buf.String())
}
