// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingmath

import (
	"fmt"
	"strings"

	"github.com/alphabeta/timingplot/timingfmt"
)

// A Kind is a derived metric formula.
type Kind int

const (
	// SpeedupPerNode is the baseline time per node divided by the
	// observed time per node.
	SpeedupPerNode Kind = iota
	// NodeFactor is the node count relative to the baseline's.
	NodeFactor
	// TotalSpeedup is the baseline time divided by the observed
	// time.
	TotalSpeedup
	// SpeedupFactor is the same ratio as TotalSpeedup, under the
	// name used by the scaling reports.
	SpeedupFactor
	// AdditionalNodes is the node count minus the baseline's.
	AdditionalNodes
	// TimePerNode is the observed time per node. It does not use
	// the baseline.
	TimePerNode
)

var kindNames = [...]string{
	SpeedupPerNode:  "speedup_per_node",
	NodeFactor:      "node_factor",
	TotalSpeedup:    "total_speedup",
	SpeedupFactor:   "speedup_factor",
	AdditionalNodes: "additional_nodes",
	TimePerNode:     "time_per_node",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// NeedsBaseline reports whether k is relative to a Baseline.
func (k Kind) NeedsBaseline() bool {
	return k != TimePerNode
}

// eval computes k for one row.
func (k Kind) eval(b Baseline, time, nodes float64) float64 {
	switch k {
	case SpeedupPerNode:
		return (b.Time / b.Nodes) / (time / nodes)
	case NodeFactor:
		return nodes / b.Nodes
	case TotalSpeedup, SpeedupFactor:
		return b.Time / time
	case AdditionalNodes:
		return nodes - b.Nodes
	case TimePerNode:
		return time / nodes
	}
	panic("unknown metric kind " + k.String())
}

// A Metric is a Kind applied to a pair of time and node count
// columns.
type Metric struct {
	Kind Kind

	// Time and Nodes name the source columns. Empty means
	// timingfmt.ColTime and timingfmt.ColNodes.
	Time, Nodes string
}

// M returns the Metric of kind k over the default time and node
// columns.
func M(k Kind) Metric {
	return Metric{Kind: k}
}

func (m Metric) timeCol() string {
	if m.Time == "" {
		return timingfmt.ColTime
	}
	return m.Time
}

func (m Metric) nodesCol() string {
	if m.Nodes == "" {
		return timingfmt.ColNodes
	}
	return m.Nodes
}

// Name returns the name of the derived column. For a strategy time
// column such as "time_shared", the strategy is appended to the
// kind, as in "time_per_node_shared".
func (m Metric) Name() string {
	col := m.timeCol()
	switch {
	case col == timingfmt.ColTime:
		return m.Kind.String()
	case strings.HasPrefix(col, timingfmt.ColTime+"_"):
		return m.Kind.String() + strings.TrimPrefix(col, timingfmt.ColTime)
	}
	return m.Kind.String() + "_" + col
}
