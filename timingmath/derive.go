// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingmath

import (
	"fmt"

	"github.com/aclements/go-gg/table"

	"github.com/alphabeta/timingplot/timingfmt"
)

// dropColumns carry no information once metrics are derived.
var dropColumns = []string{timingfmt.ColTrial, timingfmt.ColPosIdx}

// A Derivation is the result of Derive.
type Derivation struct {
	// Table is the input table plus one column per metric, without
	// the trial and position index columns.
	Table *table.Table

	// Baselines holds the baseline of each column pair used by a
	// metric that needs one.
	Baselines map[Columns]Baseline
}

// Columns is a pair of time and node count columns.
type Columns struct {
	Time, Nodes string
}

// Derive adds a column for each metric to res.
//
// Values are computed elementwise. Zero times or node counts are not
// guarded against; they produce infinite or NaN metric values.
func Derive(res *timingfmt.Results, metrics ...Metric) (*Derivation, error) {
	d := &Derivation{Baselines: make(map[Columns]Baseline)}
	b := table.NewBuilder(res.Table)
	seen := make(map[string]bool)
	for _, m := range metrics {
		name := m.Name()
		if seen[name] {
			return nil, fmt.Errorf("%s: metric %s requested twice", res.Name, name)
		}
		seen[name] = true

		times, err := res.Floats(m.timeCol())
		if err != nil {
			return nil, err
		}
		nodes, err := res.Floats(m.nodesCol())
		if err != nil {
			return nil, err
		}

		var base Baseline
		if m.Kind.NeedsBaseline() {
			cols := Columns{m.timeCol(), m.nodesCol()}
			var ok bool
			if base, ok = d.Baselines[cols]; !ok {
				base, err = ComputeBaseline(res, cols.Time, cols.Nodes)
				if err != nil {
					return nil, err
				}
				d.Baselines[cols] = base
			}
		}

		col := make([]float64, len(times))
		for i := range col {
			col[i] = m.Kind.eval(base, times[i], nodes[i])
		}
		b.Add(name, col)
	}
	for _, name := range dropColumns {
		b.Add(name, nil)
	}
	d.Table = b.Done()
	return d, nil
}
