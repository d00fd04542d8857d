// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plotcutoff compares the shared, local and blended cutoff
// strategies.
//
// Usage:
//
//	plotcutoff [--data dir] [--summary] [--csv] [-v]
//
// It reads cutoff_results_pos_{0,1}_depth_{4,5}.csv, whose rows carry
// a time_<strategy> and num_nodes_<strategy> column pair per strategy,
// and draws one line per strategy with a shaded standard deviation
// band:
//
//	avg_time_per_node_depth_{4,5}.png
//	cutoff_speedup_depth_{4,5}.png
//	cutoff_speedup_by_depth.png  one row of panels per depth
package main

import "github.com/alphabeta/timingplot/internal/cli"

func main() {
	cli.Main("plotcutoff")
}
