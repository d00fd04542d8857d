// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plottiming charts how search speed scales with thread count.
//
// Usage:
//
//	plottiming [--data dir] [--summary] [--csv] [-v]
//
// Plottiming reads timing_results_pos_0.csv (the "Early Game"
// position) and timing_results_pos_1.csv (the "End Game" position)
// from the data directory. Each file holds one row per trial with the
// columns trial, num_threads, num_nodes and time. The first three rows
// are the single-threaded baseline.
//
// It writes three charts to the data directory, each with one line
// per position and ±1 standard deviation error bars:
//
//	speedup_per_node.png  baseline time per node over time per node
//	node_factor.png       nodes searched relative to the baseline
//	total_speedup.png     baseline time over time, with a line at 1
//
// The data directory defaults to ../data beside the executable.
package main

import "github.com/alphabeta/timingplot/internal/cli"

func main() {
	cli.Main("plottiming")
}
