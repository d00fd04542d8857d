// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plotscaling charts depth-5 search scaling for the two benchmark
// positions side by side.
//
// Usage:
//
//	plotscaling [--data dir] [--summary] [--csv] [-v]
//
// It reads timing_results_pos_{0,1}_depth_5.csv and writes
// speedup_factor_depth_5.png, additional_nodes_depth_5.png and
// time_per_node_depth_5.png.
package main

import "github.com/alphabeta/timingplot/internal/cli"

func main() {
	cli.Main("plotscaling")
}
