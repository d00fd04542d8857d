// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alphabeta/timingplot/internal/texttab"
	"github.com/alphabeta/timingplot/timingfmt"
	"github.com/alphabeta/timingplot/timingproc"
)

// writeSummary writes s as a text table headed by name. Each metric
// cell is "mean ± stddev".
func writeSummary(w io.Writer, name string, s *timingproc.Summary) error {
	if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
		return err
	}
	tab := texttab.Table{Gap: "  "}
	tab.Row().Cell(timingfmt.ColThreads).Cell("n", texttab.Right)
	for _, m := range s.Metrics() {
		tab.Cell(m, texttab.Right)
	}
	for i, th := range s.Threads {
		tab.Row().Cell(strconv.Itoa(th)).Cell(strconv.Itoa(s.Counts[i]), texttab.Right)
		for _, m := range s.Metrics() {
			sr, _ := s.Series(m)
			tab.Cell(fmt.Sprintf("%.4g ± %.2g", sr.Mean[i], sr.StdDev[i]), texttab.Right)
		}
	}
	if err := tab.Format(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
