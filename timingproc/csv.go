// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingproc

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/alphabeta/timingplot/timingfmt"
)

// WriteCSV writes s as a CSV table with one row per thread count and
// a mean and standard deviation column per metric.
func (s *Summary) WriteCSV(out io.Writer) error {
	hdr := []string{timingfmt.ColThreads, statCount}
	for _, m := range s.metrics {
		hdr = append(hdr, statMean+m, statStdDev+m)
	}
	tab := [][]string{hdr}
	for i, th := range s.Threads {
		row := []string{strconv.Itoa(th), strconv.Itoa(s.Counts[i])}
		for _, m := range s.metrics {
			sr := s.series[m]
			row = append(row, strof(sr.Mean[i]), strof(sr.StdDev[i]))
		}
		tab = append(tab, row)
	}
	csvw := csv.NewWriter(out)
	if err := csvw.WriteAll(tab); err != nil {
		return err
	}
	csvw.Flush()
	return csvw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
