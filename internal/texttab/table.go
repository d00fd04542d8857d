// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// A Table accumulates cells row by row and lays them out in columns
// wide enough for their widest cell.
//
// Row and Cell return the table so calls can be chained:
//
//	tab.Row().Cell("threads").Cell("mean", Right)
type Table struct {
	rows [][]cell
	cols int

	// Gap separates adjacent columns. The zero value means a
	// single space.
	Gap string
}

type cell struct {
	text  string
	align Align
}

// Align is the horizontal placement of a cell within its column.
type Align int

const (
	Left Align = iota
	Right
)

func (a Align) pad(s string, width int) (left, right int) {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return 0, 0
	}
	if a == Right {
		return n, 0
	}
	return 0, n
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row, starting a row if there is
// none. Cells are left-aligned unless an alignment is given.
func (t *Table) Cell(text string, align ...Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{text: text}
	if len(align) > 0 {
		c.align = align[0]
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, c)
	if len(*r) > t.cols {
		t.cols = len(*r)
	}
	return t
}

// Format writes t to w. Trailing blanks are trimmed from every line.
func (t *Table) Format(w io.Writer) error {
	widths := make([]int, t.cols)
	for _, r := range t.rows {
		for i, c := range r {
			if n := utf8.RuneCountInString(c.text); n > widths[i] {
				widths[i] = n
			}
		}
	}
	gap := t.Gap
	if gap == "" {
		gap = " "
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		for i, c := range r {
			if i > 0 {
				line.WriteString(gap)
			}
			l, rt := c.align.pad(c.text, widths[i])
			line.WriteString(strings.Repeat(" ", l))
			line.WriteString(c.text)
			line.WriteString(strings.Repeat(" ", rt))
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
