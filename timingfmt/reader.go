// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timingfmt reads benchmark timing results.
//
// A timing results file is a comma-separated table with a header row.
// Each row is one trial of the benchmarked search at some thread
// count, for example:
//
//	trial,num_threads,num_nodes,time
//	0,1,100,1000
//	1,1,100,1000
//	2,1,100,1000
//	3,2,150,600
//
// The trial, num_threads and pos_idx columns hold integers. Every
// other column holds floating point values.
package timingfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Well-known column names.
const (
	ColTrial   = "trial"
	ColThreads = "num_threads"
	ColNodes   = "num_nodes"
	ColTime    = "time"
	ColPosIdx  = "pos_idx"
)

// intColumns are parsed as []int. Everything else is []float64.
var intColumns = map[string]bool{
	ColTrial:   true,
	ColThreads: true,
	ColPosIdx:  true,
}

// Results is one timing results file loaded into a table.
//
// Rows are kept in file order. A Results should be treated as
// immutable once loaded.
type Results struct {
	// Name identifies the source of the results. It is purely
	// diagnostic.
	Name string

	// Table holds one column per header field.
	Table *table.Table
}

// A SyntaxError represents a malformed line in a timing results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A ColumnError reports a reference to a column that the results do
// not have.
type ColumnError struct {
	FileName string
	Column   string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: unknown column %q", e.FileName, e.Column)
}

// Load reads the timing results file at path.
//
// If path does not exist, the returned error wraps fs.ErrNotExist.
func Load(path string) (*Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a timing results table from r. name is used in error
// messages.
func Read(r io.Reader, name string) (*Results, error) {
	if name == "" {
		name = "<unknown>"
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{name, 1, "missing header row"}
	} else if err != nil {
		return nil, csvError(name, err)
	}
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		if i == 0 {
			// Spreadsheet exports may start with a byte order mark.
			col = strings.TrimPrefix(col, "\ufeff")
		}
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, &SyntaxError{name, 1, fmt.Sprintf("empty name for column %d", i+1)}
		}
		if seen[col] {
			return nil, &SyntaxError{name, 1, fmt.Sprintf("duplicate column %q", col)}
		}
		seen[col] = true
		header[i] = col
	}

	ints := make([][]int, len(header))
	floats := make([][]float64, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := cr.FieldPos(0)
		for i, cell := range rec {
			col := header[i]
			cell = strings.TrimSpace(cell)
			if intColumns[col] {
				v, err := strconv.Atoi(cell)
				if err != nil {
					return nil, &SyntaxError{name, line, fmt.Sprintf("column %q: %q is not an integer", col, cell)}
				}
				ints[i] = append(ints[i], v)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &SyntaxError{name, line, fmt.Sprintf("column %q: %q is not a number", col, cell)}
			}
			floats[i] = append(floats[i], v)
		}
	}

	var b table.Builder
	for i, col := range header {
		if intColumns[col] {
			if ints[i] == nil {
				ints[i] = []int{}
			}
			b.Add(col, ints[i])
		} else {
			if floats[i] == nil {
				floats[i] = []float64{}
			}
			b.Add(col, floats[i])
		}
	}
	return &Results{Name: name, Table: b.Done()}, nil
}

func csvError(name string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{name, perr.Line, perr.Err.Error()}
	}
	return fmt.Errorf("reading %s: %w", name, err)
}

// Len returns the number of rows.
func (r *Results) Len() int {
	return r.Table.Len()
}

// Columns returns the column names in header order.
func (r *Results) Columns() []string {
	return r.Table.Columns()
}

// Has reports whether the results have column col.
func (r *Results) Has(col string) bool {
	return r.Table.Column(col) != nil
}

// Ints returns the values of integer column col.
func (r *Results) Ints(col string) ([]int, error) {
	c := r.Table.Column(col)
	if c == nil {
		return nil, &ColumnError{r.Name, col}
	}
	xs, ok := c.([]int)
	if !ok {
		return nil, fmt.Errorf("%s: column %q is not an integer column", r.Name, col)
	}
	return xs, nil
}

// Floats returns the values of column col as float64s, converting
// integer columns.
func (r *Results) Floats(col string) ([]float64, error) {
	c := r.Table.Column(col)
	if c == nil {
		return nil, &ColumnError{r.Name, col}
	}
	var xs []float64
	slice.Convert(&xs, c)
	return xs, nil
}
