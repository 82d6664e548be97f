// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rusagetab aggregates the comma-separated tables written by
// package rusagefmt.
//
// Tables are loaded into github.com/aclements/go-gg tables. String
// columns (category, version) stay strings, the configuration columns
// (thread, segment_size, buffer_size, iteration) are integers, and
// every other numeric column is float64 so that means and derived
// values are not truncated.
package rusagetab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Identity lists the columns that together identify one benchmark
// configuration.
var Identity = []string{"version", "thread", "segment_size", "buffer_size"}

// Wildcard is the value of an integer identity column that matches
// every pinned value of that column.
const Wildcard = -1

// wildcardString is Wildcard as it appears in a string identity column.
const wildcardString = "-1"

var (
	stringCols = map[string]bool{"category": true, "version": true}
	intCols    = map[string]bool{"thread": true, "segment_size": true, "buffer_size": true, "iteration": true}
)

// Load reads a comma-separated table whose first record is the header.
// If the table has no buffer_size column, Load adds one filled with
// Wildcard.
func Load(r io.Reader) (*table.Table, error) {
	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("missing header line")
	}
	header, rows := recs[0], recs[1:]

	t := table.TableFromStrings(header, rows, true)
	b := table.NewBuilder(t)
	for i, col := range header {
		switch {
		case stringCols[col]:
			// Keep the text exactly, even when it looks like a number.
			strs := make([]string, len(rows))
			for j, row := range rows {
				strs[j] = row[i]
			}
			b.Add(col, strs)
		case intCols[col]:
			if _, ok := t.Column(col).([]int); !ok && len(rows) > 0 {
				return nil, fmt.Errorf("column %q: want integer values", col)
			}
		default:
			if xs, ok := t.Column(col).([]int); ok {
				var fs []float64
				slice.Convert(&fs, xs)
				b.Add(col, fs)
			}
		}
	}
	if !b.Has("buffer_size") && len(header) > 0 {
		bs := make([]int, len(rows))
		for i := range bs {
			bs[i] = Wildcard
		}
		b.Add("buffer_size", bs)
	}
	return b.Done(), nil
}

// LoadFile is like Load, but reads the named file.
func LoadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// floats returns column col of t as float64 values.
func floats(t *table.Table, col string) ([]float64, error) {
	switch xs := t.Column(col).(type) {
	case nil:
		return nil, fmt.Errorf("unknown column %q", col)
	case []float64:
		return xs, nil
	case []int:
		var fs []float64
		slice.Convert(&fs, xs)
		return fs, nil
	}
	return nil, fmt.Errorf("column %q is not numeric", col)
}
