// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagetab

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// DefaultPayload is the amount of data moved by one benchmark run,
// used to derive bandwidth from wall-clock time.
const DefaultPayload = 34709.942648

var (
	summaryKey     = []string{"version", "thread", "segment_size"}
	summaryMetrics = []string{"usr_time", "sys_time", "cpu%", "wall_clock", "bandwidth"}
)

// A Summary is a table of per-configuration means. Its columns are
// version, thread, segment_size, usr_time, sys_time, cpu%, wall_clock
// and bandwidth, and its rows are sorted by the first three.
type Summary struct {
	Table *table.Table
}

// Summarize groups the rows of t by (version, thread, segment_size)
// and computes the mean of each metric column in every group.
// Bandwidth is payload divided by wall-clock time.
func Summarize(t *table.Table, payload float64) (*Summary, error) {
	if t.Len() == 0 {
		return nil, errors.New("no rows to summarize")
	}

	var b table.Builder
	for _, col := range summaryKey {
		c := t.Column(col)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		b.Add(col, c)
	}
	for _, col := range summaryMetrics[:len(summaryMetrics)-1] {
		xs, err := floats(t, col)
		if err != nil {
			return nil, err
		}
		b.Add(col, xs)
	}

	var g table.Grouping = b.Done()
	g = table.MapCols(g, func(wall, bw []float64) {
		for i, w := range wall {
			bw[i] = payload / w
		}
	}, "wall_clock")("bandwidth")
	g = ggstat.Agg(summaryKey...)(ggstat.AggMean(summaryMetrics...)).F(g)
	for _, col := range summaryMetrics {
		g = table.Rename(g, "mean "+col, col)
	}
	g = table.SortBy(g, summaryKey...)
	return &Summary{table.Flatten(g)}, nil
}

// Columns returns the column names of s in display order.
func (s *Summary) Columns() []string {
	return append(append([]string(nil), summaryKey...), summaryMetrics...)
}
