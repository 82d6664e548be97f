// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagetab

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"golang.org/x/rusage/internal/expr"
)

// CustomColumn is the column that holds a metric given as an
// expression.
const CustomColumn = "custom"

// A Query selects a set of heatmaps.
//
// ConstA and ConstB name the two pinned identity columns. The other
// two identity columns become the axes of each heatmap. ValueA and
// ValueB pin those columns to one value, given in log-scaled units for
// segment_size and buffer_size. An empty value selects every distinct
// value of the column, producing one heatmap per value.
type Query struct {
	ConstA, ConstB string
	ValueA, ValueB string

	// Metric is a column name or an arithmetic expression over
	// numeric columns.
	Metric string
}

// A Matrix is the pivoted data of one heatmap.
type Matrix struct {
	Title string

	// X and Y name the columns along each axis.
	X, Y             string
	XLabels, YLabels []string

	// Cells[i][j] is the mean metric at YLabels[i] and XLabels[j],
	// or NaN if no row has that configuration.
	Cells [][]float64
}

// Bounds returns the smallest and largest finite cell of m. If m has
// no such cells, both are NaN.
func (m *Matrix) Bounds() (lo, hi float64) {
	var xs []float64
	for _, row := range m.Cells {
		for _, x := range row {
			if !math.IsNaN(x) && !math.IsInf(x, 0) {
				xs = append(xs, x)
			}
		}
	}
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}

// Heatmaps computes the heatmaps selected by q. The result has one
// row per pinned value of ConstA and one column per pinned value of
// ConstB. Each title names the pinned values and the metric, with
// spaces removed from an expression metric.
func Heatmaps(t *table.Table, q Query) ([][]*Matrix, error) {
	if t.Len() == 0 {
		return nil, errors.New("no rows to plot")
	}
	x, y, err := q.axes()
	if err != nil {
		return nil, err
	}

	metric, name := q.Metric, q.Metric
	if t.Column(metric) == nil {
		if t, err = AddCustom(t, metric); err != nil {
			return nil, err
		}
		metric, name = CustomColumn, strings.ReplaceAll(q.Metric, " ", "")
	} else if _, ok := t.Column(metric).([]float64); !ok {
		return nil, fmt.Errorf("metric %q is not a measured column", metric)
	}
	t = LogScale(t)

	as, err := pins(t, q.ConstA, q.ValueA)
	if err != nil {
		return nil, err
	}
	bs, err := pins(t, q.ConstB, q.ValueB)
	if err != nil {
		return nil, err
	}

	grid := make([][]*Matrix, len(as))
	for i, a := range as {
		for _, b := range bs {
			title := fmt.Sprintf("%s=%v %s=%v %s", q.ConstA, a, q.ConstB, b, name)
			sel := Pin(Pin(t, q.ConstA, a), q.ConstB, b)
			if sel.Len() == 0 {
				return nil, fmt.Errorf("%s: no matching rows", title)
			}
			m := pivot(GroupMean(sel), x, y, metric)
			m.Title = title
			grid[i] = append(grid[i], m)
		}
	}
	return grid, nil
}

func isIdentity(col string) bool {
	for _, id := range Identity {
		if col == id {
			return true
		}
	}
	return false
}

// axes returns the identity columns that q leaves free.
func (q Query) axes() (x, y string, err error) {
	for _, c := range []string{q.ConstA, q.ConstB} {
		if !isIdentity(c) {
			return "", "", fmt.Errorf("pinned column %q is not one of %v", c, Identity)
		}
	}
	if q.ConstA == q.ConstB {
		return "", "", fmt.Errorf("column %q pinned twice", q.ConstA)
	}
	var free []string
	for _, id := range Identity {
		if id != q.ConstA && id != q.ConstB {
			free = append(free, id)
		}
	}
	return free[0], free[1], nil
}

// AddCustom parses src as an expression and returns t with a new
// float64 column, CustomColumn, holding its value in every row.
func AddCustom(t *table.Table, src string) (*table.Table, error) {
	node, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]float64)
	for _, name := range expr.Cols(node) {
		xs, err := floats(t, name)
		if err != nil {
			return nil, err
		}
		cols[name] = xs
	}
	out := make([]float64, t.Len())
	for i := range out {
		env := func(name string) (float64, bool) {
			xs, ok := cols[name]
			if !ok {
				return 0, false
			}
			return xs[i], true
		}
		if out[i], err = node.Eval(env); err != nil {
			return nil, err
		}
	}
	return table.NewBuilder(t).Add(CustomColumn, out).Done(), nil
}

// LogScale returns t with segment_size and buffer_size replaced by
// their rounded base-2 logarithm, and minor_page_faults and
// voluntary_ctx_swt replaced by their base-10 logarithm. Integer
// values below 1, including Wildcard, are left as they are.
func LogScale(t *table.Table) *table.Table {
	var g table.Grouping = t
	for _, col := range []string{"segment_size", "buffer_size"} {
		if _, ok := t.Column(col).([]int); !ok {
			continue
		}
		g = table.MapCols(g, func(in, out []int) {
			for i, v := range in {
				out[i] = v
				if v > 0 {
					out[i] = int(math.Round(math.Log2(float64(v))))
				}
			}
		}, col)(col)
	}
	for _, col := range []string{"minor_page_faults", "voluntary_ctx_swt"} {
		if _, ok := t.Column(col).([]float64); !ok {
			continue
		}
		g = table.MapCols(g, func(in, out []float64) {
			for i, v := range in {
				out[i] = math.Log10(v)
			}
		}, col)(col)
	}
	return table.Flatten(g)
}

// pins returns the values of col to pin. If val is empty, these are
// the distinct values of col in increasing order.
func pins(t *table.Table, col, val string) ([]interface{}, error) {
	if val != "" {
		v, err := parseValue(t, col, val)
		if err != nil {
			return nil, err
		}
		return []interface{}{v}, nil
	}
	vals := slice.Nub(t.MustColumn(col))
	slice.Sort(vals)
	var out []interface{}
	switch vals := vals.(type) {
	case []int:
		for _, v := range vals {
			out = append(out, v)
		}
	case []string:
		for _, v := range vals {
			out = append(out, v)
		}
	}
	return out, nil
}

// parseValue converts val to the element type of column col.
func parseValue(t *table.Table, col, val string) (interface{}, error) {
	switch t.Column(col).(type) {
	case []int:
		v, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("%s=%s: want an integer", col, val)
		}
		return v, nil
	case []string:
		return val, nil
	}
	return nil, fmt.Errorf("unknown column %q", col)
}

// Pin returns the rows of t where col equals val or the wildcard:
// Wildcard in integer columns and "-1" in string columns.
func Pin(t *table.Table, col string, val interface{}) *table.Table {
	g := table.Filter(t, func(v interface{}) bool {
		return v == val || v == Wildcard || v == wildcardString
	}, col)
	return table.Flatten(g)
}

// GroupMean groups t by the identity columns and averages every
// float64 column within each group.
func GroupMean(t *table.Table) *table.Table {
	var means []string
	for _, col := range t.Columns() {
		if _, ok := t.Column(col).([]float64); ok {
			means = append(means, col)
		}
	}
	g := ggstat.Agg(Identity...)(ggstat.AggMean(means...)).F(t)
	for _, col := range means {
		g = table.Rename(g, "mean "+col, col)
	}
	return table.Flatten(g)
}

// pivot lays out column metric of t with distinct values of y as rows
// and distinct values of x as columns. Duplicate (x, y) pairs are
// averaged.
func pivot(t *table.Table, x, y, metric string) *Matrix {
	xs, ys := labels(t, x), labels(t, y)
	xi, yi := index(xs), index(ys)

	vals, _ := floats(t, metric)
	sum := make([][]float64, len(ys))
	n := make([][]int, len(ys))
	for i := range sum {
		sum[i] = make([]float64, len(xs))
		n[i] = make([]int, len(xs))
	}
	xcol, ycol := strs(t.MustColumn(x)), strs(t.MustColumn(y))
	for r, v := range vals {
		i, j := yi[ycol[r]], xi[xcol[r]]
		sum[i][j] += v
		n[i][j]++
	}

	m := &Matrix{X: x, Y: y, XLabels: xs, YLabels: ys, Cells: sum}
	for i := range sum {
		for j := range sum[i] {
			if n[i][j] == 0 {
				sum[i][j] = math.NaN()
			} else {
				sum[i][j] /= float64(n[i][j])
			}
		}
	}
	return m
}

// labels returns the distinct values of col in increasing order,
// formatted as strings.
func labels(t *table.Table, col string) []string {
	vals := slice.Nub(t.MustColumn(col))
	slice.Sort(vals)
	return strs(vals)
}

func strs(vals slice.T) []string {
	switch vals := vals.(type) {
	case []string:
		return vals
	case []int:
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = strconv.Itoa(v)
		}
		return out
	}
	panic(fmt.Sprintf("unexpected column type %T", vals))
}

func index(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}
