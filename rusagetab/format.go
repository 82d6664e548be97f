// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagetab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/safehtml/template"
	"golang.org/x/rusage/internal/texttab"
	"golang.org/x/rusage/rusageunit"
)

// percent shows a fraction as a percentage.
var percent = rusageunit.Scaler{Prec: 1, Factor: 0.01, Prefix: "%"}

// cells formats column col of s. Unless raw is set, cpu% is shown as a
// percentage and other float columns are scaled to a common SI prefix.
func (s *Summary) cells(col string, raw bool) (cells []string, numeric bool) {
	switch xs := s.Table.Column(col).(type) {
	case []string:
		return xs, false
	case []int:
		for _, x := range xs {
			cells = append(cells, strconv.Itoa(x))
		}
		return cells, true
	case []float64:
		scaler := rusageunit.NoOpScaler
		switch {
		case raw:
		case col == "cpu%":
			scaler = percent
		default:
			scaler = rusageunit.CommonScale(xs)
		}
		for _, x := range xs {
			cells = append(cells, scaler.Format(x))
		}
		return cells, true
	default:
		panic(fmt.Sprintf("summary column %q has unexpected type %T", col, xs))
	}
}

// grid returns the formatted cells of s in row-major order, and
// which columns are numeric.
func (s *Summary) grid(raw bool) (rows [][]string, numeric []bool) {
	rows = make([][]string, s.Table.Len())
	for _, col := range s.Columns() {
		cells, num := s.cells(col, raw)
		for i, c := range cells {
			rows[i] = append(rows[i], c)
		}
		numeric = append(numeric, num)
	}
	return rows, numeric
}

// WriteText writes s to w as an aligned text table.
func (s *Summary) WriteText(w io.Writer, raw bool) error {
	var tab texttab.Table
	tab.Row()
	for _, col := range s.Columns() {
		tab.Cell(col)
	}
	rows, numeric := s.grid(raw)
	for _, row := range rows {
		tab.Row()
		for i, c := range row {
			if numeric[i] {
				tab.Cell(c, texttab.Right)
			} else {
				tab.Cell(c)
			}
		}
	}
	return tab.Format(w)
}

// WriteCSV writes s to w as comma-separated values with unscaled
// numbers.
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write(s.Columns())
	rows, _ := s.grid(true)
	cw.WriteAll(rows)
	return cw.Error()
}

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='rusage'>
<tr>{{range .Columns}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr>{{range .}}<td>{{.}}{{end}}
{{end -}}
</table>
`))

// WriteHTML writes s to w as an HTML table.
func (s *Summary) WriteHTML(w io.Writer, raw bool) error {
	rows, _ := s.grid(raw)
	return htmlTemplate.Execute(w, struct {
		Columns []string
		Rows    [][]string
	}{s.Columns(), rows})
}
