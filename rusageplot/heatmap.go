// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rusageplot draws the heatmaps computed by package rusagetab.
package rusageplot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/rusage/rusagetab"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size of one heatmap, alone or as a tile of a grid.
const (
	Width  = 16 * vg.Centimeter
	Height = 12 * vg.Centimeter
)

// matrixGrid adapts a Matrix to plotter.GridXYZ. Column c and row r
// are drawn centered on (c, r).
type matrixGrid struct {
	m *rusagetab.Matrix
}

func (g matrixGrid) Dims() (c, r int)   { return len(g.m.XLabels), len(g.m.YLabels) }
func (g matrixGrid) Z(c, r int) float64 { return g.m.Cells[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// Heatmap returns an annotated heatmap of m, colored with the
// sequential Blues palette. Each cell is labeled with its value to two
// decimal places. Cells with no value are left blank, and infinite
// cells take the color at the matching end of the palette.
func Heatmap(m *rusagetab.Matrix) (*plot.Plot, error) {
	if len(m.XLabels) == 0 || len(m.YLabels) == 0 {
		return nil, fmt.Errorf("%s: empty heatmap", m.Title)
	}
	pal, err := brewer.GetPalette(brewer.TypeSequential, "Blues", 9)
	if err != nil {
		return nil, err
	}

	lo, hi := colorRange(m)
	h := plotter.NewHeatMap(matrixGrid{m}, pal)
	h.Min, h.Max = lo, hi
	colors := pal.Colors()
	h.Underflow, h.Overflow = colors[0], colors[len(colors)-1]

	pl := plot.New()
	pl.Title.Text = m.Title
	pl.X.Label.Text = m.X
	pl.Y.Label.Text = m.Y
	pl.X.Tick.Marker = ticks(m.XLabels)
	pl.Y.Tick.Marker = ticks(m.YLabels)
	pl.Add(h)

	if xyl := cellLabels(m); len(xyl.Labels) > 0 {
		labels, err := plotter.NewLabels(xyl)
		if err != nil {
			return nil, err
		}
		for i, xy := range xyl.XYs {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
			// Dark cells get light text.
			if v := m.Cells[int(xy.Y)][int(xy.X)]; v > lo+0.6*(hi-lo) {
				labels.TextStyle[i].Color = color.White
			}
		}
		pl.Add(labels)
	}
	return pl, nil
}

// colorRange returns the finite value range mapped onto the palette.
// The range is never empty.
func colorRange(m *rusagetab.Matrix) (lo, hi float64) {
	lo, hi = m.Bounds()
	switch {
	case math.IsNaN(lo):
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func ticks(labels []string) plot.ConstantTicks {
	ts := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ts[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return ts
}

// cellLabels returns a "%.2f" label centered on every non-NaN cell of m.
func cellLabels(m *rusagetab.Matrix) plotter.XYLabels {
	var xyl plotter.XYLabels
	for r, row := range m.Cells {
		for c, v := range row {
			if math.IsNaN(v) {
				continue
			}
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf("%.2f", v))
		}
	}
	return xyl
}

// FileName returns the path of the image for the heatmap titled title
// in directory dir. Spaces become dashes and path separators become
// underscores.
func FileName(dir, title string) string {
	name := strings.NewReplacer(" ", "-", "/", "_", string(filepath.Separator), "_").Replace(title)
	return filepath.Join(dir, name+".png")
}

// Save writes pl to path as a single image. The format follows the
// file extension.
func Save(pl *plot.Plot, path string) error {
	return pl.Save(Width, Height, path)
}

// Grid draws plots as a grid of tiles, one tile per plot, and writes
// the result to path as a PNG. Nil plots leave their tile blank.
func Grid(plots [][]*plot.Plot, path string) error {
	rows, cols := len(plots), 0
	for _, row := range plots {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%s: no plots", path)
	}
	// plot.Align wants a full rectangle.
	full := make([][]*plot.Plot, rows)
	for i, row := range plots {
		full[i] = make([]*plot.Plot, cols)
		copy(full[i], row)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(cols)*Width, vg.Length(rows)*Height),
		vgimg.UseBackgroundColor(color.White))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(full, tiles, dc)
	for i, row := range full {
		for j, pl := range row {
			if pl != nil {
				pl.Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
