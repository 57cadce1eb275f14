// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders the aggregate views as PNG bar charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/cord19-explorer/internal/strutil"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	teal    = color.RGBA{R: 0, G: 128, B: 128, A: 255}
)

// maxLabelLen caps journal names on the category axis.
const maxLabelLen = 40

// Size is the physical size and resolution of a rendered chart.
type Size struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// Sizes used by the batch run (print quality) and the dashboard (screen).
var (
	YearsFile    = Size{Width: 8 * vg.Inch, Height: 5 * vg.Inch, DPI: 300}
	JournalsFile = Size{Width: 10 * vg.Inch, Height: 6 * vg.Inch, DPI: 300}
	Screen       = Size{Width: 8 * vg.Inch, Height: 5 * vg.Inch, DPI: 96}
)

// Years builds the publications-per-year bar chart.
func Years(counts []types.Count) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	labels := make([]string, len(counts))
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		labels[i] = c.Key
		values[i] = float64(c.Count)
	}

	p := plot.New()
	p.Title.Text = "Number of Publications per Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Papers"

	bars, err := plotter.NewBarChart(values, barWidth(len(counts)))
	if err != nil {
		return nil, fmt.Errorf("building year bars: %w", err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid, bars)
	p.NominalX(labels...)
	return p, nil
}

// Journals builds the horizontal top-journals bar chart. counts is in
// descending order; the largest bar is drawn at the top.
func Journals(counts []types.Count) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	n := len(counts)
	labels := make([]string, n)
	values := make(plotter.Values, n)
	for i, c := range counts {
		// Bars stack upward from the first value, so reverse.
		labels[n-1-i] = strutil.Clip(c.Key, maxLabelLen)
		values[n-1-i] = float64(c.Count)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Journals Publishing COVID-19 Papers", n)
	p.X.Label.Text = "Number of Papers"
	p.Y.Label.Text = "Journal"

	bars, err := plotter.NewBarChart(values, barWidth(n))
	if err != nil {
		return nil, fmt.Errorf("building journal bars: %w", err)
	}
	bars.Color = teal
	bars.LineStyle.Width = 0
	bars.Horizontal = true

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	p.Add(grid, bars)
	p.NominalY(labels...)
	return p, nil
}

// WritePNG draws p at the given size and writes it to w as PNG.
func WritePNG(w io.Writer, p *plot.Plot, size Size) error {
	c := vgimg.NewWith(vgimg.UseWH(size.Width, size.Height), vgimg.UseDPI(size.DPI))
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// SavePNG writes p to path as PNG.
func SavePNG(path string, p *plot.Plot, size Size) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePNG(f, p, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// barWidth narrows bars as their number grows.
func barWidth(n int) vg.Length {
	w := vg.Points(300 / float64(n))
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}
