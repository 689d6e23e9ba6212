// Package render draws normalized frequency-response curves as fixed-
// geometry PNG plots.
//
// The visual contract is deliberately rigid so every dataset image is
// comparable: log-scaled frequency axis over 20 Hz – 20 kHz, linear
// level axis over ±30 dB, one curve trace, no ticks, labels, title, or
// grid, and a thin border frame.
package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Axis limits shared by every rendered plot.
const (
	freqMin  = 20
	freqMax  = 20000
	levelMin = -30
	levelMax = 30
)

var (
	traceColor  = color.RGBA{B: 255, A: 255}
	borderColor = color.Black
)

// Options describes the output geometry of rendered plots.
type Options struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// Renderer writes normalized curves to PNG files.
type Renderer struct {
	opts Options
}

// New constructs a renderer with the given geometry.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render draws the normalized curve and writes it to path as a PNG.
// Samples with non-positive frequencies are dropped; the log axis
// cannot represent them.
func (r *Renderer) Render(frequencies, normalized []float64, path string) error {
	if len(frequencies) != len(normalized) {
		return fmt.Errorf("render: frequency/level length mismatch: %d vs %d", len(frequencies), len(normalized))
	}

	points := make(plotter.XYs, 0, len(frequencies))
	for i, freq := range frequencies {
		if freq <= 0 {
			continue
		}
		points = append(points, plotter.XY{X: freq, Y: normalized[i]})
	}
	if len(points) == 0 {
		return fmt.Errorf("render: no positive-frequency samples to plot")
	}

	p := plot.New()
	p.BackgroundColor = color.White

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("render: build line: %w", err)
	}
	line.Color = traceColor
	line.Width = vg.Points(2)
	p.Add(line)

	// Fixed window regardless of the data range; set after Add so the
	// plotter cannot widen it.
	p.X.Scale = plot.LogScale{}
	p.X.Min, p.X.Max = freqMin, freqMax
	p.Y.Min, p.Y.Max = levelMin, levelMax

	// Strip every axis decoration for a clean training image.
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.X.Label.Text = ""
	p.Y.Label.Text = ""
	p.Title.Text = ""

	width := vg.Length(r.opts.WidthInches) * vg.Inch
	height := vg.Length(r.opts.HeightInches) * vg.Inch
	canvas := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(r.opts.DPI),
		vgimg.UseBackgroundColor(color.White),
	)

	dc := draw.New(canvas)
	p.Draw(dc)
	strokeBorder(dc, width, height)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create image: %w", err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("render: write image: %w", err)
	}
	return file.Close()
}

// strokeBorder frames the canvas with a thin black rectangle, inset by
// half the stroke width so the full line lands inside the image.
func strokeBorder(dc draw.Canvas, width, height vg.Length) {
	style := draw.LineStyle{Color: borderColor, Width: vg.Points(1)}
	inset := style.Width / 2
	dc.StrokeLines(style, []vg.Point{
		{X: inset, Y: inset},
		{X: width - inset, Y: inset},
		{X: width - inset, Y: height - inset},
		{X: inset, Y: height - inset},
		{X: inset, Y: inset},
	})
}
