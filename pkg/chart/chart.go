// Package chart renders titled XY line series. The Renderer interface keeps
// the computational packages free of any plotting dependency; the concrete
// implementation draws with gonum/plot.
package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Series is one titled line series with axis labels.
type Series struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Renderer draws a Series. Implementations choose the medium; tests can
// substitute a capturing implementation.
type Renderer interface {
	Render(s Series) error
}

// PNGRenderer writes the chart to a PNG file.
type PNGRenderer struct {
	Path          string
	Width, Height vg.Length
}

// NewPNGRenderer creates a renderer targeting the given file path with the
// default 8x5 inch canvas.
func NewPNGRenderer(path string) *PNGRenderer {
	return &PNGRenderer{
		Path:   path,
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// Render draws the series as a line with circular point markers over a grid
// and saves it to the configured path.
func (r *PNGRenderer) Render(s Series) error {
	p, err := buildPlot(s)
	if err != nil {
		return err
	}
	if err := p.Save(r.Width, r.Height, r.Path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", r.Path, err)
	}
	return nil
}

// WritePNG renders the series as PNG bytes to w, used by the HTTP chart
// endpoint.
func WritePNG(w io.Writer, s Series, width, height vg.Length) error {
	p, err := buildPlot(s)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

func buildPlot(s Series) (*plot.Plot, error) {
	if len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("series length mismatch: %d x values, %d y values", len(s.X), len(s.Y))
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i].X = s.X[i]
		xys[i].Y = s.Y[i]
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("building line plot: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	return p, nil
}
