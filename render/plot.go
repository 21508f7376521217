// Package render draws chart descriptions with gonum/plot, as images, PDF
// reports or plain text.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zalepa/crimestats/chart"
)

var chartBlue = color.RGBA{R: 0x4f, G: 0x6c, B: 0xf0, A: 255}

const barWidth = 14 // points

// Plot builds a gonum plot for c. Each bar is its own plotter.BarChart so it
// can carry its own color. The value axis is hidden; values are shown as bar
// labels instead.
func Plot(c chart.BarChart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = plainText(c.Title)
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.BackgroundColor = color.White

	horizontal := c.Orientation == chart.Horizontal
	var (
		pts    plotter.XYs
		labels []string
		lo, hi float64
	)
	for i, b := range c.Bars {
		bar, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(barWidth))
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", b.Category, err)
		}
		bar.XMin = float64(i)
		bar.Horizontal = horizontal
		bar.Color = hexColor(b.Color)
		bar.LineStyle.Width = 0
		p.Add(bar)

		if horizontal {
			pts = append(pts, plotter.XY{X: b.Value, Y: float64(i)})
		} else {
			pts = append(pts, plotter.XY{X: float64(i), Y: b.Value})
		}
		labels = append(labels, b.Label)
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}

	if len(pts) > 0 {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		if horizontal {
			lbls.Offset = vg.Point{X: vg.Points(3), Y: -vg.Points(3)}
		} else {
			lbls.Offset = vg.Point{X: -vg.Points(6), Y: vg.Points(2)}
		}
		p.Add(lbls)
	}

	if len(c.Bars) == 0 {
		if err := emptyState(p); err != nil {
			return nil, err
		}
		return p, nil
	}

	// Leave room for the labels past the longest bars.
	pad := (hi - lo) * 0.15
	if pad == 0 {
		pad = 1
	}
	names := c.Categories()
	if horizontal {
		p.NominalY(names...)
		p.X.Min, p.X.Max = lo-pad, hi+pad
		p.HideX()
	} else {
		p.NominalX(names...)
		p.Y.Min, p.Y.Max = lo, hi+pad
		p.HideY()
	}
	return p, nil
}

// NoData is drawn in place of the bars of an empty chart.
const NoData = "No data"

// emptyState leaves p with its title and a centred NoData note. Nominal axes
// need at least one name, so both axes are hidden.
func emptyState(p *plot.Plot) error {
	note, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 0.5, Y: 0.5}},
		Labels: []string{NoData},
	})
	if err != nil {
		return fmt.Errorf("empty chart: %w", err)
	}
	note.TextStyle[0].XAlign = draw.XCenter
	note.TextStyle[0].Color = color.Gray{Y: 110}
	p.Add(note)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.HideAxes()
	return nil
}

// hexColor parses "#rrggbb", falling back to the default blue.
func hexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return chartBlue
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return chartBlue
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// plainText replaces dashes the Liberation fonts used by vgpdf cannot render.
func plainText(s string) string {
	s = strings.ReplaceAll(s, "—", "-")
	return strings.ReplaceAll(s, "–", "-")
}
