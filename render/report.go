package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/zalepa/crimestats/chart"
)

const (
	pageWidth    = 8.5 * vg.Inch
	pageHeight   = 11 * vg.Inch
	pdfMargin    = 0.75 * vg.Inch
	headerHeight = 0.7 * vg.Inch
)

// Report is the content of a PDF report: a summary page with both dashboard
// panels followed by one yearly chart per category.
type Report struct {
	Title      string
	Subtitle   string
	Yearly     chart.BarChart
	Trend      chart.BarChart
	Categories []chart.BarChart
}

// Pages returns the number of pages WriteReport produces.
func (r Report) Pages() int { return 1 + len(r.Categories) }

// WriteReport renders r as a multi-page PDF.
func WriteReport(w io.Writer, r Report) error {
	c := vgpdf.New(pageWidth, pageHeight)

	area := pageArea(c)
	height := area.Max.Y - area.Min.Y
	fillText(area, plainText(r.Title), vg.Points(16), area.Min.X, area.Max.Y-vg.Points(16), color.Black)
	fillText(area, plainText(r.Subtitle), vg.Points(10), area.Min.X, area.Max.Y-0.45*vg.Inch, color.Gray{Y: 100})

	rest := height - headerHeight
	if err := drawChart(draw.Crop(area, 0, 0, rest*0.65, -headerHeight), r.Yearly); err != nil {
		return err
	}
	if err := drawChart(draw.Crop(area, 0, 0, 0, -(headerHeight+rest*0.37)), r.Trend); err != nil {
		return err
	}

	for _, bc := range r.Categories {
		c.NextPage()
		if err := drawChart(draw.Crop(pageArea(c), 0, 0, height*0.5, 0), bc); err != nil {
			return err
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteReportFile writes the report to path.
func WriteReportFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pageArea(c *vgpdf.Canvas) draw.Canvas {
	return draw.Crop(draw.New(c), pdfMargin, -pdfMargin, pdfMargin, -pdfMargin)
}

func drawChart(area draw.Canvas, bc chart.BarChart) error {
	p, err := Plot(bc)
	if err != nil {
		return err
	}
	p.Draw(area)
	return nil
}

func fillText(c draw.Canvas, txt string, size vg.Length, x, y vg.Length, clr color.Color) {
	sty := draw.TextStyle{
		Color:   clr,
		Font:    plot.DefaultFont,
		Handler: plot.DefaultTextHandler,
	}
	sty.Font.Size = size
	c.FillText(sty, vg.Point{X: x, Y: y}, txt)
}
