package render

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot/vg"

	"github.com/zalepa/crimestats/chart"
)

// ErrUnsupportedFormat is returned for image formats other than png and svg.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ContentTypes maps supported image formats to their MIME types.
var ContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
}

// Size returns the default drawing size for c: a short strip for yearly bars
// and a tall panel for horizontal category bars.
func Size(c chart.BarChart) (w, h vg.Length) {
	if c.Orientation == chart.Horizontal {
		rows := vg.Length(len(c.Bars))
		h = rows*0.4*vg.Inch + vg.Inch
		if h < 4*vg.Inch {
			h = 4 * vg.Inch
		}
		return 9.5 * vg.Inch, h
	}
	return 6 * vg.Inch, 3 * vg.Inch
}

// WriteImage renders c in the given format (png or svg) at its default size.
func WriteImage(w io.Writer, c chart.BarChart, format string) error {
	if _, ok := ContentTypes[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	p, err := Plot(c)
	if err != nil {
		return err
	}
	width, height := Size(c)
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
