// Package chart describes bar charts independently of how they are drawn.
package chart

import (
	"strconv"

	"github.com/zalepa/crimestats/aggregate"
)

// Bar colors used by the dashboard.
const (
	Blue = "#4f6cf0"
	Red  = "#f53333"
)

// Orientation of the bars.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Bar is one bar: its category-axis name, value, text label and color.
type Bar struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

// BarChart is everything a renderer needs to draw one chart.
type BarChart struct {
	Title       string      `json:"title"`
	Orientation Orientation `json:"orientation"`
	Bars        []Bar       `json:"bars"`
}

// FromYearly describes a yearly series as vertical blue bars labelled with
// their counts.
func FromYearly(title string, s aggregate.YearlySeries) BarChart {
	c := BarChart{Title: title, Orientation: Vertical, Bars: make([]Bar, 0, len(s))}
	for _, yc := range s {
		c.Bars = append(c.Bars, Bar{
			Category: strconv.Itoa(yc.Year),
			Value:    float64(yc.Count),
			Label:    strconv.Itoa(yc.Count),
			Color:    Blue,
		})
	}
	return c
}

// FromTrend describes a trend series as horizontal bars, red for increases
// and blue otherwise.
func FromTrend(title string, s aggregate.TrendSeries) BarChart {
	c := BarChart{Title: title, Orientation: Horizontal, Bars: make([]Bar, 0, len(s))}
	for _, e := range s {
		color := Blue
		if e.Direction == aggregate.Increase {
			color = Red
		}
		c.Bars = append(c.Bars, Bar{
			Category: e.Category,
			Value:    e.PercentChange,
			Label:    e.PercentLabel(),
			Color:    color,
		})
	}
	return c
}

// Categories returns the category-axis names in bar order.
func (c BarChart) Categories() []string {
	names := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		names[i] = b.Category
	}
	return names
}
