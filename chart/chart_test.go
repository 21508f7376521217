package chart

import (
	"reflect"
	"testing"

	"github.com/zalepa/crimestats/aggregate"
)

func TestFromYearly(t *testing.T) {
	c := FromYearly("Number of crimes per year", aggregate.YearlySeries{{Year: 2016, Count: 1200}, {Year: 2017, Count: 980}})
	want := BarChart{
		Title:       "Number of crimes per year",
		Orientation: Vertical,
		Bars: []Bar{
			{Category: "2016", Value: 1200, Label: "1200", Color: Blue},
			{Category: "2017", Value: 980, Label: "980", Color: Blue},
		},
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("FromYearly = %+v, want %+v", c, want)
	}
}

func TestFromTrend(t *testing.T) {
	s := aggregate.TrendSeries{
		{Category: "Arson", PercentChange: -12.7, Direction: aggregate.Decrease},
		{Category: "Fraud", PercentChange: 0, Direction: aggregate.Decrease},
		{Category: "Mischief", PercentChange: 33.9, Direction: aggregate.Increase},
	}
	c := FromTrend("Evolution", s)
	if c.Orientation != Horizontal {
		t.Errorf("orientation = %s", c.Orientation)
	}
	wantColors := []string{Blue, Blue, Red}
	wantLabels := []string{"-12%", "0%", "33%"}
	for i, b := range c.Bars {
		if b.Color != wantColors[i] || b.Label != wantLabels[i] {
			t.Errorf("bar %d = %+v", i, b)
		}
	}
	if got := c.Categories(); !reflect.DeepEqual(got, []string{"Arson", "Fraud", "Mischief"}) {
		t.Errorf("Categories = %v", got)
	}
}
