// Package dashboard turns the loaded dataset and a category selection into
// chart data for the two dashboard panels.
package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zalepa/crimestats/aggregate"
	"github.com/zalepa/crimestats/chart"
	"github.com/zalepa/crimestats/incident"
)

// Panel titles.
const (
	Title       = "Crime Records"
	Subtitle    = "Ottawa - Canada"
	YearlyTitle = "Number of crimes per year"
)

// State is the category filter. A state without a category is unfiltered.
type State struct {
	Category incident.Code `json:"category,omitempty"`
	Label    string        `json:"label"`
}

// Unfiltered is the initial state.
var Unfiltered = State{Label: incident.All}

// Filtered reports whether the state restricts to one category.
func (s State) Filtered() bool { return s.Category != "" }

// RenderRequest carries a recomputed yearly series and its chart.
type RenderRequest struct {
	ID     uuid.UUID              `json:"id"`
	State  State                  `json:"state"`
	Series aggregate.YearlySeries `json:"series"`
	Chart  chart.BarChart         `json:"chart"`
}

// TrendPanel is the category trend series and its chart.
type TrendPanel struct {
	Series    aggregate.TrendSeries            `json:"series"`
	Undefined []*aggregate.UndefinedTrendError `json:"undefined"`
	Chart     chart.BarChart                   `json:"chart"`
}

// Dashboard holds the read-only dataset. It is safe for concurrent use.
type Dashboard struct {
	records     []incident.Record
	labels      *incident.Labels
	trend       aggregate.TrendOptions
	fingerprint string
}

// New builds a Dashboard over records, which must already be year-filtered.
// The slice is retained and must not be modified afterwards.
func New(records []incident.Record, labels *incident.Labels, trend aggregate.TrendOptions) *Dashboard {
	return &Dashboard{
		records:     records,
		labels:      labels,
		trend:       trend,
		fingerprint: fingerprint(records, labels, trend),
	}
}

// Fingerprint identifies the per-category yearly counts, label table and
// trend options the dashboard was built from. Dashboards that would draw
// different charts have different fingerprints.
func (d *Dashboard) Fingerprint() string { return d.fingerprint }

func fingerprint(records []incident.Record, labels *incident.Labels, trend aggregate.TrendOptions) string {
	h := xxhash.New()
	buf := make([]byte, 0, 64)
	field := func(s string) {
		buf = append(buf[:0], s...)
		buf = append(buf, 0)
		h.Write(buf)
	}
	num := func(n int) {
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, 0)
		h.Write(buf)
	}

	num(trend.BaseYear)
	num(trend.CompareYear)
	num(len(trend.Excluded))
	for _, l := range trend.Excluded {
		field(l)
	}
	for _, e := range labels.Entries() {
		field(string(e.Code))
		field(e.Label)
	}
	num(len(records))
	counts := make(map[incident.Code]map[int]int)
	for _, r := range records {
		if counts[r.Category] == nil {
			counts[r.Category] = make(map[int]int)
		}
		counts[r.Category][r.Year]++
	}
	for _, code := range incident.Codes(records) {
		field(string(code))
		years := make([]int, 0, len(counts[code]))
		for y := range counts[code] {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			num(y)
			num(counts[code][y])
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Records returns the number of records in the dataset.
func (d *Dashboard) Records() int { return len(d.records) }

// Labels returns the label table.
func (d *Dashboard) Labels() *incident.Labels { return d.labels }

// Options returns the selectable filter values, "All" first.
func (d *Dashboard) Options() []string { return d.labels.Options() }

// TrendOptions returns the reference years and exclusions in use.
func (d *Dashboard) TrendOptions() aggregate.TrendOptions { return d.trend }

// TrendTitle is the heading of the trend panel.
func (d *Dashboard) TrendTitle() string {
	return fmt.Sprintf("Evolution of crimes - %d to %d", d.trend.BaseYear, d.trend.CompareYear)
}

// Resolve maps a selection to a state. Empty, "All" and unknown labels all
// resolve to Unfiltered.
func (d *Dashboard) Resolve(selection string) State {
	if selection == "" || selection == incident.All {
		return Unfiltered
	}
	code, ok := d.labels.Code(selection)
	if !ok {
		return Unfiltered
	}
	return State{Category: code, Label: selection}
}

// Yearly recomputes the yearly series for a state.
func (d *Dashboard) Yearly(s State) RenderRequest {
	series := aggregate.ByYear(d.records, s.Category)
	title := YearlyTitle
	if s.Filtered() {
		title += " - " + s.Label
	}
	return RenderRequest{
		ID:     uuid.New(),
		State:  s,
		Series: series,
		Chart:  chart.FromYearly(title, series),
	}
}

// Trend recomputes the category trend panel.
func (d *Dashboard) Trend() TrendPanel {
	series, undefined := aggregate.ComputeTrend(d.records, d.labels, d.trend)
	return TrendPanel{
		Series:    series,
		Undefined: undefined,
		Chart:     chart.FromTrend(d.TrendTitle(), series),
	}
}
