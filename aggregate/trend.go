package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zalepa/crimestats/incident"
)

// Reference years and sparse categories used by the dashboard.
const (
	DefaultBaseYear    = 2016
	DefaultCompareYear = 2022
)

// DefaultExcluded lists labels with too few incidents for a meaningful trend.
var DefaultExcluded = []string{"Prostitution", "Gaming"}

// ErrUndefinedTrend is wrapped by UndefinedTrendError.
var ErrUndefinedTrend = errors.New("undefined trend")

// UndefinedTrendError reports a category left out of a trend because it had
// no incidents in the base year.
type UndefinedTrendError struct {
	Category     string        `json:"category"`
	Code         incident.Code `json:"code"`
	BaseYear     int           `json:"baseYear"`
	CompareCount int           `json:"compareCount"`
}

func (e *UndefinedTrendError) Error() string {
	return fmt.Sprintf("%s: no incidents in %d (%d in comparison year)", e.Category, e.BaseYear, e.CompareCount)
}

func (e *UndefinedTrendError) Unwrap() error { return ErrUndefinedTrend }

// Direction tells whether a category went up or down.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// TrendEntry is the change in incident count for one category.
type TrendEntry struct {
	Category      string        `json:"category"`
	Code          incident.Code `json:"code"`
	BaseCount     int           `json:"baseCount"`
	CompareCount  int           `json:"compareCount"`
	PercentChange float64       `json:"percentChange"`
	Direction     Direction     `json:"direction"`
}

// PercentLabel formats the change as the dashboard prints it: the integer
// part, truncated toward zero, followed by a percent sign.
func (e TrendEntry) PercentLabel() string {
	return fmt.Sprintf("%d%%", int(e.PercentChange))
}

// TrendSeries is sorted ascending by PercentChange.
type TrendSeries []TrendEntry

// TrendOptions selects the years compared and the labels left out.
type TrendOptions struct {
	BaseYear    int
	CompareYear int
	Excluded    []string
}

// DefaultTrendOptions compares 2016 with 2022 without the sparse categories.
func DefaultTrendOptions() TrendOptions {
	return TrendOptions{
		BaseYear:    DefaultBaseYear,
		CompareYear: DefaultCompareYear,
		Excluded:    append([]string(nil), DefaultExcluded...),
	}
}

// ComputeTrend computes the percentage change between the base and comparison
// years for every category observed in records. Categories with no incidents
// in the base year have no defined change; they are left out of the series and
// returned as UndefinedTrendErrors instead.
func ComputeTrend(records []incident.Record, labels *incident.Labels, opts TrendOptions) (TrendSeries, []*UndefinedTrendError) {
	excluded := make(map[string]bool, len(opts.Excluded))
	for _, l := range opts.Excluded {
		excluded[l] = true
	}

	type pair struct{ base, compare int }
	counts := make(map[incident.Code]*pair)
	for _, r := range records {
		p, ok := counts[r.Category]
		if !ok {
			p = &pair{}
			counts[r.Category] = p
		}
		if r.Year == opts.BaseYear {
			p.base++
		}
		if r.Year == opts.CompareYear {
			p.compare++
		}
	}

	var series TrendSeries
	var undefined []*UndefinedTrendError
	for _, code := range incident.Codes(records) {
		label := labels.Label(code)
		if excluded[label] {
			continue
		}
		p := counts[code]
		if p.base == 0 {
			undefined = append(undefined, &UndefinedTrendError{
				Category:     label,
				Code:         code,
				BaseYear:     opts.BaseYear,
				CompareCount: p.compare,
			})
			continue
		}
		change := float64(p.compare-p.base) * 100 / float64(p.base)
		dir := Decrease
		if change > 0 {
			dir = Increase
		}
		series = append(series, TrendEntry{
			Category:      label,
			Code:          code,
			BaseCount:     p.base,
			CompareCount:  p.compare,
			PercentChange: change,
			Direction:     dir,
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		if series[i].PercentChange != series[j].PercentChange {
			return series[i].PercentChange < series[j].PercentChange
		}
		return series[i].Category < series[j].Category
	})
	return series, undefined
}
