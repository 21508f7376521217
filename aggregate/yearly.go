package aggregate

import (
	"sort"

	"github.com/zalepa/crimestats/incident"
)

// YearCount is the number of incidents in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// YearlySeries is sorted ascending by year. Years without incidents are
// absent rather than zero.
type YearlySeries []YearCount

// ByYear counts records per year. An empty category or incident.All counts
// every record; otherwise only records of that category are counted.
func ByYear(records []incident.Record, category incident.Code) YearlySeries {
	all := category == "" || category == incident.All
	counts := make(map[int]int)
	for _, r := range records {
		if all || r.Category == category {
			counts[r.Year]++
		}
	}

	series := make(YearlySeries, 0, len(counts))
	for year, n := range counts {
		series = append(series, YearCount{Year: year, Count: n})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Year < series[j].Year
	})
	return series
}

// Total returns the sum of all counts.
func (s YearlySeries) Total() int {
	total := 0
	for _, yc := range s {
		total += yc.Count
	}
	return total
}
