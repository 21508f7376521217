package aggregate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/zalepa/crimestats/incident"
)

func rec(year int, code incident.Code) incident.Record {
	return incident.Record{Year: year, Category: code}
}

func repeat(n, year int, code incident.Code) []incident.Record {
	out := make([]incident.Record, n)
	for i := range out {
		out[i] = rec(year, code)
	}
	return out
}

func join(parts ...[]incident.Record) []incident.Record {
	var out []incident.Record
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestFilterYears(t *testing.T) {
	records := []incident.Record{rec(2014, "A"), rec(2015, "A"), rec(2016, "A"), rec(2023, "B")}
	got := FilterYears(records, UnreliableThrough)
	if len(got) != 2 || got[0].Year != 2016 || got[1].Year != 2023 {
		t.Errorf("FilterYears = %+v", got)
	}
	if got := FilterYears(records[:2], UnreliableThrough); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
	if len(records) != 4 || records[0].Year != 2014 {
		t.Error("input must not be modified")
	}
}

func TestByYear(t *testing.T) {
	records := join(
		repeat(3, 2018, "Fraud"),
		repeat(2, 2016, "Arson"),
		repeat(1, 2016, "Fraud"),
		repeat(4, 2021, "Arson"),
	)

	tests := []struct {
		name     string
		category incident.Code
		want     YearlySeries
	}{
		{"unfiltered", "", YearlySeries{{2016, 3}, {2018, 3}, {2021, 4}}},
		{"All sentinel", incident.All, YearlySeries{{2016, 3}, {2018, 3}, {2021, 4}}},
		{"fraud only", "Fraud", YearlySeries{{2016, 1}, {2018, 3}}},
		{"unknown category", "Gaming", YearlySeries{}},
	}
	for _, tt := range tests {
		got := ByYear(records, tt.category)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: ByYear = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestByYear_Properties(t *testing.T) {
	raw := join(
		repeat(5, 2014, "A"),
		repeat(7, 2022, "A"),
		repeat(2, 2017, "B"),
		repeat(9, 2016, "C"),
		repeat(1, 2019, "B"),
	)
	records := FilterYears(raw, UnreliableThrough)
	series := ByYear(records, "")

	for i := 1; i < len(series); i++ {
		if series[i].Year <= series[i-1].Year {
			t.Fatalf("years not strictly increasing: %v", series)
		}
	}
	if series.Total() != 19 {
		t.Errorf("Total = %d, want 19 (records after 2015)", series.Total())
	}
	if again := ByYear(records, ""); !reflect.DeepEqual(series, again) {
		t.Errorf("ByYear not idempotent: %v vs %v", series, again)
	}
}

func TestComputeTrend_Scenario(t *testing.T) {
	labels := incident.DefaultLabels()
	records := join(repeat(10, 2016, "Theft"), repeat(15, 2022, "Theft"))

	series, undefined := ComputeTrend(records, labels, DefaultTrendOptions())
	if len(undefined) != 0 {
		t.Fatalf("unexpected undefined trends: %v", undefined)
	}
	want := TrendSeries{{
		Category:      "Theft",
		Code:          "Theft",
		BaseCount:     10,
		CompareCount:  15,
		PercentChange: 50,
		Direction:     Increase,
	}}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("ComputeTrend = %+v, want %+v", series, want)
	}
	if got := series[0].PercentLabel(); got != "50%" {
		t.Errorf("PercentLabel = %q", got)
	}
}

func TestComputeTrend_SortedExcludedAndColored(t *testing.T) {
	labels := incident.DefaultLabels()
	records := join(
		repeat(4, 2016, "Fraud"), repeat(8, 2022, "Fraud"), // +100
		repeat(10, 2016, "Arson"), repeat(3, 2022, "Arson"), // -70
		repeat(5, 2016, "Mischief"), repeat(5, 2022, "Mischief"), // 0
		repeat(2, 2016, "Prostitution"), repeat(9, 2022, "Prostitution"),
		repeat(1, 2016, "Gaming and Betting"),
	)

	series, undefined := ComputeTrend(records, labels, DefaultTrendOptions())
	if len(undefined) != 0 {
		t.Fatalf("unexpected undefined trends: %v", undefined)
	}

	var got []string
	for _, e := range series {
		got = append(got, e.Category)
	}
	if want := []string{"Arson", "Mischief", "Fraud"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	if series[0].Direction != Decrease || series[1].Direction != Decrease || series[2].Direction != Increase {
		t.Errorf("directions = %s %s %s", series[0].Direction, series[1].Direction, series[2].Direction)
	}
	if series[0].PercentLabel() != "-70%" {
		t.Errorf("PercentLabel = %q", series[0].PercentLabel())
	}

	// Distinct categories (5) minus the two excluded ones.
	if len(series) != len(incident.Codes(records))-len(DefaultExcluded) {
		t.Errorf("len = %d", len(series))
	}
}

func TestComputeTrend_IdenticalYears(t *testing.T) {
	records := join(repeat(3, 2018, "A"), repeat(6, 2018, "B"), repeat(2, 2019, "B"))
	series, _ := ComputeTrend(records, incident.DefaultLabels(), TrendOptions{BaseYear: 2018, CompareYear: 2018})
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	for _, e := range series {
		if e.PercentChange != 0 || e.Direction != Decrease {
			t.Errorf("%s: change %v direction %s", e.Category, e.PercentChange, e.Direction)
		}
	}
}

func TestComputeTrend_ZeroBase(t *testing.T) {
	records := join(repeat(5, 2022, "Arson"), repeat(2, 2016, "Fraud"), repeat(1, 2022, "Fraud"))
	series, undefined := ComputeTrend(records, incident.DefaultLabels(), DefaultTrendOptions())

	for _, e := range series {
		if math.IsInf(e.PercentChange, 0) || math.IsNaN(e.PercentChange) {
			t.Fatalf("non-finite change for %s", e.Category)
		}
		if e.Category == "Arson" {
			t.Fatal("zero-base category must be left out of the series")
		}
	}
	if len(series) != 1 || series[0].PercentChange != -50 {
		t.Errorf("series = %+v", series)
	}

	if len(undefined) != 1 {
		t.Fatalf("undefined = %v, want one entry", undefined)
	}
	u := undefined[0]
	if u.Category != "Arson" || u.Code != "Arson" || u.BaseYear != 2016 || u.CompareCount != 5 {
		t.Errorf("undefined = %+v", u)
	}
	if !errors.Is(u, ErrUndefinedTrend) {
		t.Error("UndefinedTrendError must wrap ErrUndefinedTrend")
	}
}

func TestComputeTrend_ExcludedZeroBaseNotReported(t *testing.T) {
	records := repeat(3, 2022, "Prostitution")
	series, undefined := ComputeTrend(records, incident.DefaultLabels(), DefaultTrendOptions())
	if len(series) != 0 || len(undefined) != 0 {
		t.Errorf("series = %v undefined = %v, want both empty", series, undefined)
	}
}

func TestComputeTrend_ZeroBaseUnlabelledCode(t *testing.T) {
	records := join(repeat(2, 2016, "Fraud"), repeat(4, 2022, "Fraud"), repeat(3, 2022, "Cybercrime"))
	_, undefined := ComputeTrend(records, incident.DefaultLabels(), DefaultTrendOptions())

	if len(undefined) != 1 {
		t.Fatalf("undefined = %v, want one entry", undefined)
	}
	if u := undefined[0]; u.Category != "Cybercrime" || u.Code != "Cybercrime" {
		t.Errorf("undefined = %+v", u)
	}
}
