package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/zalepa/crimestats/dashboard"
)

const (
	yearlySheet = "Yearly"
	trendSheet  = "Trend"
)

// Export implements the "export" subcommand.
func Export(args []string) {
	cfg, log := setup()

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "crimestats.xlsx", "output workbook path")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crimestats export [data.csv] [-o crimestats.xlsx]\n\nWrite the yearly counts and the category trend to an Excel workbook.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(reorderArgs(args))

	path := cfg.DataPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	ctx := context.Background()
	d, err := loadDashboard(ctx, cfg, path, log)
	if err != nil {
		fatal(ctx, log, "failed to load dataset", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		fatal(ctx, log, "error creating workbook", err)
	}
	if err := writeWorkbook(f, d); err != nil {
		f.Close()
		fatal(ctx, log, "error writing workbook", err)
	}
	if err := f.Close(); err != nil {
		fatal(ctx, log, "error writing workbook", err)
	}
	fmt.Printf("wrote %s\n", *out)
}

// writeWorkbook writes two sheets: yearly counts with one column per category
// label, and the trend series followed by the categories left out of it.
func writeWorkbook(w io.Writer, d *dashboard.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", yearlySheet); err != nil {
		return err
	}
	if err := writeYearlySheet(f, d); err != nil {
		return fmt.Errorf("yearly sheet: %w", err)
	}
	if _, err := f.NewSheet(trendSheet); err != nil {
		return err
	}
	if err := writeTrendSheet(f, d); err != nil {
		return fmt.Errorf("trend sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func writeYearlySheet(f *excelize.File, d *dashboard.Dashboard) error {
	labels := d.Options()
	header := append([]any{"Year"}, toAny(labels)...)
	if err := f.SetSheetRow(yearlySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetColWidth(yearlySheet, "A", "A", 8); err != nil {
		return err
	}

	// Column 0 is All; the yearly series for All contains every year.
	counts := make([]map[int]int, len(labels))
	for i, label := range labels {
		counts[i] = make(map[int]int)
		for _, yc := range d.Yearly(d.Resolve(label)).Series {
			counts[i][yc.Year] = yc.Count
		}
	}

	for r, yc := range d.Yearly(dashboard.Unfiltered).Series {
		row := []any{yc.Year}
		for i := range labels {
			row = append(row, counts[i][yc.Year])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(yearlySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTrendSheet(f *excelize.File, d *dashboard.Dashboard) error {
	opts := d.TrendOptions()
	header := []any{"Category", "Code", opts.BaseYear, opts.CompareYear, "Change (%)", "Direction"}
	if err := f.SetSheetRow(trendSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetColWidth(trendSheet, "A", "B", 28); err != nil {
		return err
	}

	trend := d.Trend()
	row := 2
	for _, e := range trend.Series {
		values := []any{e.Category, string(e.Code), e.BaseCount, e.CompareCount, round1(e.PercentChange), string(e.Direction)}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}
	for _, u := range trend.Undefined {
		values := []any{u.Category, string(u.Code), 0, u.CompareCount, "n/a", "undefined"}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(trendSheet, cell, &values)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
