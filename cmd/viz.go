package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zalepa/crimestats/chart"
	"github.com/zalepa/crimestats/dashboard"
	"github.com/zalepa/crimestats/incident"
	"github.com/zalepa/crimestats/logger"
	"github.com/zalepa/crimestats/render"
)

// Viz implements the "viz" subcommand.
func Viz(args []string) {
	cfg, log := setup()

	fs := flag.NewFlagSet("viz", flag.ExitOnError)
	category := fs.String("category", incident.All, "category label to filter the yearly panel")
	pdfOut := fs.String("pdf", "", "write a PDF report to this path")
	imageOut := fs.String("image", "", "write one panel as an image (.png or .svg)")
	panel := fs.String("panel", "yearly", "panel written by --image: yearly or trend")
	interactive := fs.Bool("i", false, "prompt for categories on stdin")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: crimestats viz [data.csv] [flags]

Show the dashboard panels in the terminal or write them to files.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  crimestats viz Criminal_Offences_Map.csv
  crimestats viz --category Fraud
  crimestats viz --pdf report.pdf
  crimestats viz --image trend.svg --panel trend
  crimestats viz -i
`)
	}
	fs.Parse(reorderArgs(args, "i"))

	path := cfg.DataPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if *panel != "yearly" && *panel != "trend" {
		fmt.Fprintf(os.Stderr, "invalid --panel %q; valid options: yearly, trend\n", *panel)
		os.Exit(1)
	}

	ctx := context.Background()
	d, err := loadDashboard(ctx, cfg, path, log)
	if err != nil {
		fatal(ctx, log, "failed to load dataset", err)
	}

	switch {
	case *pdfOut != "":
		n, err := writeReport(*pdfOut, d)
		if err != nil {
			fatal(ctx, log, "error writing PDF", err)
		}
		fmt.Printf("wrote %s (%d pages)\n", *pdfOut, n)
	case *imageOut != "":
		if err := writeImageFile(*imageOut, *panel, d, *category); err != nil {
			fatal(ctx, log, "error writing image", err)
		}
		fmt.Printf("wrote %s\n", *imageOut)
	case *interactive:
		runInteractive(d, os.Stdin, os.Stdout)
	default:
		if state := d.Resolve(*category); !state.Filtered() && *category != incident.All {
			log.Warn(ctx, "unknown category; showing all", logger.String("category", *category))
		}
		printPanels(os.Stdout, d, d.Yearly(d.Resolve(*category)))
	}
}

// printPanels writes the yearly panel for req and the trend panel.
func printPanels(w io.Writer, d *dashboard.Dashboard, req dashboard.RenderRequest) {
	fmt.Fprintf(w, "%s - %s\n\n", dashboard.Title, dashboard.Subtitle)
	render.Terminal(w, req.Chart)
	fmt.Fprintf(w, "\nTotal: %s\n\n", render.FormatCount(req.Series.Total()))

	trend := d.Trend()
	render.Terminal(w, trend.Chart)
	for _, u := range trend.Undefined {
		fmt.Fprintf(w, "  (left out: %s, no incidents in %d)\n", u.Category, u.BaseYear)
	}
}

// runInteractive reads one category per line and redraws the yearly panel
// after each selection. An empty line or EOF ends the loop.
func runInteractive(d *dashboard.Dashboard, in io.Reader, out io.Writer) {
	ctl := dashboard.NewController(d)
	options := d.Options()

	render.Terminal(out, ctl.Current().Chart)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\nCategory [%s] (number or label, ? lists, empty quits): ", ctl.State().Label)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		answer := strings.TrimSpace(scanner.Text())
		switch answer {
		case "":
			return
		case "?":
			for i, opt := range options {
				fmt.Fprintf(out, "  %2d  %s\n", i, opt)
			}
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 0 && n < len(options) {
			answer = options[n]
		}
		req := ctl.Select(answer)
		if !req.State.Filtered() && !strings.EqualFold(answer, incident.All) {
			fmt.Fprintf(out, "unknown category %q; showing all\n", answer)
		}
		fmt.Fprintln(out)
		render.Terminal(out, req.Chart)
		fmt.Fprintf(out, "\nTotal: %s\n", render.FormatCount(req.Series.Total()))
	}
}

// buildReport collects the summary panels and one yearly chart for every
// category that has incidents.
func buildReport(d *dashboard.Dashboard) render.Report {
	r := render.Report{
		Title:    dashboard.Title,
		Subtitle: dashboard.Subtitle,
		Yearly:   d.Yearly(dashboard.Unfiltered).Chart,
		Trend:    d.Trend().Chart,
	}
	for _, label := range d.Options()[1:] {
		req := d.Yearly(d.Resolve(label))
		if len(req.Series) == 0 {
			continue
		}
		r.Categories = append(r.Categories, req.Chart)
	}
	return r
}

// writeReport writes the PDF report and returns its page count as read back
// from the file.
func writeReport(path string, d *dashboard.Dashboard) (int, error) {
	r := buildReport(d)
	if err := render.WriteReportFile(path, r); err != nil {
		return 0, err
	}
	n, err := render.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("verify %s: %w", path, err)
	}
	if n != r.Pages() {
		return n, fmt.Errorf("verify %s: %d pages written, %d expected", path, n, r.Pages())
	}
	return n, nil
}

func writeImageFile(path, panel string, d *dashboard.Dashboard, category string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	var c chart.BarChart
	if panel == "trend" {
		c = d.Trend().Chart
	} else {
		c = d.Yearly(d.Resolve(category)).Chart
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteImage(f, c, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
