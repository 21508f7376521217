package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zalepa/crimestats/incident"
	"github.com/zalepa/crimestats/logger"
	"github.com/zalepa/crimestats/render"
)

const downloadTimeout = 5 * time.Minute

// Download implements the "download" subcommand: fetch the criminal offences
// CSV export and check that it loads before putting it in place.
func Download(args []string) {
	cfg, log := setup()

	fs := flag.NewFlagSet("download", flag.ExitOnError)
	url := fs.String("url", cfg.DataURL, "URL of the criminal offences CSV export")
	dir := fs.String("dir", ".", "output directory")
	name := fs.String("name", filepath.Base(cfg.DataPath), "output file name")
	force := fs.Bool("force", false, "overwrite an existing file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crimestats download [-url URL] [-dir path] [-force]\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *url == "" {
		fmt.Fprintf(os.Stderr, "no dataset URL; pass --url or set data_url\n")
		os.Exit(1)
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*dir, *name)
	if _, err := os.Stat(outPath); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "skip %s (already exists; use --force to replace)\n", outPath)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	log.Info(ctx, "downloading dataset", logger.String("url", *url), logger.String("path", outPath))
	n, err := downloadDataset(ctx, http.DefaultClient, *url, outPath)
	if err != nil {
		fatal(ctx, log, "download failed", err)
	}
	fmt.Fprintf(os.Stderr, "Done: %s (%s records)\n", outPath, render.FormatCount(n))
}

// downloadDataset fetches url into a temporary file next to dest, loads it to
// make sure it is a usable dataset and renames it over dest. It returns the
// number of records in the file.
func downloadDataset(ctx context.Context, client *http.Client, url, dest string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*.csv")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := downloadFile(ctx, client, url, tmp); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	records, err := incident.LoadFile(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("downloaded file is not a valid dataset: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return 0, err
	}
	return len(records), nil
}

func downloadFile(ctx context.Context, client *http.Client, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}
