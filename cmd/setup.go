package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zalepa/crimestats/aggregate"
	"github.com/zalepa/crimestats/config"
	"github.com/zalepa/crimestats/dashboard"
	"github.com/zalepa/crimestats/incident"
	"github.com/zalepa/crimestats/logger"
	"github.com/zalepa/crimestats/metrics"
)

// setup loads configuration and the logger shared by every subcommand.
func setup() (*config.Config, logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(os.Stderr)
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(context.Background(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	return cfg, log
}

// loadDashboard reads the dataset at path, drops unreliable years and builds
// the dashboard. Categories without a defined trend are logged.
func loadDashboard(ctx context.Context, cfg *config.Config, path string, log logger.Logger) (*dashboard.Dashboard, error) {
	labels, err := cfg.Labels()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := incident.LoadFile(path)
	if err != nil {
		return nil, err
	}
	records := aggregate.FilterYears(raw, cfg.UnreliableThrough)
	metrics.SetRecords(len(records), len(raw)-len(records))
	log.Info(ctx, "dataset loaded",
		logger.String("path", path),
		logger.Int("records", len(records)),
		logger.Int("discarded", len(raw)-len(records)),
		logger.Any("elapsed", time.Since(start)))

	d := dashboard.New(records, labels, cfg.TrendOptions())
	undefined := d.Trend().Undefined
	for _, u := range undefined {
		log.Warn(ctx, "category left out of trend", logger.String("category", u.Category), logger.Error(u))
	}
	metrics.SetUndefinedTrends(len(undefined))
	return d, nil
}

func fatal(ctx context.Context, log logger.Logger, msg string, err error) {
	log.Error(ctx, msg, logger.Error(err))
	os.Exit(1)
}
