package cmd

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zalepa/crimestats/cache"
	"github.com/zalepa/crimestats/chart"
	"github.com/zalepa/crimestats/config"
	"github.com/zalepa/crimestats/dashboard"
	"github.com/zalepa/crimestats/logger"
	"github.com/zalepa/crimestats/metrics"
	"github.com/zalepa/crimestats/render"
)

//go:embed web.html
var htmlContent embed.FS

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 15 * time.Second
)

type metadata struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	YearlyTitle string   `json:"yearlyTitle"`
	TrendTitle  string   `json:"trendTitle"`
	Options     []string `json:"options"`
	BaseYear    int      `json:"baseYear"`
	CompareYear int      `json:"compareYear"`
	Excluded    []string `json:"excluded"`
	Records     int      `json:"records"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Web implements the "web" subcommand.
func Web(args []string) {
	cfg, log := setup()

	fs := flag.NewFlagSet("web", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "HTTP listen address")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crimestats web [data.csv] [--addr :8050]\n\nStart the interactive crime dashboard.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(reorderArgs(args))

	path := cfg.DataPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := loadDashboard(ctx, cfg, path, log)
	if err != nil {
		fatal(ctx, log, "failed to load dataset", err)
	}

	charts := newChartCache(ctx, cfg, log)
	defer charts.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newWebHandler(d, charts, log.Named("web")),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(ctx, "serving dashboard", logger.String("url", "http://localhost"+*addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		fatal(ctx, log, "server error", err)
	}
	log.Info(ctx, "server stopped")
}

// newChartCache uses Redis when configured and reachable, otherwise an
// in-process LRU.
func newChartCache(ctx context.Context, cfg *config.Config, log logger.Logger) cache.Cache {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cfg.RedisURL != "" {
		r, err := cache.NewRedis(ctx, cfg.RedisURL, ttl)
		if err == nil {
			log.Info(ctx, "using redis chart cache")
			return r
		}
		log.Warn(ctx, "redis unavailable; using in-process chart cache", logger.Error(err))
	}
	return cache.NewLRU(cfg.CacheSize, ttl)
}

type webServer struct {
	d      *dashboard.Dashboard
	charts cache.Cache
	log    logger.Logger
}

func newWebHandler(d *dashboard.Dashboard, charts cache.Cache, log logger.Logger) http.Handler {
	s := &webServer{d: d, charts: charts, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", metricsMiddleware(s.handleHealth, "healthz"))
	mux.HandleFunc("GET /api/metadata", metricsMiddleware(s.handleMetadata, "metadata"))
	mux.HandleFunc("GET /api/yearly", metricsMiddleware(s.handleYearly, "yearly"))
	mux.HandleFunc("GET /api/trend", metricsMiddleware(s.handleTrend, "trend"))
	mux.HandleFunc("GET /chart/{name}", metricsMiddleware(s.handleChart, "chart"))
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

func (s *webServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, _ := htmlContent.ReadFile("web.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *webServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": s.d.Records()})
}

func (s *webServer) handleMetadata(w http.ResponseWriter, r *http.Request) {
	opts := s.d.TrendOptions()
	writeJSON(w, http.StatusOK, metadata{
		Title:       dashboard.Title,
		Subtitle:    dashboard.Subtitle,
		YearlyTitle: dashboard.YearlyTitle,
		TrendTitle:  s.d.TrendTitle(),
		Options:     s.d.Options(),
		BaseYear:    opts.BaseYear,
		CompareYear: opts.CompareYear,
		Excluded:    opts.Excluded,
		Records:     s.d.Records(),
	})
}

func (s *webServer) handleYearly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.yearly(r))
}

func (s *webServer) handleTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trend())
}

// handleChart serves /chart/yearly.svg?category=... and /chart/trend.png.
func (s *webServer) handleChart(w http.ResponseWriter, r *http.Request) {
	panel, format, ok := strings.Cut(r.PathValue("name"), ".")
	contentType, known := render.ContentTypes[format]
	if !ok || !known || (panel != "yearly" && panel != "trend") {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("unknown chart %q", r.PathValue("name")))
		return
	}

	key := s.d.Fingerprint() + ":" + panel + ":" + format
	if panel == "yearly" {
		key += ":" + string(s.d.Resolve(r.URL.Query().Get("category")).Category)
	}

	ctx := r.Context()
	data, hit, err := s.charts.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "chart cache read failed", logger.String("key", key), logger.Error(err))
	}
	metrics.RecordCacheLookup(hit)

	if !hit {
		var c chart.BarChart
		if panel == "yearly" {
			c = s.yearly(r).Chart
		} else {
			c = s.trend().Chart
		}
		var buf bytes.Buffer
		if err := render.WriteImage(&buf, c, format); err != nil {
			s.log.Error(ctx, "chart render failed", logger.String("key", key), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "render_failed", nil)
			return
		}
		data = buf.Bytes()
		if err := s.charts.Set(ctx, key, data); err != nil {
			s.log.Warn(ctx, "chart cache write failed", logger.String("key", key), logger.Error(err))
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *webServer) yearly(r *http.Request) dashboard.RenderRequest {
	state := s.d.Resolve(r.URL.Query().Get("category"))
	metrics.RecordSelection(state.Label)

	start := time.Now()
	req := s.d.Yearly(state)
	metrics.RecordAggregation("yearly", float64(time.Since(start).Microseconds())/1000)
	s.log.Debug(r.Context(), "yearly panel recomputed",
		logger.String("request_id", req.ID.String()),
		logger.String("category", state.Label),
		logger.Int("years", len(req.Series)))
	return req
}

func (s *webServer) trend() dashboard.TrendPanel {
	start := time.Now()
	panel := s.d.Trend()
	metrics.RecordAggregation("trend", float64(time.Since(start).Microseconds())/1000)
	return panel
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// metricsMiddleware records request counts and latency per endpoint.
func metricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		ms := float64(time.Since(start).Microseconds()) / 1000
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(wrapped.statusCode), ms)
	}
}

// responseWriter captures the status code written by a handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
