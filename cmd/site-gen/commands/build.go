package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/logfields"
	"github.com/toddself/site-gen/internal/markdown"
	"github.com/toddself/site-gen/internal/metrics"
	"github.com/toddself/site-gen/internal/output"
	"github.com/toddself/site-gen/internal/site"
	"github.com/toddself/site-gen/internal/templates"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source      string `arg:"" optional:"" help:"Directory where your markdown entries live (overrides config)"`
	Destination string `arg:"" optional:"" help:"Destination directory for the generated site (overrides config)"`

	Entries     int    `short:"e" help:"How many entries on each index page"`
	TemplateDir string `short:"t" name:"template-dir" help:"Location of page template overrides"`
	Truncate    int    `help:"Truncate entry summaries to this many characters"`
	Concurrency int    `help:"Entry render workers (0 = automatic)"`
	SiteURL     string `name:"site-url" help:"Base URL of the published site (overrides config)"`
	SiteTitle   string `name:"site-title" help:"Site title (overrides config)"`
	ReportFile  string `name:"report-file" help:"Write a JSON build report to this path"`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address during the build"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		// A missing config file is fine when the command line names both
		// directories; anything else is a real error.
		if !errors.Is(err, config.ErrNotFound) || b.Source == "" || b.Destination == "" {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}
	applyOverrides(cfg, b)
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine, err := templates.NewEngine(cfg.TemplateDir)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if b.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
		srv := &http.Server{Addr: b.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(serveErr))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		slog.Info("Serving metrics", logfields.URL(b.MetricsAddr+"/metrics"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder := site.NewBuilder(cfg, markdown.NewRenderer(), engine, output.NewDirWriter(cfg.Destination)).
		SetRecorder(recorder)

	report, buildErr := builder.Build(ctx)

	if b.ReportFile != "" && report != nil {
		if persistErr := report.Persist(b.ReportFile); persistErr != nil {
			slog.Warn("Failed to persist build report", logfields.Path(b.ReportFile), logfields.Error(persistErr))
		}
	}
	if report != nil {
		fmt.Println(report.Summary())
	}
	if buildErr != nil {
		return buildErr
	}

	fmt.Println("Blog built!")
	return nil
}

// applyOverrides layers the command-line values over the configuration;
// unset flags leave the config untouched.
func applyOverrides(cfg *config.Config, b *BuildCmd) {
	if b.Source != "" {
		cfg.Source = b.Source
	}
	if b.Destination != "" {
		cfg.Destination = b.Destination
	}
	if b.TemplateDir != "" {
		cfg.TemplateDir = b.TemplateDir
	}
	if b.Entries > 0 {
		cfg.EntriesPerPage = b.Entries
	}
	if b.Truncate > 0 {
		cfg.TruncateLength = b.Truncate
	}
	if b.Concurrency > 0 {
		cfg.Concurrency = b.Concurrency
	}
	if b.SiteURL != "" {
		cfg.Site.URL = b.SiteURL
	}
	if b.SiteTitle != "" {
		cfg.Site.Title = b.SiteTitle
	}
}
