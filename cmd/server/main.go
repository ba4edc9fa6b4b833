// Command server exposes the word clouds over HTTP.
//
// Clouds are built on demand: each render request derives the vocabulary
// from the dataset loaded at startup, enriches it through the word
// services, and streams back SVG or JSON. Health probes and a Prometheus
// scrape endpoint run alongside.
//
// Usage:
//
//	go run ./cmd/server [-config configs/development.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/michellelius/word-visualisation/internal/api"
	"github.com/michellelius/word-visualisation/internal/dataset"
	"github.com/michellelius/word-visualisation/internal/enrich"
	"github.com/michellelius/word-visualisation/internal/pipeline"
	"github.com/michellelius/word-visualisation/internal/render"
	"github.com/michellelius/word-visualisation/pkg/config"
	"github.com/michellelius/word-visualisation/pkg/health"
	"github.com/michellelius/word-visualisation/pkg/logger"
	"github.com/michellelius/word-visualisation/pkg/metrics"
	"github.com/michellelius/word-visualisation/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("starting word cloud service",
		"port", cfg.Server.Port,
		"dataset", cfg.Dataset.Path,
		"clouds", len(cfg.Clouds),
	)

	table, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded", "rows", table.Len(), "fields", len(table.Fields()))

	m := metrics.New()
	client := enrich.New(cfg.Synonyms, cfg.Frequency, enrich.WithMetrics(m))
	builder := pipeline.NewBuilder(table, cfg, client, pipeline.WithMetrics(m))

	checker := health.NewChecker()
	checker.Register("dataset", func(ctx context.Context) health.ComponentHealth {
		if table.Len() > 0 {
			return health.Up(fmt.Sprintf("%d rows", table.Len()))
		}
		return health.Down("dataset is empty")
	})
	checker.Register("synonym_service", func(ctx context.Context) health.ComponentHealth {
		if cfg.Synonyms.APIKey == "" {
			return health.Degraded("no api key configured")
		}
		return health.Up("")
	})

	svgOpts := render.SVGOptions{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Background: cfg.Render.Background,
		FontFamily: cfg.Render.FontFamily,
		Palette:    cfg.Render.Palette,
	}
	h := api.New(builder, svgOpts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/clouds", h.ListClouds)
	mux.HandleFunc("GET /api/v1/clouds/{name}", h.RenderCloud)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdownMetrics(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("word cloud service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("word cloud service stopped")
}
