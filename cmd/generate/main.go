// Command generate runs the whole pipeline once and writes every
// configured cloud to the output directory.
//
// Structured logs go to stderr; the run report owns stdout. A non-zero
// exit means no cloud could be rendered.
//
// Usage:
//
//	go run ./cmd/generate [-config configs/development.yaml] [-seed 42]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/michellelius/word-visualisation/internal/dataset"
	"github.com/michellelius/word-visualisation/internal/enrich"
	"github.com/michellelius/word-visualisation/internal/pipeline"
	"github.com/michellelius/word-visualisation/internal/render"
	"github.com/michellelius/word-visualisation/pkg/config"
	"github.com/michellelius/word-visualisation/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	datasetPath := flag.String("dataset", "", "CSV dataset path, overrides config")
	outDir := flag.String("out", "", "output directory, overrides config")
	format := flag.String("format", "", "svg, json, or both, overrides config")
	clouds := flag.String("clouds", "", "comma-separated cloud names to build, default all")
	seed := flag.Int64("seed", 0, "random seed for shuffled clouds, 0 means time-based")
	flag.Parse()

	logger.SetupWriter(os.Stderr, "info", "text")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	if *outDir != "" {
		cfg.Render.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Render.Format = *format
	}
	if *clouds != "" {
		cfg.Clouds = selectClouds(cfg.Clouds, *clouds)
	}
	logger.SetupWriter(os.Stderr, cfg.Logging.Level, "text")
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	table, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	adapter, err := buildAdapter(cfg.Render)
	if err != nil {
		slog.Error("failed to prepare output", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	client := enrich.New(cfg.Synonyms, cfg.Frequency)
	builder := pipeline.NewBuilder(table, cfg, client,
		pipeline.WithRand(rand.New(rand.NewSource(rngSeed))))

	fmt.Println("=== Word Cloud Generation ===")
	fmt.Printf("Dataset: %s (%d rows)\n", cfg.Dataset.Path, table.Len())
	fmt.Printf("Output:  %s (%s)\n", cfg.Render.OutputDir, cfg.Render.Format)
	fmt.Printf("Clouds:  %d configured\n", len(cfg.Clouds))
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	reports, runErr := builder.RunAll(ctx, adapter)
	printReport(reports, time.Since(start))

	if runErr != nil {
		slog.Error("generation interrupted", "error", runErr)
		os.Exit(1)
	}
	rendered := 0
	for _, rep := range reports {
		if rep.Err == nil {
			rendered++
		}
	}
	if rendered == 0 && len(reports) > 0 {
		fmt.Println()
		fmt.Println("WARNING: No clouds rendered. Are the word services reachable?")
		os.Exit(1)
	}
}

func selectClouds(all []config.CloudConfig, names string) []config.CloudConfig {
	wanted := strings.Split(names, ",")
	for i := range wanted {
		wanted[i] = strings.TrimSpace(wanted[i])
	}
	selected := make([]config.CloudConfig, 0, len(wanted))
	for _, spec := range all {
		if slices.Contains(wanted, spec.Name) {
			selected = append(selected, spec)
		}
	}
	return selected
}

func buildAdapter(r config.RenderConfig) (render.Adapter, error) {
	opts := render.SVGOptions{
		Width:      r.Width,
		Height:     r.Height,
		Background: r.Background,
		FontFamily: r.FontFamily,
		Palette:    r.Palette,
	}
	switch r.Format {
	case config.FormatBoth:
		svgDir, err := render.NewDirectory(r.OutputDir, render.FormatSVG, opts)
		if err != nil {
			return nil, err
		}
		jsonDir, err := render.NewDirectory(r.OutputDir, render.FormatJSON, opts)
		if err != nil {
			return nil, err
		}
		return render.Multi{svgDir, jsonDir}, nil
	case config.FormatJSON:
		return render.NewDirectory(r.OutputDir, render.FormatJSON, opts)
	default:
		return render.NewDirectory(r.OutputDir, render.FormatSVG, opts)
	}
}

func printReport(reports []pipeline.Report, elapsed time.Duration) {
	fmt.Println("=== Results ===")
	rendered := 0
	for _, rep := range reports {
		status := "ok"
		if rep.Err != nil {
			status = rep.Err.Error()
		} else {
			rendered++
		}
		fmt.Printf("  %-12s %-10s words %3d -> %3d  %8s  %s\n",
			rep.Cloud, rep.Kind, rep.Seed, rep.Rendered,
			rep.Duration.Round(time.Millisecond), status)
	}
	fmt.Println()
	fmt.Printf("Rendered %d/%d clouds in %s\n", rendered, len(reports), elapsed.Round(time.Millisecond))
}
