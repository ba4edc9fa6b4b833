// Package pipeline wires dataset, vocabulary transforms, enrichment, and
// rendering into cloud builds. Clouds build concurrently; one cloud's
// failure never stops its siblings, only caller cancellation does.
package pipeline

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/michellelius/word-visualisation/internal/cloud"
	"github.com/michellelius/word-visualisation/internal/dataset"
	"github.com/michellelius/word-visualisation/internal/lexical"
	"github.com/michellelius/word-visualisation/internal/render"
	"github.com/michellelius/word-visualisation/internal/words"
	"github.com/michellelius/word-visualisation/pkg/config"
	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
	"github.com/michellelius/word-visualisation/pkg/metrics"
)

// Report summarizes one cloud build.
type Report struct {
	Cloud    string
	Kind     string
	Surface  string
	Seed     int
	Rendered int
	Duration time.Duration
	Err      error
}

// Builder derives vocabularies from the dataset and turns cloud configs
// into rendered surfaces.
type Builder struct {
	table   *dataset.Table
	cfg     *config.Config
	client  cloud.Enricher
	rng     *rand.Rand
	rngMu   sync.Mutex
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithRand injects the shuffle source; seeded callers get reproducible
// cloud layouts.
func WithRand(rng *rand.Rand) BuilderOption {
	return func(b *Builder) {
		b.rng = rng
	}
}

// WithMetrics wires per-cloud build counters and histograms.
func WithMetrics(m *metrics.Metrics) BuilderOption {
	return func(b *Builder) {
		b.metrics = m
	}
}

// NewBuilder builds over an already loaded table.
func NewBuilder(table *dataset.Table, cfg *config.Config, client cloud.Enricher, opts ...BuilderOption) *Builder {
	b := &Builder{
		table:  table,
		cfg:    cfg,
		client: client,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Specs returns the configured clouds in config order.
func (b *Builder) Specs() []config.CloudConfig {
	return b.cfg.Clouds
}

// Spec returns the named cloud config.
func (b *Builder) Spec(name string) (config.CloudConfig, bool) {
	for _, spec := range b.cfg.Clouds {
		if spec.Name == name {
			return spec, true
		}
	}
	return config.CloudConfig{}, false
}

// Build derives the cloud's seed vocabulary from the dataset and constructs
// the variant. No remote calls happen here.
func (b *Builder) Build(spec config.CloudConfig) (cloud.Cloud, error) {
	field := b.cfg.Dataset.Field
	table := b.table
	if spec.RowContains != "" {
		table = table.FilterContains(field, spec.RowContains)
	}
	vocab := words.Extract(table.Column(field))
	if spec.VerbsOnly {
		vocab = words.Classify(vocab, lexical.Verbs().Contains)
	}
	tokens := []string(vocab)
	if spec.Shuffle {
		tokens = b.shuffle(tokens)
	}
	if spec.MaxWords > 0 {
		tokens = []string(words.BoundedUnique(tokens, spec.MaxWords))
	}

	r := b.cfg.Render
	switch spec.Kind {
	case config.CloudStatic:
		return cloud.NewStatic(spec.Name, spec.Surface, tokens, r.DefaultSize), nil
	case config.CloudSynonyms:
		return cloud.NewSynonym(spec.Name, spec.Surface, tokens, r.DefaultSize), nil
	case config.CloudFrequency:
		return cloud.NewFrequency(spec.Name, spec.Surface, tokens, r.MinSize, r.MaxSize), nil
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"cloud %s: unknown kind %q", spec.Name, spec.Kind)
	}
}

// Prepare builds the cloud and runs its enrichment, returning it ready to
// render. Serve mode uses this per request.
func (b *Builder) Prepare(ctx context.Context, spec config.CloudConfig) (cloud.Cloud, error) {
	c, err := b.Build(spec)
	if err != nil {
		return nil, err
	}
	if err := b.enrich(ctx, c, spec); err != nil {
		return nil, err
	}
	return c, nil
}

// PrepareNamed is Prepare by cloud name.
func (b *Builder) PrepareNamed(ctx context.Context, name string) (cloud.Cloud, error) {
	spec, ok := b.Spec(name)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCloudNotFound, http.StatusNotFound, "no cloud named %q", name)
	}
	return b.Prepare(ctx, spec)
}

// RunAll builds and renders every configured cloud concurrently. Each
// report carries its own error; the returned error is non-nil only when
// ctx was cancelled.
func (b *Builder) RunAll(ctx context.Context, adapter render.Adapter) ([]Report, error) {
	specs := b.cfg.Clouds
	reports := make([]Report, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		reports[i] = Report{Cloud: spec.Name, Kind: spec.Kind, Surface: spec.Surface}
		g.Go(func() error {
			start := time.Now()
			err := b.runOne(gctx, spec, adapter, &reports[i])
			reports[i].Duration = time.Since(start)
			b.observe(spec.Name, start, err)
			if err != nil {
				reports[i].Err = err
				if gctx.Err() != nil {
					return err
				}
				b.logger.Error("cloud build failed", "cloud", spec.Name, "error", err)
			}
			return nil
		})
	}
	err := g.Wait()
	return reports, err
}

func (b *Builder) runOne(ctx context.Context, spec config.CloudConfig, adapter render.Adapter, report *Report) error {
	c, err := b.Build(spec)
	if err != nil {
		return err
	}
	report.Seed = c.Len()
	if err := b.enrich(ctx, c, spec); err != nil {
		return err
	}
	report.Rendered = c.Len()
	if err := c.Render(ctx, adapter); err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.CloudWordCount.WithLabelValues(spec.Name).Observe(float64(c.Len()))
	}
	b.logger.Info("cloud built",
		"cloud", spec.Name,
		"kind", spec.Kind,
		"seed_words", report.Seed,
		"rendered_words", report.Rendered,
	)
	return nil
}

func (b *Builder) enrich(ctx context.Context, c cloud.Cloud, spec config.CloudConfig) error {
	if err := c.LoadData(ctx, b.client); err != nil {
		return err
	}
	if fc, ok := c.(*cloud.FrequencyCloud); ok {
		fc.FilterByThreshold(spec.MinWeight)
	}
	return nil
}

// shuffle serializes access to the shared rand source; serve mode builds
// clouds from concurrent requests.
func (b *Builder) shuffle(tokens []string) []string {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return words.Shuffle(tokens, b.rng)
}

func (b *Builder) observe(name string, start time.Time, err error) {
	if b.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	b.metrics.CloudsBuiltTotal.WithLabelValues(name, status).Inc()
	b.metrics.CloudBuildDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
