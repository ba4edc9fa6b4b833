package cloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/michellelius/word-visualisation/internal/render"
	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
)

// FrequencyCloud weighs each seed word by its corpus frequency score and
// sizes it along a linear scale between minSize and maxSize.
type FrequencyCloud struct {
	name    string
	surface string
	seed    []string
	words   []WeightedWord
	minSize float64
	maxSize float64
	logger  *slog.Logger
}

// NewFrequency builds a frequency cloud over the given seed words.
func NewFrequency(name, surface string, seed []string, minSize, maxSize float64) *FrequencyCloud {
	if surface == "" {
		surface = name
	}
	if minSize <= 0 {
		minSize = 12
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	return &FrequencyCloud{
		name:    name,
		surface: surface,
		seed:    seed,
		minSize: minSize,
		maxSize: maxSize,
		logger:  slog.Default().With("component", "cloud", "cloud", name),
	}
}

func (c *FrequencyCloud) Name() string { return c.name }

func (c *FrequencyCloud) Surface() string { return c.surface }

// Len counts the renderable words, or the seed before scoring.
func (c *FrequencyCloud) Len() int {
	if c.words == nil {
		return len(c.seed)
	}
	return len(c.words)
}

// Words returns the weighted vocabulary in seed order.
func (c *FrequencyCloud) Words() []WeightedWord { return c.words }

// LoadData scores every seed word. Words the service could not score come
// back weighted zero and are typically dropped by FilterByThreshold.
func (c *FrequencyCloud) LoadData(ctx context.Context, client Enricher) error {
	index, err := client.Frequencies(ctx, c.seed)
	if err != nil {
		return fmt.Errorf("scoring cloud %s: %w", c.name, err)
	}
	weighted := make([]WeightedWord, 0, len(c.seed))
	for _, w := range c.seed {
		weighted = append(weighted, WeightedWord{Text: w, Weight: index[w]})
	}
	c.words = weighted
	return nil
}

// FilterByThreshold drops words weighing less than min.
func (c *FrequencyCloud) FilterByThreshold(min float64) {
	before := len(c.words)
	c.words = Threshold(c.words, min)
	if dropped := before - len(c.words); dropped > 0 {
		c.logger.Debug("threshold applied", "min_weight", min, "dropped", dropped, "kept", len(c.words))
	}
}

// Render scales the surviving words and hands them to the adapter. An
// empty cloud is a logged no-op; a flat weight range renders everything at
// the minimum size.
func (c *FrequencyCloud) Render(ctx context.Context, adapter render.Adapter) error {
	items, err := scaleItems(c.words, c.minSize, c.maxSize)
	switch {
	case errors.Is(err, apperrors.ErrEmptyInput):
		c.logger.Warn("no words above threshold, skipping surface", "surface", c.surface)
		return nil
	case errors.Is(err, apperrors.ErrDegenerateRange):
		c.logger.Debug("flat weight range, rendering at minimum size", "surface", c.surface)
	case err != nil:
		return err
	}
	return adapter.Render(ctx, c.surface, items)
}
