// Package cloud models the word clouds themselves. Every cloud follows the
// same two-phase contract: LoadData pulls whatever remote enrichment the
// variant needs, Render hands the finished word list to an adapter. The
// variants differ only in how words gain weight.
package cloud

import (
	"context"

	"github.com/michellelius/word-visualisation/internal/enrich"
	"github.com/michellelius/word-visualisation/internal/render"
	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
)

// Enricher is the slice of the enrichment client the clouds consume.
type Enricher interface {
	Synonyms(ctx context.Context, words []string) (enrich.SynonymSet, error)
	Frequencies(ctx context.Context, words []string) (enrich.FrequencyIndex, error)
}

// Cloud is one renderable word cloud.
type Cloud interface {
	Name() string
	Surface() string
	Len() int
	LoadData(ctx context.Context, client Enricher) error
	Render(ctx context.Context, adapter render.Adapter) error
}

// WeightedWord pairs a word with its numeric weight.
type WeightedWord struct {
	Text   string
	Weight float64
}

// Threshold keeps the words whose weight is at least min. The boundary is
// inclusive.
func Threshold(words []WeightedWord, min float64) []WeightedWord {
	out := make([]WeightedWord, 0, len(words))
	for _, w := range words {
		if w.Weight >= min {
			out = append(out, w)
		}
	}
	return out
}

// scaleItems maps weights linearly onto [minSize, maxSize]. When every
// weight is equal the slope is undefined; the items come back at minSize
// together with ErrDegenerateRange so the caller can log the fallback.
func scaleItems(words []WeightedWord, minSize, maxSize float64) ([]render.Item, error) {
	if len(words) == 0 {
		return nil, apperrors.ErrEmptyInput
	}
	lo, hi := words[0].Weight, words[0].Weight
	for _, w := range words[1:] {
		if w.Weight < lo {
			lo = w.Weight
		}
		if w.Weight > hi {
			hi = w.Weight
		}
	}
	items := make([]render.Item, len(words))
	if hi == lo {
		for i, w := range words {
			items[i] = render.Item{Text: w.Text, Size: minSize}
		}
		return items, apperrors.ErrDegenerateRange
	}
	slope := (maxSize - minSize) / (hi - lo)
	for i, w := range words {
		items[i] = render.Item{Text: w.Text, Size: minSize + (w.Weight-lo)*slope}
	}
	return items, nil
}
