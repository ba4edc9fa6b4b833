package cloud

import (
	"context"
	"log/slog"

	"github.com/michellelius/word-visualisation/internal/render"
)

// StaticCloud renders its vocabulary as-is at one fixed size. Its word
// list is final at construction, so LoadData is a no-op.
type StaticCloud struct {
	name    string
	surface string
	words   []string
	size    float64
	logger  *slog.Logger
}

// NewStatic builds a static cloud. An empty surface defaults to the cloud
// name; a non-positive size falls back to 18px.
func NewStatic(name, surface string, words []string, size float64) *StaticCloud {
	if surface == "" {
		surface = name
	}
	if size <= 0 {
		size = 18
	}
	return &StaticCloud{
		name:    name,
		surface: surface,
		words:   words,
		size:    size,
		logger:  slog.Default().With("component", "cloud", "cloud", name),
	}
}

func (c *StaticCloud) Name() string { return c.name }

func (c *StaticCloud) Surface() string { return c.surface }

func (c *StaticCloud) Len() int { return len(c.words) }

// Words returns the current vocabulary in render order.
func (c *StaticCloud) Words() []string { return c.words }

func (c *StaticCloud) LoadData(ctx context.Context, client Enricher) error {
	return nil
}

// Render draws every word at the fixed size. An empty cloud is a logged
// no-op, not an error.
func (c *StaticCloud) Render(ctx context.Context, adapter render.Adapter) error {
	if len(c.words) == 0 {
		c.logger.Warn("no words to render, skipping surface", "surface", c.surface)
		return nil
	}
	items := make([]render.Item, len(c.words))
	for i, w := range c.words {
		items[i] = render.Item{Text: w, Size: c.size}
	}
	return adapter.Render(ctx, c.surface, items)
}
