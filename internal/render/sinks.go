package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
)

type jsonDocument struct {
	Surface     string `json:"surface"`
	GeneratedAt string `json:"generatedAt"`
	Words       []Item `json:"words"`
}

// EncodeJSON writes items as an indented JSON document. External packers
// consume this instead of the SVG.
func EncodeJSON(w io.Writer, surface string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	doc := jsonDocument{
		Surface:     surface,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Words:       items,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Writer renders a single surface to Out in the configured format.
type Writer struct {
	Out     io.Writer
	Format  string
	Options SVGOptions
}

func (a *Writer) Render(ctx context.Context, surface string, items []Item) error {
	switch a.Format {
	case FormatJSON:
		return EncodeJSON(a.Out, surface, items)
	case FormatSVG, "":
		return EncodeSVG(a.Out, items, a.Options)
	default:
		return fmt.Errorf("%w: unknown render format %q", apperrors.ErrInvalidInput, a.Format)
	}
}

// Directory writes one file per surface, named <surface>.<format>, under
// its directory.
type Directory struct {
	dir    string
	format string
	opts   SVGOptions
	logger *slog.Logger
}

// NewDirectory creates the output directory if needed and returns an
// adapter writing the given format into it.
func NewDirectory(dir, format string, opts SVGOptions) (*Directory, error) {
	switch format {
	case FormatSVG, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: directory adapter format %q", apperrors.ErrInvalidInput, format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", dir, err)
	}
	return &Directory{
		dir:    dir,
		format: format,
		opts:   opts,
		logger: slog.Default().With("component", "render-directory"),
	}, nil
}

func (d *Directory) Render(ctx context.Context, surface string, items []Item) error {
	name := filepath.Base(surface + "." + d.format)
	path := filepath.Join(d.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := &Writer{Out: f, Format: d.format, Options: d.opts}
	if err := w.Render(ctx, surface, items); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	d.logger.Info("surface written", "path", path, "words", len(items))
	return nil
}

// Multi fans one surface out to several adapters, stopping at the first
// failure.
type Multi []Adapter

func (m Multi) Render(ctx context.Context, surface string, items []Item) error {
	for _, a := range m {
		if err := a.Render(ctx, surface, items); err != nil {
			return err
		}
	}
	return nil
}
