package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
)

type captureAdapter struct {
	surfaces []string
}

func (a *captureAdapter) Render(ctx context.Context, surface string, items []Item) error {
	a.surfaces = append(a.surfaces, surface)
	return nil
}

type failAdapter struct{ err error }

func (a *failAdapter) Render(ctx context.Context, surface string, items []Item) error {
	return a.err
}

type failWriter struct{ err error }

func (w *failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestEncodeSVGDrawsEveryWord(t *testing.T) {
	var buf bytes.Buffer
	items := []Item{
		{Text: "hello", Size: 20},
		{Text: "world", Size: 30},
	}
	require.NoError(t, EncodeSVG(&buf, items, SVGOptions{}))

	doc := buf.String()
	require.Contains(t, doc, "<svg")
	require.Contains(t, doc, "</svg>")
	require.Contains(t, doc, ">hello</text>")
	require.Contains(t, doc, ">world</text>")
	require.Contains(t, doc, "font-size:20px")
	require.Contains(t, doc, "font-size:30px")
	require.Contains(t, doc, "fill:#ffffff")
}

func TestEncodeSVGHonoursOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := SVGOptions{
		Width:      400,
		Height:     200,
		Background: "#000000",
		FontFamily: "monospace",
	}
	require.NoError(t, EncodeSVG(&buf, []Item{{Text: "x", Size: 14}}, opts))

	doc := buf.String()
	require.Contains(t, doc, `width="400"`)
	require.Contains(t, doc, `height="200"`)
	require.Contains(t, doc, "fill:#000000")
	require.Contains(t, doc, "font-family:monospace")
}

func TestEncodeSVGEmptyItemsIsStillADocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, nil, SVGOptions{}))
	require.Contains(t, buf.String(), "<svg")
	require.Contains(t, buf.String(), "</svg>")
}

func TestEncodeSVGPropagatesWriteErrors(t *testing.T) {
	boom := errors.New("device full")
	err := EncodeSVG(&failWriter{err: boom}, []Item{{Text: "x", Size: 12}}, SVGOptions{})
	require.ErrorIs(t, err, boom)
}

func TestLayoutRowsWrapsWideContent(t *testing.T) {
	items := []Item{
		{Text: strings.Repeat("a", 30), Size: 40},
		{Text: strings.Repeat("b", 30), Size: 40},
		{Text: strings.Repeat("c", 30), Size: 40},
	}
	rows := layoutRows(items, 960)
	require.Greater(t, len(rows), 1, "wide words should wrap into several rows")

	total := 0
	for _, row := range rows {
		total += len(row.items)
	}
	require.Equal(t, len(items), total)
}

func TestLayoutRowsOversizedWordGetsOwnRow(t *testing.T) {
	items := []Item{
		{Text: strings.Repeat("x", 200), Size: 40},
		{Text: "tiny", Size: 12},
	}
	rows := layoutRows(items, 960)
	require.Len(t, rows, 2)
	require.Len(t, rows[0].items, 1)
}

func TestEncodeJSONDocument(t *testing.T) {
	var buf bytes.Buffer
	items := []Item{{Text: "rate", Size: 48}}
	require.NoError(t, EncodeJSON(&buf, "female-board", items))

	var doc struct {
		Surface     string `json:"surface"`
		GeneratedAt string `json:"generatedAt"`
		Words       []Item `json:"words"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "female-board", doc.Surface)
	require.NotEmpty(t, doc.GeneratedAt)
	require.Equal(t, items, doc.Words)
}

func TestEncodeJSONNilItemsEncodeAsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, "s", nil))
	require.Contains(t, buf.String(), `"words": []`)
	require.NotContains(t, buf.String(), "null")
}

func TestWriterDispatchesOnFormat(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf, Format: FormatJSON}
	require.NoError(t, w.Render(context.Background(), "s", []Item{{Text: "a", Size: 1}}))
	require.True(t, json.Valid(buf.Bytes()))

	buf.Reset()
	w = &Writer{Out: &buf, Format: ""}
	require.NoError(t, w.Render(context.Background(), "s", []Item{{Text: "a", Size: 1}}))
	require.Contains(t, buf.String(), "<svg")
}

func TestWriterRejectsUnknownFormat(t *testing.T) {
	w := &Writer{Out: &bytes.Buffer{}, Format: "pdf"}
	err := w.Render(context.Background(), "s", nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDirectoryWritesOneFilePerSurface(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDirectory(dir, FormatJSON, SVGOptions{})
	require.NoError(t, err)

	items := []Item{{Text: "rate", Size: 48}}
	require.NoError(t, d.Render(context.Background(), "female-board", items))

	data, err := os.ReadFile(filepath.Join(dir, "female-board.json"))
	require.NoError(t, err)
	require.True(t, json.Valid(data))
}

func TestDirectoryStripsPathsFromSurfaceNames(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDirectory(dir, FormatSVG, SVGOptions{})
	require.NoError(t, err)

	require.NoError(t, d.Render(context.Background(), "../sneaky", []Item{{Text: "x", Size: 12}}))

	_, err = os.Stat(filepath.Join(dir, "sneaky.svg"))
	require.NoError(t, err, "surface names must not escape the output directory")
}

func TestNewDirectoryRejectsUnknownFormat(t *testing.T) {
	_, err := NewDirectory(t.TempDir(), "pdf", SVGOptions{})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMultiStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("sink broken")
	capture := &captureAdapter{}

	m := Multi{&failAdapter{err: boom}, capture}
	err := m.Render(context.Background(), "s", nil)
	require.ErrorIs(t, err, boom)
	require.Empty(t, capture.surfaces)

	m = Multi{capture, &failAdapter{err: boom}}
	err = m.Render(context.Background(), "s", nil)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"s"}, capture.surfaces)
}
