package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVGOptions controls the rendered document. Zero values fall back to the
// package defaults.
type SVGOptions struct {
	Width      int
	Height     int
	Background string
	FontFamily string
	Palette    []string
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Height <= 0 {
		o.Height = 540
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.FontFamily == "" {
		o.FontFamily = "Georgia, serif"
	}
	if len(o.Palette) == 0 {
		o.Palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}
	}
	return o
}

// EncodeSVG writes items as an SVG document using a centred ribbon layout:
// words flow left to right, wrap into rows, and the row block is centred
// on the canvas.
func EncodeSVG(w io.Writer, items []Item, opts SVGOptions) error {
	o := opts.withDefaults()
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(o.Width, o.Height)
	canvas.Rect(0, 0, o.Width, o.Height, "fill:"+o.Background)

	rows := layoutRows(items, o.Width)
	total := 0
	for _, row := range rows {
		total += row.height
	}
	y := (o.Height - total) / 2
	idx := 0
	for _, row := range rows {
		y += row.height
		x := (o.Width - row.width) / 2
		for _, item := range row.items {
			style := fmt.Sprintf("font-family:%s;font-size:%.0fpx;fill:%s",
				o.FontFamily, item.Size, o.Palette[idx%len(o.Palette)])
			canvas.Text(x, y, item.Text, style)
			x += itemWidth(item)
			idx++
		}
	}
	canvas.End()
	return ew.err
}

type svgRow struct {
	items  []Item
	width  int
	height int
}

// layoutRows packs items greedily into rows no wider than the usable
// canvas. A word wider than the canvas gets a row to itself.
func layoutRows(items []Item, canvasWidth int) []svgRow {
	usable := canvasWidth * 9 / 10
	var rows []svgRow
	var current svgRow
	for _, item := range items {
		w := itemWidth(item)
		if len(current.items) > 0 && current.width+w > usable {
			rows = append(rows, current)
			current = svgRow{}
		}
		current.items = append(current.items, item)
		current.width += w
		if h := int(item.Size * 1.3); h > current.height {
			current.height = h
		}
	}
	if len(current.items) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// itemWidth estimates the horizontal space a word takes, glyph width
// approximated at 0.6em plus an em of trailing gap.
func itemWidth(item Item) int {
	return int(item.Size*0.6*float64(len([]rune(item.Text)))) + int(item.Size)
}

// errWriter keeps the first write error; the svg canvas itself discards
// them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
