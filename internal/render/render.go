// Package render turns weighted-and-scaled word lists into drawable
// documents. Adapters decouple the clouds from the output medium: files,
// HTTP responses, or anything else that can take an io.Writer.
package render

import "context"

// Output formats understood by the sinks.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Item is one word ready to draw: text plus final font size in pixels.
type Item struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
}

// Adapter receives fully scaled items for one surface and draws them.
type Adapter interface {
	Render(ctx context.Context, surface string, items []Item) error
}
