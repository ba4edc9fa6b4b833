// Package api exposes the clouds over HTTP: a listing endpoint and an
// on-demand render endpoint that can emit SVG or the JSON word list.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/michellelius/word-visualisation/internal/cloud"
	"github.com/michellelius/word-visualisation/internal/render"
	"github.com/michellelius/word-visualisation/pkg/config"
	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
	"github.com/michellelius/word-visualisation/pkg/logger"
)

// Preparer is the slice of the pipeline the handlers consume.
type Preparer interface {
	Specs() []config.CloudConfig
	PrepareNamed(ctx context.Context, name string) (cloud.Cloud, error)
}

type Handler struct {
	prep    Preparer
	svgOpts render.SVGOptions
	logger  *slog.Logger
}

func New(prep Preparer, svgOpts render.SVGOptions) *Handler {
	return &Handler{
		prep:    prep,
		svgOpts: svgOpts,
		logger:  slog.Default().With("component", "api-handler"),
	}
}

type cloudSummary struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Surface string `json:"surface"`
}

// ListClouds returns the configured clouds.
func (h *Handler) ListClouds(w http.ResponseWriter, r *http.Request) {
	specs := h.prep.Specs()
	summaries := make([]cloudSummary, 0, len(specs))
	for _, spec := range specs {
		summaries = append(summaries, cloudSummary{Name: spec.Name, Kind: spec.Kind, Surface: spec.Surface})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"clouds": summaries})
}

// RenderCloud builds the named cloud on demand and streams the rendered
// document. ?format=json returns the scaled word list instead of SVG.
func (h *Handler) RenderCloud(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	name := r.PathValue("name")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	if format != render.FormatSVG && format != render.FormatJSON {
		h.writeError(w, http.StatusBadRequest, "format must be svg or json")
		return
	}

	c, err := h.prep.PrepareNamed(ctx, name)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Error("cloud preparation failed", "cloud", name, "status", status, "error", err)
		h.writeError(w, status, errorMessage(err, status))
		return
	}

	var buf bytes.Buffer
	adapter := &render.Writer{Out: &buf, Format: format, Options: h.svgOpts}
	if err := c.Render(ctx, adapter); err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Error("cloud render failed", "cloud", name, "status", status, "error", err)
		h.writeError(w, status, errorMessage(err, status))
		return
	}

	// An empty cloud skips its adapter; the endpoint still owes a valid
	// document.
	if buf.Len() == 0 {
		if err := adapter.Render(ctx, c.Surface(), []render.Item{}); err != nil {
			h.writeError(w, http.StatusInternalServerError, "cloud build failed")
			return
		}
	}

	log.Info("cloud rendered",
		"cloud", name,
		"format", format,
		"words", c.Len(),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if format == render.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func errorMessage(err error, status int) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if status >= http.StatusInternalServerError {
		return "cloud build failed"
	}
	return err.Error()
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
