package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/tomoyak/saturation-charts/internal/charts"
	"github.com/tomoyak/saturation-charts/pkg/chart"
	"github.com/tomoyak/saturation-charts/pkg/export"
	"github.com/tomoyak/saturation-charts/pkg/table"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	store       *Store
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and chart API.
func NewHandler(logger *zap.Logger, store *Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewStore(0)
	}
	if maxBodySize <= 0 {
		maxBodySize = 1024 * 1024
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, store: store, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Chart generation endpoint (pasted table + options)
	mux.HandleFunc("/api/charts", h.handleGenerate)

	// Download endpoint for previously generated documents
	mux.HandleFunc("/api/charts/", h.handleDownload)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// The exported documents and the UI preview share one renderer script.
	mux.HandleFunc("/assets/renderer.js", h.handleRenderer)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return gzhttp.GzipHandler(mux)
}

type generateRequest struct {
	Data    string          `json:"data"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Models             string  `json:"models"`
	ShowExtrapolation  *bool   `json:"showExtrapolation"`
	ExtrapolationRatio float64 `json:"extrapolationRatio"`
	Title              string  `json:"title"`
}

type generateResponse struct {
	ID          string          `json:"id"`
	Segments    int             `json:"segments"`
	Warnings    []string        `json:"warnings,omitempty"`
	Acquisition *chart.Document `json:"acquisition"`
	Cost        *chart.Document `json:"cost"`
	Duration    string          `json:"duration"`
}

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "server.handleGenerate")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleGenerate")
		return
	}

	if strings.TrimSpace(payload.Data) == "" {
		h.respondError(w, http.StatusBadRequest, "missing table data", "server.handleGenerate")
		return
	}

	records, err := table.Parse(payload.Data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleGenerate")
		return
	}

	opts, err := h.chartOptions(payload.Options)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleGenerate")
		return
	}

	result, err := charts.Generate(h.logger, records, opts)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleGenerate")
		return
	}

	id := h.store.Put(result.Acquisition, result.Cost)
	elapsed := time.Since(start)

	h.logger.Info("charts request served",
		zap.String("op", "server.handleGenerate"),
		zap.String("id", id),
		zap.Int("segments", result.Segments),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, generateResponse{
		ID:          id,
		Segments:    result.Segments,
		Warnings:    result.Warnings,
		Acquisition: result.Acquisition,
		Cost:        result.Cost,
		Duration:    elapsed.String(),
	})
}

func (h *handler) chartOptions(opts generateOptions) (charts.Options, error) {
	models, err := charts.ParseModels(opts.Models)
	if err != nil {
		return charts.Options{}, err
	}

	showExtrapolation := true
	if opts.ShowExtrapolation != nil {
		showExtrapolation = *opts.ShowExtrapolation
	}

	return charts.Options{
		Models:             models,
		ShowExtrapolation:  showExtrapolation,
		ExtrapolationRatio: opts.ExtrapolationRatio,
		Title:              opts.Title,
	}, nil
}

// handleDownload serves /api/charts/{id}/download?metric=acquisition|cost as
// a self-contained HTML attachment.
func (h *handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "download" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	acquisition, cost, ok := h.store.Get(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown or expired chart generation", "server.handleDownload")
		return
	}

	metric := r.URL.Query().Get("metric")
	var doc *chart.Document
	var filename string
	switch metric {
	case "", "acquisition":
		doc = acquisition
		filename = "segment_regression_acquisition.html"
	case "cost":
		doc = cost
		filename = "segment_regression_cpa.html"
	default:
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("unknown metric %q, expected acquisition or cost", metric), "server.handleDownload")
		return
	}

	data, err := export.HTML(doc)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to export chart: %v", err), "server.handleDownload")
		return
	}

	h.logger.Info("chart downloaded",
		zap.String("op", "server.handleDownload"),
		zap.String("id", id),
		zap.String("metric", metric),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write download response", zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleRenderer(w http.ResponseWriter, r *http.Request) {
	js, err := export.RendererJS()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "renderer unavailable", "server.handleRenderer")
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(js)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("chart request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
