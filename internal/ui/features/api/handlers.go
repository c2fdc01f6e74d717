// Package api serves the landing page data as JSON, in the shape the
// landing page itself consumes, so one instance can feed another.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/m1ck43l/web-ui/pkg/core"
)

const (
	// DefaultMax is the number of recent episodes returned without a max
	// parameter.
	DefaultMax = 10
	// MaxLimit caps the max parameter.
	MaxLimit = 1000
)

type statsResponse struct {
	Status string `json:"status"`
	core.StatsSnapshot
}

type recentEpisodesResponse struct {
	Status string                `json:"status"`
	Items  []core.EpisodeSummary `json:"items"`
	Count  int                   `json:"count"`
	Max    int                   `json:"max"`
}

type errorResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Handlers provides HTTP handlers for the data API.
type Handlers struct {
	source core.Source
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source core.Source, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		source: source,
		logger: logger,
	}
}

// Stats serves the feed counts.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.source.Stats(r.Context())
	if err != nil {
		h.logger.Warn("stats request failed", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "stats unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, statsResponse{Status: "true", StatsSnapshot: stats})
}

// RecentEpisodes serves the most recent episodes, newest first.
func (h *Handlers) RecentEpisodes(w http.ResponseWriter, r *http.Request) {
	limit, err := parseMax(r.URL.Query().Get("max"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "max must be an integer")
		return
	}

	items, err := h.source.RecentEpisodes(r.Context(), limit)
	if err != nil {
		h.logger.Warn("recent episodes request failed", "error", err, "max", limit)
		h.writeError(w, http.StatusServiceUnavailable, "recent episodes unavailable")
		return
	}
	if items == nil {
		items = []core.EpisodeSummary{}
	}

	h.writeJSON(w, http.StatusOK, recentEpisodesResponse{
		Status: "true",
		Items:  items,
		Count:  len(items),
		Max:    limit,
	})
}

// parseMax reads the max parameter, defaulting to DefaultMax and clamping
// to [1, MaxLimit].
func parseMax(raw string) (int, error) {
	if raw == "" {
		return DefaultMax, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return min(max(n, 1), MaxLimit), nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, description string) {
	h.writeJSON(w, status, errorResponse{Status: "false", Description: description})
}
