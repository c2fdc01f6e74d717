package home

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/m1ck43l/web-ui/internal/landing"
	"github.com/m1ck43l/web-ui/internal/ui/features/home/components"
	"github.com/m1ck43l/web-ui/internal/ui/notifier"
	"github.com/m1ck43l/web-ui/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

// pageSignals are the datastar signals sent by the landing page.
type pageSignals struct {
	Stream string `json:"stream"`
}

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	source      core.Source
	notifier    *notifier.Notifier
	streams     *Streams
	logger      *slog.Logger
	maxEpisodes int
	isDev       bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source core.Source, notify *notifier.Notifier, logger *slog.Logger, maxEpisodes int, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if maxEpisodes <= 0 {
		maxEpisodes = landing.DefaultMaxEpisodes
	}
	return &Handlers{
		source:      source,
		notifier:    notify,
		streams:     NewStreams(),
		logger:      logger,
		maxEpisodes: maxEpisodes,
		isDev:       isDev,
	}
}

// Streams returns the registry of open update streams.
func (h *Handlers) Streams() *Streams {
	return h.streams
}

// HomePage renders the landing page shell in its placeholder state.
// Real data arrives over the update stream.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	data := components.PageData{
		Title:    "Home",
		IsDev:    h.isDev,
		StreamID: uuid.NewString(),
		State:    landing.InitialState(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint for the landing page.
// The connection is one activation of a landing view: it starts when the
// stream opens and ends when the client goes away.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	var signals pageSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("ignoring unreadable signals", "error", err)
	}
	streamID := signals.Stream
	if streamID == "" {
		streamID = uuid.NewString()
	}
	logger := h.logger.With("stream", streamID)

	sse := datastar.NewSSE(w, r)
	view := landing.New(h.source, &sseSurface{sse: sse, logger: logger},
		landing.WithMaxEpisodes(h.maxEpisodes),
		landing.WithLogger(logger),
	)

	h.streams.Add(streamID, view)
	defer h.streams.Remove(streamID, view)

	var updates chan notifier.Event
	if h.notifier != nil {
		updates = h.notifier.Subscribe()
		defer h.notifier.Unsubscribe(updates)
	}

	ctx := r.Context()
	view.Activate(ctx)
	defer view.Deactivate()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-updates:
			logger.Debug("reloading landing view", "reason", ev.Reason)
			if err := view.Reload(); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Retry restarts the load of the stream named by the stream signal.
func (h *Handlers) Retry(w http.ResponseWriter, r *http.Request) {
	var signals pageSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "invalid signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	view, ok := h.streams.Get(signals.Stream)
	if !ok {
		http.Error(w, "unknown stream", http.StatusNotFound)
		return
	}

	if err := view.Reload(); err != nil {
		if errors.Is(err, landing.ErrInactive) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
