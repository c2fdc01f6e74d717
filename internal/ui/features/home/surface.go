package home

import (
	"log/slog"

	"github.com/m1ck43l/web-ui/internal/landing"
	"github.com/m1ck43l/web-ui/internal/ui/features/home/components"
	"github.com/starfederation/datastar-go/datastar"
)

// sseSurface renders view states as datastar element patches.
type sseSurface struct {
	sse    *datastar.ServerSentEventGenerator
	logger *slog.Logger
}

func (s *sseSurface) Render(state landing.ViewState) {
	if err := s.sse.PatchElementTempl(components.Live(state)); err != nil {
		// The client is gone; the request context ends the activation.
		s.logger.Debug("failed to patch landing view", "error", err)
	}
}
