package home

import (
	"sync"

	"github.com/m1ck43l/web-ui/internal/landing"
)

// Streams tracks the landing view behind each open update stream, keyed
// by the stream id the page was rendered with.
type Streams struct {
	mu    sync.RWMutex
	views map[string]*landing.View
}

// NewStreams creates an empty registry.
func NewStreams() *Streams {
	return &Streams{views: make(map[string]*landing.View)}
}

// Add registers v under id, replacing any earlier view for the same id.
// This happens when a client reconnects its stream.
func (s *Streams) Add(id string, v *landing.View) {
	s.mu.Lock()
	s.views[id] = v
	s.mu.Unlock()
}

// Remove unregisters id if it still maps to v.
func (s *Streams) Remove(id string, v *landing.View) {
	s.mu.Lock()
	if s.views[id] == v {
		delete(s.views, id)
	}
	s.mu.Unlock()
}

// Get returns the view registered under id.
func (s *Streams) Get(id string) (*landing.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id]
	return v, ok
}

// Len returns the number of open streams.
func (s *Streams) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}
