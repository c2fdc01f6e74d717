// Package landing implements the landing page loader.
//
// A View owns the render state of the landing page. Activating it shows
// placeholder content immediately and loads recent episodes and feed
// statistics concurrently; the combined result is committed in one step,
// and only if the activation that started the load is still current.
package landing

import (
	"errors"

	"github.com/m1ck43l/web-ui/pkg/core"
)

// DefaultMaxEpisodes is the number of recent episodes requested per load.
const DefaultMaxEpisodes = 7

// FailureKind classifies why a load failed.
type FailureKind string

// Failure kinds.
const (
	FailureNetwork FailureKind = "network"
	FailureDecode  FailureKind = "decode"
)

// Failure describes a failed load sequence.
type Failure struct {
	Kind    FailureKind
	Message string
}

// ViewState is the render-ready state of the landing page.
//
// Stats and RecentEpisodes hold real data only when Loading is false and
// Failure is nil; in every other state both hold placeholders.
type ViewState struct {
	Loading        bool
	RecentEpisodes []core.EpisodeSummary
	Stats          core.StatsSnapshot
	Failure        *Failure
}

// Loaded reports whether the state carries committed data.
func (s ViewState) Loaded() bool {
	return !s.Loading && s.Failure == nil
}

// Failed reports whether the last load sequence failed.
func (s ViewState) Failed() bool {
	return s.Failure != nil
}

// clone returns a copy that shares nothing mutable with s.
func (s ViewState) clone() ViewState {
	out := s
	out.RecentEpisodes = append([]core.EpisodeSummary(nil), s.RecentEpisodes...)
	if out.RecentEpisodes == nil {
		out.RecentEpisodes = []core.EpisodeSummary{}
	}
	if s.Failure != nil {
		f := *s.Failure
		out.Failure = &f
	}
	return out
}

// PlaceholderStats returns the counters shown before real data arrives.
func PlaceholderStats() core.StatsSnapshot {
	return core.StatsSnapshot{
		FeedCountTotal:  "-,---,---",
		FeedCount3Days:  "--,---",
		FeedCount10Days: "---,---",
		FeedCount30Days: "---,---",
		FeedCount60Days: "---,---",
		FeedCount90Days: "---,---",
	}
}

// InitialState returns the state of a freshly activated view.
func InitialState() ViewState {
	return ViewState{
		Loading:        true,
		RecentEpisodes: []core.EpisodeSummary{},
		Stats:          PlaceholderStats(),
	}
}

// LoadedState returns the state committed after a successful load.
func LoadedState(r Result) ViewState {
	episodes := r.RecentEpisodes
	if episodes == nil {
		episodes = []core.EpisodeSummary{}
	}
	return ViewState{
		Loading:        false,
		RecentEpisodes: episodes,
		Stats:          r.Stats,
	}
}

// FailedState returns the state committed after a failed load.
// Stats and episodes keep their placeholders.
func FailedState(err error) ViewState {
	f := Classify(err)
	return ViewState{
		Loading:        false,
		RecentEpisodes: []core.EpisodeSummary{},
		Stats:          PlaceholderStats(),
		Failure:        &f,
	}
}

// Classify maps a load error to a Failure. Errors that are not decode
// failures are reported as network failures.
func Classify(err error) Failure {
	kind := FailureNetwork
	if errors.Is(err, core.ErrDecode) {
		kind = FailureDecode
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Failure{Kind: kind, Message: msg}
}
