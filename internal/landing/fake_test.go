package landing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m1ck43l/web-ui/pkg/core"
)

// =============================================================================
// Test doubles
// =============================================================================

type reply struct {
	stats    core.StatsSnapshot
	episodes []core.EpisodeSummary
	err      error
}

// pendingCall is one in-flight read on gatedSource, resolved by the test.
type pendingCall struct {
	kind  string // "stats" or "episodes"
	max   int
	reply chan reply
}

func (c *pendingCall) resolve(r reply) {
	c.reply <- r
}

// gatedSource blocks every read until the test resolves it.
// With honorCancel unset, reads ignore context cancellation and only
// return when resolved, which models a late-arriving response.
type gatedSource struct {
	calls       chan *pendingCall
	honorCancel bool
}

func newGatedSource(honorCancel bool) *gatedSource {
	return &gatedSource{
		calls:       make(chan *pendingCall, 32),
		honorCancel: honorCancel,
	}
}

func (s *gatedSource) Stats(ctx context.Context) (core.StatsSnapshot, error) {
	r := s.await(ctx, &pendingCall{kind: "stats", reply: make(chan reply, 1)})
	return r.stats, r.err
}

func (s *gatedSource) RecentEpisodes(ctx context.Context, max int) ([]core.EpisodeSummary, error) {
	r := s.await(ctx, &pendingCall{kind: "episodes", max: max, reply: make(chan reply, 1)})
	return r.episodes, r.err
}

func (s *gatedSource) await(ctx context.Context, c *pendingCall) reply {
	s.calls <- c
	if !s.honorCancel {
		return <-c.reply
	}
	select {
	case r := <-c.reply:
		return r
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
}

// takeCalls waits for one stats and one episodes call to be in flight.
func (s *gatedSource) takeCalls(t *testing.T) (stats, episodes *pendingCall) {
	t.Helper()
	for stats == nil || episodes == nil {
		select {
		case c := <-s.calls:
			switch c.kind {
			case "stats":
				stats = c
			case "episodes":
				episodes = c
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for concurrent reads (stats=%v episodes=%v)", stats != nil, episodes != nil)
		}
	}
	return stats, episodes
}

// staticSource answers every read immediately with the fixtures.
type staticSource struct{}

func (staticSource) Stats(context.Context) (core.StatsSnapshot, error) {
	return fixtureStats(), nil
}

func (staticSource) RecentEpisodes(context.Context, int) ([]core.EpisodeSummary, error) {
	return fixtureEpisodes(), nil
}

// recordingSurface keeps every rendered snapshot.
type recordingSurface struct {
	mu     sync.Mutex
	states []ViewState
}

func (r *recordingSurface) Render(s ViewState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recordingSurface) rendered() []ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ViewState(nil), r.states...)
}

// =============================================================================
// Fixtures
// =============================================================================

func fixtureStats() core.StatsSnapshot {
	return core.StatsSnapshot{
		FeedCountTotal:  "4,000,000",
		FeedCount3Days:  "1,200",
		FeedCount10Days: "3,000",
		FeedCount30Days: "9,000",
		FeedCount60Days: "15,000",
		FeedCount90Days: "20,000",
	}
}

func fixtureEpisodes() []core.EpisodeSummary {
	titles := []string{"A", "B", "C", "D", "E", "F", "G"}
	episodes := make([]core.EpisodeSummary, len(titles))
	for i, title := range titles {
		episodes[i] = core.EpisodeSummary{ID: int64(i + 1), Title: title}
	}
	return episodes
}
