// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/index"
	"github.com/m1ck43l/web-ui/internal/testutil"
	"github.com/m1ck43l/web-ui/internal/ui/notifier"
	"github.com/m1ck43l/web-ui/pkg/core"
)

// TestNow is the fixed clock of fixture stores.
var TestNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// TestPodcast is a helper to create index rows with minimal boilerplate.
type TestPodcast struct {
	ID      int64
	Title   string
	DaysAgo int
	Dead    bool
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store    *index.Store
	Notifier *notifier.Notifier
}

// SetupTestFixture creates a fixture backed by an in-memory index holding
// the given podcasts.
func SetupTestFixture(t *testing.T, podcasts ...TestPodcast) *TestFixture {
	t.Helper()

	store := index.NewStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() {
		_ = store.Close()
	})
	require.NoError(t, store.Migrate())
	store.SetClock(func() time.Time { return TestNow })

	for _, p := range podcasts {
		require.NoError(t, store.AddPodcast(context.Background(), toPodcast(p)))
	}

	return &TestFixture{
		Store:    store,
		Notifier: notifier.New(),
	}
}

// FailingSource is a core.Source whose reads always fail with Err.
type FailingSource struct {
	Err error
}

var _ core.Source = FailingSource{}

// Stats returns s.Err.
func (s FailingSource) Stats(context.Context) (core.StatsSnapshot, error) {
	return core.StatsSnapshot{}, s.err()
}

// RecentEpisodes returns s.Err.
func (s FailingSource) RecentEpisodes(context.Context, int) ([]core.EpisodeSummary, error) {
	return nil, s.err()
}

func (s FailingSource) err() error {
	if s.Err == nil {
		return fmt.Errorf("source unavailable: %w", core.ErrNetwork)
	}
	return s.Err
}

// RequestWithTimeout wraps a request with a context timeout. The timeout
// releases the context.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	_ = cancel
	return r.WithContext(ctx)
}

func toPodcast(p TestPodcast) index.Podcast {
	title := p.Title
	if title == "" {
		title = "Podcast"
	}
	var newest time.Time
	if p.DaysAgo >= 0 {
		newest = TestNow.Add(-time.Duration(p.DaysAgo) * 24 * time.Hour)
	}
	return index.Podcast{
		ID:                p.ID,
		Title:             title,
		Link:              "https://example.com/podcasts/" + title,
		Dead:              p.Dead,
		NewestItemPubdate: newest,
	}
}
