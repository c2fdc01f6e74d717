// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/cli/output"
	"github.com/m1ck43l/web-ui/internal/index"
)

// SetupTestIndex creates an index database file holding podcasts and
// returns its path.
func SetupTestIndex(t *testing.T, podcasts ...index.Podcast) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "podcastindex_feeds.db")
	store := index.NewStore(nil)
	require.NoError(t, store.Open(path))
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate())

	for _, p := range podcasts {
		require.NoError(t, store.AddPodcast(context.Background(), p))
	}
	return path
}

// RecentPodcast is a live podcast that published hoursAgo hours ago.
func RecentPodcast(id int64, title string, hoursAgo int) index.Podcast {
	return index.Podcast{
		ID:                id,
		Title:             title,
		Link:              "https://example.com/" + title,
		NewestItemPubdate: time.Now().Add(-time.Duration(hoursAgo) * time.Hour),
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}
