package components

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/landing"
	"github.com/m1ck43l/web-ui/pkg/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func loadedState() landing.ViewState {
	return landing.LoadedState(landing.Result{
		Stats: core.StatsSnapshot{
			FeedCountTotal:  "4,000,000",
			FeedCount3Days:  "1,200",
			FeedCount10Days: "3,000",
			FeedCount30Days: "9,000",
			FeedCount60Days: "15,000",
			FeedCount90Days: "20,000",
		},
		RecentEpisodes: []core.EpisodeSummary{
			{ID: 1, Title: "First <Episode>", FeedTitle: "Show One", Link: "https://one.example/ep", DatePublished: 1700000000, FeedImage: "https://one.example/art.png"},
			{ID: 2, Title: "Second", EnclosureURL: "https://two.example/ep.mp3"},
			{ID: 3, Title: "Third", Link: "javascript:alert(1)"},
		},
	})
}

func TestRecentPodcasts_Loading(t *testing.T) {
	html := render(t, RecentPodcasts("Recent Podcasts", landing.InitialState()))

	assert.Contains(t, html, `id="recent-podcasts"`)
	assert.Contains(t, html, "Loading...")
	assert.NotContains(t, html, "recent-podcasts-list")
}

func TestRecentPodcasts_Loaded(t *testing.T) {
	html := render(t, RecentPodcasts("Recent Podcasts", loadedState()))

	assert.Contains(t, html, "First &lt;Episode&gt;", "titles are escaped")
	assert.Contains(t, html, `href="https://one.example/ep"`)
	assert.Contains(t, html, `src="https://one.example/art.png"`)
	assert.Contains(t, html, "Show One")
	assert.Contains(t, html, `href="https://two.example/ep.mp3"`, "enclosure is the fallback link")
	assert.NotContains(t, html, "javascript:", "unsafe URLs are sanitized")
	assert.NotContains(t, html, "Loading...")

	// Server order is kept.
	first := strings.Index(html, "First")
	second := strings.Index(html, "Second")
	third := strings.Index(html, "Third")
	assert.True(t, first < second && second < third)
}

func TestRecentPodcasts_Empty(t *testing.T) {
	html := render(t, RecentPodcasts("Recent Podcasts", landing.LoadedState(landing.Result{})))
	assert.Contains(t, html, "No recent podcasts.")
}

func TestRecentPodcasts_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "network", err: core.ErrNetwork, want: "could not reach"},
		{name: "decode", err: core.ErrDecode, want: "could not read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, RecentPodcasts("Recent Podcasts", landing.FailedState(tt.err)))
			assert.Contains(t, html, tt.want)
			assert.Contains(t, html, `role="alert"`)
			assert.Contains(t, html, "@post('/retry')", "failure offers a retry")
			assert.NotContains(t, html, "Loading...")
		})
	}
}

func TestStatsCard(t *testing.T) {
	placeholder := render(t, StatsCard(landing.PlaceholderStats()))
	assert.Contains(t, placeholder, `id="stats-card"`)
	assert.Contains(t, placeholder, "-,---,---")
	assert.Contains(t, placeholder, "--,---")

	loaded := render(t, StatsCard(loadedState().Stats))
	for _, want := range []string{"4,000,000", "1,200", "3,000", "9,000", "15,000", "20,000"} {
		assert.Contains(t, loaded, want)
	}
}

func TestLive_PatchesBothRegions(t *testing.T) {
	html := render(t, Live(loadedState()))

	assert.Contains(t, html, `id="recent-podcasts"`)
	assert.Contains(t, html, `id="stats-card"`)
	assert.Contains(t, html, "4,000,000")
}

func TestPage(t *testing.T) {
	html := render(t, Page(PageData{
		Title:    "Home",
		StreamID: "stream-123",
		State:    landing.InitialState(),
	}))

	for _, want := range []string{
		"<!doctype html>",
		"<title>Home - Podcast Index</title>",
		`data-signals:stream="&#39;stream-123&#39;"`,
		`data-init="@get('/updates')"`,
		`href="/apps"`,
		"/static/landing.css",
		"Loading...",
		"-,---,---",
		"https://www.paypal.com/cgi-bin/webscr",
		"9GEMYSYB7G2DW",
		"podcastindex_feeds.db.tgz",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "/reload", "hot reload is dev only")
	assert.Equal(t, 1, strings.Count(html, `id="recent-podcasts"`), "live region is rendered once")

	dev := render(t, Page(PageData{Title: "Home", IsDev: true, State: landing.InitialState()}))
	assert.Contains(t, dev, "@get('/reload'")
}

func TestPage_EscapesStreamID(t *testing.T) {
	html := render(t, Page(PageData{
		Title:    `<script>`,
		StreamID: `x' onload="alert(1)`,
		State:    landing.InitialState(),
	}))

	assert.NotContains(t, html, `onload="alert(1)`)
	assert.Contains(t, html, "<title>&lt;script&gt; - Podcast Index</title>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestComponents_ReportWriteErrors(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, Live(loadedState()).Render(ctx, failingWriter{}))
	assert.Error(t, Page(PageData{Title: "Home", State: landing.InitialState()}).Render(ctx, failingWriter{}))
}
