// Package components renders the landing page.
package components

import (
	"github.com/m1ck43l/web-ui/internal/landing"
	"github.com/m1ck43l/web-ui/pkg/core"
)

// Element ids patched by the update stream.
const (
	RecentPodcastsID = "recent-podcasts"
	StatsCardID      = "stats-card"
)

// AppsPath is the navigation target of the "new podcast app" link.
const AppsPath = "/apps"

// DatastarScript is the datastar client bundle loaded by every page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData holds everything the landing page shell needs.
type PageData struct {
	Title    string
	IsDev    bool
	StreamID string
	State    landing.ViewState
}

// statRow is one labelled counter of the stats card.
type statRow struct {
	Label string
	Value core.Count
}

func statRows(stats core.StatsSnapshot) []statRow {
	return []statRow{
		{"Total Podcasts", stats.FeedCountTotal},
		{"New Episodes in Last 3 Days", stats.FeedCount3Days},
		{"New Episodes in Last 10 Days", stats.FeedCount10Days},
		{"New Episodes in Last 30 Days", stats.FeedCount30Days},
		{"New Episodes in Last 60 Days", stats.FeedCount60Days},
		{"New Episodes in Last 90 Days", stats.FeedCount90Days},
	}
}

// episodeLink prefers the episode page and falls back to the audio file.
func episodeLink(e core.EpisodeSummary) string {
	if e.Link != "" {
		return e.Link
	}
	return e.EnclosureURL
}

// streamSignal is the datastar expression for the page's stream id.
func streamSignal(id string) string {
	return "'" + id + "'"
}
