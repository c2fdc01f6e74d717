package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/testutil"
	"github.com/m1ck43l/web-ui/internal/ui/features"
	"github.com/m1ck43l/web-ui/pkg/core"
)

func setupTestRouter(t *testing.T, source core.Source) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, source, testutil.NewTestLogger(t)))
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStats(t *testing.T) {
	fixture := features.SetupTestFixture(t,
		features.TestPodcast{ID: 1, DaysAgo: 1},
		features.TestPodcast{ID: 2, DaysAgo: 20},
		features.TestPodcast{ID: 3, DaysAgo: 200},
	)
	rec := get(t, setupTestRouter(t, fixture.Store), "/api/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got core.StatsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, core.StatsSnapshot{
		FeedCountTotal:  "3",
		FeedCount3Days:  "1",
		FeedCount10Days: "1",
		FeedCount30Days: "2",
		FeedCount60Days: "2",
		FeedCount90Days: "2",
	}, got)
	assert.Contains(t, rec.Body.String(), `"status":"true"`)
}

func TestRecentEpisodes(t *testing.T) {
	var podcasts []features.TestPodcast
	for i := 1; i <= 12; i++ {
		podcasts = append(podcasts, features.TestPodcast{ID: int64(i), DaysAgo: i})
	}
	router := setupTestRouter(t, features.SetupTestFixture(t, podcasts...).Store)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantMax   int
	}{
		{name: "default", query: "", wantCount: 10, wantMax: 10},
		{name: "explicit", query: "?max=7", wantCount: 7, wantMax: 7},
		{name: "clamped low", query: "?max=0", wantCount: 1, wantMax: 1},
		{name: "negative", query: "?max=-5", wantCount: 1, wantMax: 1},
		{name: "clamped high", query: "?max=5000", wantCount: 12, wantMax: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, "/api/recent/episodes"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var got recentEpisodesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "true", got.Status)
			assert.Len(t, got.Items, tt.wantCount)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Equal(t, tt.wantMax, got.Max)
			assert.Equal(t, int64(1), got.Items[0].ID, "newest first")
		})
	}
}

func TestRecentEpisodes_EmptyIndex(t *testing.T) {
	rec := get(t, setupTestRouter(t, features.SetupTestFixture(t).Store), "/api/recent/episodes")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestRecentEpisodes_InvalidMax(t *testing.T) {
	rec := get(t, setupTestRouter(t, features.SetupTestFixture(t).Store), "/api/recent/episodes?max=lots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"false"`)
}

func TestSourceFailure(t *testing.T) {
	router := setupTestRouter(t, features.FailingSource{})

	for _, target := range []string{"/api/stats", "/api/recent/episodes"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, router, target)

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			var got errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "false", got.Status)
			assert.NotEmpty(t, got.Description)
		})
	}
}
