package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/testutil"
	"github.com/m1ck43l/web-ui/internal/ui/features"
)

func setupRouter(t *testing.T, withAPI, isDev bool) http.Handler {
	t.Helper()

	fixture := features.SetupTestFixture(t, features.TestPodcast{ID: 1, Title: "Alpha", DaysAgo: 1})
	opts := Options{
		Source:   fixture.Store,
		Notifier: fixture.Notifier,
		Logger:   testutil.NewTestLogger(t),
		IsDev:    isDev,
	}
	if withAPI {
		opts.APISource = fixture.Store
	}

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, opts))
	return r
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		name       string
		withAPI    bool
		isDev      bool
		method     string
		path       string
		wantStatus int
	}{
		{name: "landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "static asset", method: http.MethodGet, path: "/static/landing.css", wantStatus: http.StatusOK},
		{name: "retry without stream", method: http.MethodPost, path: "/retry", wantStatus: http.StatusBadRequest},
		{name: "retry needs POST", method: http.MethodGet, path: "/retry", wantStatus: http.StatusMethodNotAllowed},
		{name: "api disabled", method: http.MethodGet, path: "/api/stats", wantStatus: http.StatusNotFound},
		{name: "api enabled", withAPI: true, method: http.MethodGet, path: "/api/stats", wantStatus: http.StatusOK},
		{name: "hot reload off", method: http.MethodGet, path: "/hotreload", wantStatus: http.StatusNotFound},
		{name: "hot reload in dev", isDev: true, method: http.MethodGet, path: "/hotreload", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.withAPI, tt.isDev)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
