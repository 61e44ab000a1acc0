package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/testutil"
	"github.com/leapstack-labs/launchdash/internal/ui/features"
	"github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
)

func newTestServer(t *testing.T, m *metrics.Metrics) *Server {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewServer(Config{
		Dataset: fixture.Dataset,
		Slider:  dashboard.DefaultSlider(),
		Logger:  testutil.NewTestLogger(t),
		Metrics: m,
	})
}

func TestHandler_Routes(t *testing.T) {
	h, err := newTestServer(t, metrics.New()).Handler()
	require.NoError(t, err)

	tests := []struct {
		path        string
		wantStatus  int
		wantContent string
	}{
		{path: "/", wantStatus: http.StatusOK, wantContent: "SpaceX Launch Records Dashboard"},
		{path: "/healthz", wantStatus: http.StatusOK, wantContent: "OK"},
		{path: "/metrics", wantStatus: http.StatusOK, wantContent: "launchdash_dataset_records 10"},
		{path: "/static/app.css", wantStatus: http.StatusOK, wantContent: ".dashboard"},
		{path: "/api/outcomes", wantStatus: http.StatusOK, wantContent: `"counts"`},
		{path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantContent != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContent)
			}
		})
	}
}

func TestHandler_MetricsDisabled(t *testing.T) {
	h, err := newTestServer(t, nil).Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_NoDataset(t *testing.T) {
	_, err := NewServer(Config{}).Handler()
	assert.Error(t, err)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	require.Eventually(t, func() bool { return s.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(s.URL() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "OK", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
