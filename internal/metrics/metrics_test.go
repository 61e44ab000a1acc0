package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveView(t *testing.T) {
	m := New()
	m.ObserveView(ViewOutcomes, "ALL", 4, time.Millisecond)
	m.ObserveView(ViewOutcomes, "ALL", 4, time.Millisecond)
	m.ObserveView(ViewPoints, "KSC LC-39A", 3, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.viewTotal.WithLabelValues(ViewOutcomes, "ALL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.viewTotal.WithLabelValues(ViewPoints, "KSC LC-39A")))
}

func TestSetDataset(t *testing.T) {
	m := New()
	m.SetDataset(56, 4)

	assert.Equal(t, 56.0, testutil.ToFloat64(m.records))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.sites))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveView(ViewPoints, "ALL", 0, 0)
		m.SetDataset(1, 1)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetDataset(10, 4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "launchdash_dataset_records 10")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
