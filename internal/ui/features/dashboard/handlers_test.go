package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/testutil"
	"github.com/leapstack-labs/launchdash/internal/ui/features"
)

func setupRouter(t *testing.T, sites ...string) (http.Handler, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, Options{
		Dataset: fixture.Dataset,
		Sites:   sites,
		Slider:  DefaultSlider(),
		Metrics: fixture.Metrics,
		Logger:  testutil.NewTestLogger(t),
	}))
	return r, fixture
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSetupRoutes_RequiresDataset(t *testing.T) {
	assert.Error(t, SetupRoutes(chi.NewRouter(), Options{}))
}

func TestDashboardPage(t *testing.T) {
	h, _ := setupRouter(t)

	rec := get(t, h, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>SpaceX Launch Records Dashboard</title>",
		`<h1 class="title">SpaceX Launch Records Dashboard</h1>`,
		`<option value="ALL" selected>All Sites</option>`,
		`<option value="CCAFS LC-40">CCAFS LC-40</option>`,
		`id="pie-chart"`,
		`id="scatter-chart"`,
		"Payload range (Kg):",
		`min="0" max="9600"`,
		`label="2500 Kg"`,
		"data-bind:payload-lo",
		"@get('/dashboard/charts')",
		"Total Successful Launches by Site",
		"Correlation between Payload and Success for all Sites",
		"<svg",
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}
}

func TestDashboardPage_ConfiguredSites(t *testing.T) {
	h, _ := setupRouter(t, "KSC LC-39A", "Boca Chica")

	body := get(t, h, "/").Body.String()

	assert.Contains(t, body, `<option value="Boca Chica">Boca Chica</option>`)
	assert.NotContains(t, body, `<option value="VAFB SLC-4E">`)
}

func TestChartsSSE(t *testing.T) {
	tests := []struct {
		name     string
		signals  string
		wantBody []string
	}{
		{
			name:    "single site",
			signals: `{"site":"KSC LC-39A","payloadLo":0,"payloadHi":10000}`,
			wantBody: []string{
				"Success vs Failed Launches for KSC LC-39A",
				"Correlation between Payload and Success for KSC LC-39A",
			},
		},
		{
			name:    "string bounds are accepted",
			signals: `{"site":"ALL","payloadLo":"2000","payloadHi":"4000"}`,
			wantBody: []string{
				"Total Successful Launches by Site",
				"Correlation between Payload and Success for all Sites",
			},
		},
		{
			name:    "unreadable signals fall back to defaults",
			signals: `not json`,
			wantBody: []string{
				"Total Successful Launches by Site",
			},
		},
		{
			name:    "range with no launches shows placeholder",
			signals: `{"site":"ALL","payloadLo":20000,"payloadHi":30000}`,
			wantBody: []string{
				"No data",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupRouter(t)

			rec := get(t, h, "/dashboard/charts?datastar="+url.QueryEscape(tt.signals))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Equal(t, 2, strings.Count(body, "event: datastar-patch-elements"))
			assert.Contains(t, body, `id="pie-chart"`)
			assert.Contains(t, body, `id="scatter-chart"`)
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestOutcomesJSON(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		name   string
		target string
		site   string
		want   []analytics.OutcomeCount
	}{
		{
			name:   "missing site means all sites",
			target: "/api/outcomes",
			site:   analytics.AllSites,
			want: []analytics.OutcomeCount{
				{Key: "CCAFS LC-40", Count: 1},
				{Key: "CCAFS SLC-40", Count: 2},
				{Key: "KSC LC-39A", Count: 2},
				{Key: "VAFB SLC-4E", Count: 1},
			},
		},
		{
			name:   "single site",
			target: "/api/outcomes?site=" + url.QueryEscape("CCAFS LC-40"),
			site:   "CCAFS LC-40",
			want:   []analytics.OutcomeCount{{Key: "0", Count: 2}, {Key: "1", Count: 1}},
		},
		{
			name:   "unknown site",
			target: "/api/outcomes?site=nowhere",
			site:   "nowhere",
			want:   []analytics.OutcomeCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp OutcomesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.site, resp.Site)
			assert.Equal(t, tt.want, resp.Counts)
			require.NotNil(t, resp.Chart)
			assert.Equal(t, "pie", resp.Chart.ChartType)
		})
	}
}

func TestPointsJSON(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		name      string
		target    string
		wantRange analytics.Range
		wantLen   int
	}{
		{
			name:      "defaults to the full range",
			target:    "/api/points",
			wantRange: analytics.Range{Lo: 0, Hi: 9600},
			wantLen:   10,
		},
		{
			name:      "explicit bounds and site",
			target:    "/api/points?site=" + url.QueryEscape("KSC LC-39A") + "&lo=2490&hi=5300",
			wantRange: analytics.Range{Lo: 2490, Hi: 5300},
			wantLen:   3,
		},
		{
			name:      "bad bound falls back to dataset bound",
			target:    "/api/points?lo=abc&hi=600",
			wantRange: analytics.Range{Lo: 0, Hi: 600},
			wantLen:   3,
		},
		{
			name:      "inverted range is empty",
			target:    "/api/points?lo=5000&hi=1000",
			wantRange: analytics.Range{Lo: 5000, Hi: 1000},
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp PointsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantRange, resp.Range)
			assert.Len(t, resp.Points, tt.wantLen)
			assert.NotNil(t, resp.Points)
			assert.Equal(t, "scatter", resp.Chart.ChartType)
		})
	}
}

func TestPointsJSON_KeepsZeroCoordinates(t *testing.T) {
	h, _ := setupRouter(t)

	rec := get(t, h, "/api/points?site="+url.QueryEscape("CCAFS LC-40")+"&lo=0&hi=600")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"label":"v1.0, 0 kg, CCAFS LC-40","value":0,"x":0,"y":0`)
	assert.Contains(t, body, `"x":525,"y":0`)
}

func TestDashboardPage_MaxPayloadSelectable(t *testing.T) {
	h, _ := setupRouter(t)

	body := get(t, h, "/").Body.String()
	assert.Contains(t, body, `min="0" max="9600" step="any"`)
}

func TestRangeStep(t *testing.T) {
	tests := []struct {
		name   string
		bounds analytics.Range
		step   float64
		want   string
	}{
		{"span is a whole number of steps", analytics.Range{Lo: 0, Hi: 10000}, 1000, "1000"},
		{"span is offset from the step grid", analytics.Range{Lo: 0, Hi: 9600}, 1000, "any"},
		{"grid anchored at the minimum", analytics.Range{Lo: 600, Hi: 9600}, 1000, "1000"},
		{"single payload", analytics.Range{Lo: 500, Hi: 500}, 1000, "any"},
		{"no step", analytics.Range{Lo: 0, Hi: 10000}, 0, "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rangeStep(tt.bounds, tt.step))
		})
	}
}

func TestChartSVG(t *testing.T) {
	h, _ := setupRouter(t)

	for _, target := range []string{
		"/charts/pie.svg",
		"/charts/pie.svg?site=" + url.QueryEscape("VAFB SLC-4E"),
		"/charts/scatter.svg?lo=0&hi=5000",
		"/charts/scatter.svg?site=nowhere",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "<svg")
		})
	}
}

func TestViewsAreCounted(t *testing.T) {
	h, fixture := setupRouter(t)

	get(t, h, "/api/outcomes?site=nowhere")
	get(t, h, "/api/points")

	rec := httptest.NewRecorder()
	fixture.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `launchdash_view_requests_total{site="unknown",view="outcomes"} 1`)
	assert.Contains(t, body, `launchdash_view_requests_total{site="ALL",view="points"} 1`)
}
