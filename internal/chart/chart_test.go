package chart

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/analytics"
)

func TestTitles(t *testing.T) {
	assert.Equal(t, "Total Successful Launches by Site", PieTitle(analytics.AllSites))
	assert.Equal(t, "Success vs Failed Launches for KSC LC-39A", PieTitle("KSC LC-39A"))
	assert.Equal(t, "Correlation between Payload and Success for all Sites", ScatterTitle("all"))
	assert.Equal(t, "Correlation between Payload and Success for VAFB SLC-4E", ScatterTitle("VAFB SLC-4E"))
}

func TestPieConfig_AllSites(t *testing.T) {
	cfg := PieConfig(analytics.AllSites, []analytics.OutcomeCount{
		{Key: "SiteA", Count: 1},
		{Key: "SiteB", Count: 0},
	})

	assert.Equal(t, TypePie, cfg.ChartType)
	assert.False(t, cfg.Empty)
	require.Len(t, cfg.Series, 1)
	require.Len(t, cfg.Series[0].Points, 2)
	assert.Equal(t, "SiteA", cfg.Series[0].Points[0].Label)
	assert.Equal(t, 1.0, cfg.Series[0].Points[0].Value)
	assert.NotEqual(t, cfg.Series[0].Points[0].Color, cfg.Series[0].Points[1].Color)
}

func TestPieConfig_SingleSite(t *testing.T) {
	cfg := PieConfig("SiteA", []analytics.OutcomeCount{
		{Key: "0", Count: 3},
		{Key: "1", Count: 2},
	})

	points := cfg.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "Failure", points[0].Label)
	assert.Equal(t, FailureColor, points[0].Color)
	assert.Equal(t, "Success", points[1].Label)
	assert.Equal(t, SuccessColor, points[1].Color)
}

func TestPieConfig_Empty(t *testing.T) {
	assert.True(t, PieConfig("nowhere", []analytics.OutcomeCount{}).Empty)
	assert.True(t, PieConfig(analytics.AllSites, []analytics.OutcomeCount{{Key: "SiteA", Count: 0}}).Empty)
}

func TestScatterConfig(t *testing.T) {
	points := []analytics.Point{
		{Site: "SiteA", PayloadMass: 500, Outcome: 1, BoosterVersion: "v1.0"},
		{Site: "SiteB", PayloadMass: 800, Outcome: 0, BoosterVersion: "FT"},
		{Site: "SiteA", PayloadMass: 900, Outcome: 1, BoosterVersion: "FT"},
	}

	cfg := ScatterConfig(analytics.AllSites, points, analytics.Range{Lo: 0, Hi: 1000})

	assert.Equal(t, TypeScatter, cfg.ChartType)
	assert.Equal(t, PayloadAxis, cfg.XAxis)
	assert.Equal(t, OutcomeAxis, cfg.YAxis)
	assert.Equal(t, &Range{Min: 0, Max: 1000}, cfg.XRange)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "FT", cfg.Series[0].Name)
	assert.Equal(t, "v1.0", cfg.Series[1].Name)
	require.Len(t, cfg.Series[0].Points, 2)
	assert.Equal(t, 800.0, cfg.Series[0].Points[0].X)
	assert.Equal(t, 0.0, cfg.Series[0].Points[0].Y)
	assert.Equal(t, "FT, 800 kg, SiteB", cfg.Series[0].Points[0].Label)
}

func TestScatterConfig_EmptyMarshalsSeriesArray(t *testing.T) {
	cfg := ScatterConfig("SiteA", []analytics.Point{}, analytics.Range{Lo: 0, Hi: 10})
	assert.True(t, cfg.Empty)

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"series":[]`)
}

func TestConfig_MarshalsZeroValues(t *testing.T) {
	pie, err := json.Marshal(PieConfig(analytics.AllSites, []analytics.OutcomeCount{
		{Key: "SiteA", Count: 2},
		{Key: "SiteB", Count: 0},
	}))
	require.NoError(t, err)
	assert.Contains(t, string(pie), `{"label":"SiteB","value":0,`)

	scatter, err := json.Marshal(ScatterConfig("SiteA", []analytics.Point{
		{Site: "SiteA", PayloadMass: 0, Outcome: 0, BoosterVersion: "v1.0"},
	}, analytics.Range{Lo: 0, Hi: 600}))
	require.NoError(t, err)
	assert.Contains(t, string(scatter), `"x":0,"y":0`)
}

func TestRenderPie(t *testing.T) {
	cfg := PieConfig("SiteA", []analytics.OutcomeCount{{Key: "0", Count: 1}, {Key: "1", Count: 2}})

	var buf bytes.Buffer
	require.NoError(t, RenderPie(&buf, cfg))
	assert.Contains(t, buf.String(), "<svg")
	assert.NotContains(t, buf.String(), "No data")
}

func TestRenderPie_SingleSlice(t *testing.T) {
	cfg := PieConfig("SiteA", []analytics.OutcomeCount{{Key: "1", Count: 2}})

	var buf bytes.Buffer
	require.NoError(t, RenderPie(&buf, cfg))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPie(&buf, PieConfig("Boca <Chica>", []analytics.OutcomeCount{})))
	assert.Contains(t, buf.String(), "No data")
	assert.Contains(t, buf.String(), "Boca &lt;Chica&gt;")

	buf.Reset()
	require.NoError(t, RenderScatter(&buf, ScatterConfig("SiteA", []analytics.Point{}, analytics.Range{Lo: 1, Hi: 2})))
	assert.Contains(t, buf.String(), "No data")
}

func TestRenderScatter(t *testing.T) {
	tests := []struct {
		name   string
		points []analytics.Point
		r      analytics.Range
	}{
		{
			name: "several series",
			points: []analytics.Point{
				{Site: "SiteA", PayloadMass: 500, Outcome: 1, BoosterVersion: "v1.0"},
				{Site: "SiteB", PayloadMass: 800, Outcome: 0, BoosterVersion: "FT"},
			},
			r: analytics.Range{Lo: 0, Hi: 1000},
		},
		{
			name:   "single point on a degenerate range",
			points: []analytics.Point{{Site: "SiteA", PayloadMass: 500, Outcome: 1, BoosterVersion: "B5"}},
			r:      analytics.Range{Lo: 500, Hi: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderScatter(&buf, ScatterConfig(analytics.AllSites, tt.points, tt.r)))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRender_WrongType(t *testing.T) {
	var buf bytes.Buffer
	pie := PieConfig("SiteA", nil)
	assert.ErrorIs(t, RenderScatter(&buf, pie), ErrChartType)
	assert.ErrorIs(t, RenderPie(&buf, nil), ErrChartType)
}
