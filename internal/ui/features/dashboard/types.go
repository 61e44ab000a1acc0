// Package dashboard provides the launch records dashboard page, its live chart
// updates and the JSON/SVG chart endpoints.
package dashboard

import (
	"log/slog"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/ui/features/common"
)

// DefaultTitle is the page heading when none is configured.
const DefaultTitle = "SpaceX Launch Records Dashboard"

// AllSitesLabel is the dropdown label of the all-sites option.
const AllSitesLabel = "All Sites"

// Element ids patched by the live update endpoint.
const (
	PieChartID     = "pie-chart"
	ScatterChartID = "scatter-chart"
)

// Slider configures the payload range control.
type Slider struct {
	Step         float64
	MarkInterval float64
}

// DefaultSlider returns 1000 kg steps with a mark every 2500 kg.
func DefaultSlider() Slider {
	return Slider{Step: 1000, MarkInterval: 2500}
}

// Options holds everything the dashboard handlers need.
type Options struct {
	Dataset *dataset.Dataset
	Sites   []string // dropdown sites; empty means the dataset's sites
	Title   string
	Slider  Slider
	Metrics *metrics.Metrics // optional
	Logger  *slog.Logger
}

// Signals is the client state sent by the page on every control change.
type Signals struct {
	Site      string    `json:"site"`
	PayloadLo FlexFloat `json:"payloadLo"`
	PayloadHi FlexFloat `json:"payloadHi"`
}

// SiteOption is one entry of the launch site dropdown.
type SiteOption struct {
	Value string
	Label string
}

// PageView is everything rendered on the full dashboard page.
type PageView struct {
	Title    string
	Options  []SiteOption
	Selector analytics.Selector
	Bounds   analytics.Range
	Step     float64
	Marks    []common.Mark
	Pie      *chart.Config
	Scatter  *chart.Config
}

// OutcomesResponse is the body of GET /api/outcomes.
type OutcomesResponse struct {
	Site   string                   `json:"site"`
	Counts []analytics.OutcomeCount `json:"counts"`
	Chart  *chart.Config            `json:"chart"`
}

// PointsResponse is the body of GET /api/points.
type PointsResponse struct {
	Site   string            `json:"site"`
	Range  analytics.Range   `json:"range"`
	Points []analytics.Point `json:"points"`
	Chart  *chart.Config     `json:"chart"`
}
