// Package chart turns derived views into render-ready chart configs and SVG.
package chart

import (
	"fmt"

	"github.com/leapstack-labs/launchdash/internal/analytics"
)

// Chart types.
const (
	TypePie     = "pie"
	TypeScatter = "scatter"
)

// Axis and legend labels shared by the charts.
const (
	PayloadAxis = "Payload Mass (kg)"
	OutcomeAxis = "Launch Outcome"
)

// Outcome slice colours: failures red, successes green.
const (
	FailureColor = "#EF4444"
	SuccessColor = "#10B981"
)

var palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Config is a render-ready chart description, also served as JSON.
type Config struct {
	ChartType string   `json:"chartType"`
	Title     string   `json:"title"`
	XAxis     string   `json:"xAxis,omitempty"`
	YAxis     string   `json:"yAxis,omitempty"`
	XRange    *Range   `json:"xRange,omitempty"`
	Series    []Series `json:"series"`
	Empty     bool     `json:"empty"`
}

// Range bounds a continuous axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Series is one named group of points drawn in one colour.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Point is a pie slice (Label, Value) or a scatter dot (X, Y, Label as hover text).
// Zero is a real value for every numeric field: failed launches sit at y 0.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

// PieTitle returns the pie chart title for a site selection.
func PieTitle(site string) string {
	if analytics.IsAllSites(site) {
		return "Total Successful Launches by Site"
	}
	return fmt.Sprintf("Success vs Failed Launches for %s", site)
}

// ScatterTitle returns the scatter chart title for a site selection.
func ScatterTitle(site string) string {
	if analytics.IsAllSites(site) {
		return "Correlation between Payload and Success for all Sites"
	}
	return fmt.Sprintf("Correlation between Payload and Success for %s", site)
}

// PieConfig builds the outcome pie for site from its outcome counts.
// Slices are labelled by site name for the all-sites view and by outcome name
// otherwise. The chart is Empty when no slice has a positive count.
func PieConfig(site string, counts []analytics.OutcomeCount) *Config {
	all := analytics.IsAllSites(site)

	cfg := &Config{
		ChartType: TypePie,
		Title:     PieTitle(site),
		Series:    []Series{{Name: OutcomeAxis}},
		Empty:     true,
	}
	if all {
		cfg.Series[0].Name = "Successful launches"
	}

	points := make([]Point, 0, len(counts))
	for i, c := range counts {
		p := Point{Label: c.Key, Value: float64(c.Count)}
		if all {
			p.Color = palette[i%len(palette)]
		} else {
			p.Label = analytics.OutcomeLabel(c.Key)
			p.Color = outcomeColor(c.Key)
		}
		if c.Count > 0 {
			cfg.Empty = false
		}
		points = append(points, p)
	}
	cfg.Series[0].Points = points

	return cfg
}

// ScatterConfig builds the payload/outcome scatter for site. There is one
// series per booster version category; x is the payload mass and y the outcome.
// xr is the selected payload range and fixes the x axis.
func ScatterConfig(site string, points []analytics.Point, xr analytics.Range) *Config {
	cfg := &Config{
		ChartType: TypeScatter,
		Title:     ScatterTitle(site),
		XAxis:     PayloadAxis,
		YAxis:     OutcomeAxis,
		XRange:    &Range{Min: xr.Lo, Max: xr.Hi},
		Series:    []Series{},
		Empty:     len(points) == 0,
	}

	names, groups := analytics.ByBooster(points)
	for i, name := range names {
		s := Series{
			Name:   name,
			Color:  palette[i%len(palette)],
			Points: make([]Point, 0, len(groups[name])),
		}
		for _, p := range groups[name] {
			s.Points = append(s.Points, Point{
				Label: fmt.Sprintf("%s, %s kg, %s", name, formatNumber(p.PayloadMass), p.Site),
				X:     p.PayloadMass,
				Y:     float64(p.Outcome),
			})
		}
		cfg.Series = append(cfg.Series, s)
	}

	return cfg
}

func outcomeColor(key string) string {
	switch key {
	case "0":
		return FailureColor
	case "1":
		return SuccessColor
	default:
		return palette[0]
	}
}
