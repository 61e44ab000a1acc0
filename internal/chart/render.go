package chart

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default rendered size in pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 420
)

// ErrChartType is returned when a config is rendered as the wrong chart.
var ErrChartType = errors.New("chart: wrong chart type")

// RenderPie writes cfg as an SVG pie chart. A chart with no positive slice is
// written as a "No data" placeholder.
func RenderPie(w io.Writer, cfg *Config) error {
	if cfg == nil || cfg.ChartType != TypePie {
		return ErrChartType
	}

	var values []gochart.Value
	for _, s := range cfg.Series {
		for _, p := range s.Points {
			if p.Value <= 0 {
				continue
			}
			values = append(values, gochart.Value{
				Label: fmt.Sprintf("%s (%s)", p.Label, formatNumber(p.Value)),
				Value: p.Value,
				Style: gochart.Style{FillColor: drawing.ColorFromHex(trimHash(p.Color))},
			})
		}
	}
	if cfg.Empty || len(values) == 0 {
		return writePlaceholder(w, cfg.Title)
	}

	pie := gochart.PieChart{
		Title:  cfg.Title,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Values: values,
	}
	if err := pie.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// RenderScatter writes cfg as an SVG scatter chart, one dot series per booster
// category. An empty chart is written as a "No data" placeholder.
func RenderScatter(w io.Writer, cfg *Config) error {
	if cfg == nil || cfg.ChartType != TypeScatter {
		return ErrChartType
	}
	if cfg.Empty || len(cfg.Series) == 0 {
		return writePlaceholder(w, cfg.Title)
	}

	series := make([]gochart.Series, 0, len(cfg.Series))
	for _, s := range cfg.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    5,
				DotColor:    drawing.ColorFromHex(trimHash(s.Color)),
			},
		})
	}

	ch := gochart.Chart{
		Title:      cfg.Title,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  cfg.XAxis,
			Range: xRange(cfg),
		},
		YAxis: gochart.YAxis{
			Name:  cfg.YAxis,
			Range: &gochart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []gochart.Tick{
				{Value: -0.25, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 1.25, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

// xRange widens a degenerate payload range so the axis has a non-zero span.
func xRange(cfg *Config) gochart.Range {
	if cfg.XRange == nil {
		return nil
	}
	lo, hi := cfg.XRange.Min, cfg.XRange.Max
	if hi <= lo {
		lo, hi = lo-500, hi+500
		if lo < 0 {
			lo = 0
		}
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">` +
	`<rect width="100%%" height="100%%" fill="#ffffff"/>` +
	`<text x="50%%" y="32" text-anchor="middle" font-family="sans-serif" font-size="15" fill="#333333">%s</text>` +
	`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">No data</text>` +
	`</svg>`

func writePlaceholder(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, placeholderSVG,
		DefaultWidth, DefaultHeight, DefaultWidth, DefaultHeight, html.EscapeString(title))
	return err
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
