package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/ui/features/common"
)

const (
	sitePlaceholder = "Select a Launch Site here"
	rangeLabel      = "Payload range (Kg):"
	chartsEndpoint  = "/dashboard/charts"
)

// PieChart renders the outcome pie inside its patch target.
func PieChart(cfg *chart.Config) templ.Component {
	return chartFrame(PieChartID, cfg, chart.RenderPie)
}

// ScatterChart renders the payload scatter inside its patch target.
func ScatterChart(cfg *chart.Config) templ.Component {
	return chartFrame(ScatterChartID, cfg, chart.RenderScatter)
}

func chartFrame(id string, cfg *chart.Config, render func(io.Writer, *chart.Config) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<div id="` + id + `" class="chart" aria-label="` + templ.EscapeString(cfg.Title) + `">`)
		if err := render(&buf, cfg); err != nil {
			return err
		}
		buf.WriteString(`</div>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// DashboardBody renders the page content: heading, site dropdown, pie chart,
// payload range control and scatter chart.
func DashboardBody(v PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(map[string]any{
			"site":      v.Selector.Site,
			"payloadLo": v.Selector.Payload.Lo,
			"payloadHi": v.Selector.Payload.Hi,
		})
		if err != nil {
			return err
		}
		refresh := `@get('` + chartsEndpoint + `')`

		var b strings.Builder
		b.WriteString(`<main class="dashboard" data-signals="` + templ.EscapeString(string(signals)) + `">`)
		b.WriteString(`<h1 class="title">` + templ.EscapeString(v.Title) + `</h1>`)

		b.WriteString(`<label class="visually-hidden" for="site-dropdown">` + sitePlaceholder + `</label>`)
		b.WriteString(`<select id="site-dropdown" class="site-dropdown" title="` + sitePlaceholder +
			`" data-bind:site data-on:change="` + refresh + `">`)
		for _, opt := range v.Options {
			b.WriteString(`<option value="` + templ.EscapeString(opt.Value) + `"`)
			if opt.Value == v.Selector.Site {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + templ.EscapeString(opt.Label) + `</option>`)
		}
		b.WriteString(`</select><br>`)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := PieChart(v.Pie).Render(ctx, w); err != nil {
			return err
		}

		b.Reset()
		b.WriteString(`<br><p class="range-label">` + rangeLabel + `</p>`)
		b.WriteString(`<div class="payload-range">`)
		b.WriteString(rangeInput("payload-lo", "payloadLo", v, v.Selector.Payload.Lo, refresh))
		b.WriteString(rangeInput("payload-hi", "payloadHi", v, v.Selector.Payload.Hi, refresh))
		b.WriteString(`<datalist id="payload-marks">`)
		for _, m := range v.Marks {
			b.WriteString(`<option value="` + common.FormatKg(m.Value) + `" label="` + templ.EscapeString(m.Label) + `"></option>`)
		}
		b.WriteString(`</datalist>`)
		b.WriteString(`<div class="range-marks">`)
		for _, m := range v.Marks {
			b.WriteString(`<span>` + templ.EscapeString(m.Label) + `</span>`)
		}
		b.WriteString(`</div>`)
		b.WriteString(`<output class="range-value" data-text="$payloadLo + ' – ' + $payloadHi + ' Kg'">` +
			common.FormatKg(v.Selector.Payload.Lo) + ` – ` + common.FormatKg(v.Selector.Payload.Hi) + ` Kg</output>`)
		b.WriteString(`</div>`)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := ScatterChart(v.Scatter).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</main>`)
		return err
	})
}

func rangeInput(id, signal string, v PageView, value float64, refresh string) string {
	return `<input type="range" id="` + id + `" list="payload-marks"` +
		` min="` + common.FormatKg(v.Bounds.Lo) + `" max="` + common.FormatKg(v.Bounds.Hi) + `"` +
		` step="` + rangeStep(v.Bounds, v.Step) + `" value="` + common.FormatKg(value) + `"` +
		` data-bind:` + kebab(signal) + ` data-on:change="` + refresh + `">`
}

// rangeStep returns the step attribute for the payload inputs. Browsers only
// accept min + k*step, so a span that is not a whole number of steps falls
// back to "any" to keep the dataset maximum selectable.
func rangeStep(bounds analytics.Range, step float64) string {
	span := bounds.Hi - bounds.Lo
	if step <= 0 || span <= 0 || math.Mod(span, step) != 0 {
		return "any"
	}
	return common.FormatKg(step)
}

// kebab converts a camelCase signal name to its attribute spelling.
func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
