package dashboard

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	ds      *dataset.Dataset
	sites   []string
	title   string
	slider  Slider
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(opts Options) *Handlers {
	h := &Handlers{
		ds:      opts.Dataset,
		sites:   opts.Sites,
		title:   opts.Title,
		slider:  opts.Slider,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if len(h.sites) == 0 {
		h.sites = h.ds.Sites()
	}
	if h.title == "" {
		h.title = DefaultTitle
	}
	if h.slider.Step <= 0 {
		h.slider.Step = DefaultSlider().Step
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h
}

// DashboardPage renders the full page with both charts for the default selection.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	bounds := analytics.FullRange(h.ds)
	sel := analytics.Selector{Site: analytics.AllSites, Payload: bounds}

	view := PageView{
		Title:    h.title,
		Options:  h.siteOptions(),
		Selector: sel,
		Bounds:   bounds,
		Step:     h.slider.Step,
		Marks:    common.SliderMarks(bounds.Lo, bounds.Hi, h.slider.MarkInterval),
		Pie:      h.pieConfig(sel.Site),
		Scatter:  h.scatterConfig(sel),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := common.Page(h.title, DashboardBody(view)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ChartsSSE re-renders both charts for the selection carried in the request
// signals and patches them into the page.
func (h *Handlers) ChartsSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("unreadable signals, using defaults", "error", err)
		signals = Signals{}
	}
	sel := selectorFromSignals(signals, analytics.FullRange(h.ds))

	sse := datastar.NewSSE(w, r)

	if err := sse.PatchElementTempl(PieChart(h.pieConfig(sel.Site))); err != nil {
		h.logger.Debug("pie chart patch failed", "error", err)
		return
	}
	if err := sse.PatchElementTempl(ScatterChart(h.scatterConfig(sel))); err != nil {
		h.logger.Debug("scatter chart patch failed", "error", err)
	}
}

// OutcomesJSON serves the outcome counts and pie config for ?site=.
func (h *Handlers) OutcomesJSON(w http.ResponseWriter, r *http.Request) {
	sel := selectorFromQuery(r.URL.Query(), analytics.FullRange(h.ds))
	counts := h.outcomes(sel.Site)

	writeJSON(w, OutcomesResponse{
		Site:   sel.Site,
		Counts: counts,
		Chart:  chart.PieConfig(sel.Site, counts),
	})
}

// PointsJSON serves the correlation points and scatter config for ?site=&lo=&hi=.
func (h *Handlers) PointsJSON(w http.ResponseWriter, r *http.Request) {
	sel := selectorFromQuery(r.URL.Query(), analytics.FullRange(h.ds))
	points := h.points(sel)

	writeJSON(w, PointsResponse{
		Site:   sel.Site,
		Range:  sel.Payload,
		Points: points,
		Chart:  chart.ScatterConfig(sel.Site, points, sel.Payload),
	})
}

// PieSVG serves the outcome pie as an SVG image.
func (h *Handlers) PieSVG(w http.ResponseWriter, r *http.Request) {
	sel := selectorFromQuery(r.URL.Query(), analytics.FullRange(h.ds))

	var buf bytes.Buffer
	if err := chart.RenderPie(&buf, h.pieConfig(sel.Site)); err != nil {
		h.logger.Error("pie render failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSVG(w, buf.Bytes())
}

// ScatterSVG serves the payload/outcome scatter as an SVG image.
func (h *Handlers) ScatterSVG(w http.ResponseWriter, r *http.Request) {
	sel := selectorFromQuery(r.URL.Query(), analytics.FullRange(h.ds))

	var buf bytes.Buffer
	if err := chart.RenderScatter(&buf, h.scatterConfig(sel)); err != nil {
		h.logger.Error("scatter render failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSVG(w, buf.Bytes())
}

func (h *Handlers) siteOptions() []SiteOption {
	opts := make([]SiteOption, 0, len(h.sites)+1)
	opts = append(opts, SiteOption{Value: analytics.AllSites, Label: AllSitesLabel})
	for _, s := range h.sites {
		opts = append(opts, SiteOption{Value: s, Label: s})
	}
	return opts
}

func (h *Handlers) pieConfig(site string) *chart.Config {
	return chart.PieConfig(site, h.outcomes(site))
}

func (h *Handlers) scatterConfig(sel analytics.Selector) *chart.Config {
	return chart.ScatterConfig(sel.Site, h.points(sel), sel.Payload)
}

func (h *Handlers) outcomes(site string) []analytics.OutcomeCount {
	start := time.Now()
	counts := analytics.OutcomeCounts(h.ds, site)
	h.metrics.ObserveView(metrics.ViewOutcomes, h.siteLabel(site), len(counts), time.Since(start))
	return counts
}

func (h *Handlers) points(sel analytics.Selector) []analytics.Point {
	start := time.Now()
	points := analytics.CorrelationPoints(h.ds, sel.Site, sel.Payload)
	h.metrics.ObserveView(metrics.ViewPoints, h.siteLabel(sel.Site), len(points), time.Since(start))
	return points
}

// siteLabel bounds metric label cardinality to the known sites.
func (h *Handlers) siteLabel(site string) string {
	switch {
	case analytics.IsAllSites(site):
		return analytics.AllSites
	case h.ds.HasSite(site):
		return site
	default:
		return "unknown"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}
