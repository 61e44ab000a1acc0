// Package explore is a terminal version of the launch dashboard.
//
// The model holds the same selector as the web UI (a site and a payload
// range) and recomputes both views from the snapshot on every change.
package explore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// DefaultStep is the payload change per key press, in kg.
const DefaultStep = 1000

// Options configures a Model.
type Options struct {
	Sites []string // empty means the dataset's sites
	Step  float64  // 0 means DefaultStep
	Title string
}

// Model is the bubbletea model for the explorer.
type Model struct {
	ds     *dataset.Dataset
	title  string
	sites  []string // sites[0] is analytics.AllSites
	site   int
	bounds analytics.Range
	rng    analytics.Range
	step   float64

	counts []analytics.OutcomeCount
	points []analytics.Point

	keys   keyMap
	help   help.Model
	styles styles
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
	failed lipgloss.Style
}

// New creates an explorer over ds with the full range selected.
func New(ds *dataset.Dataset, opts Options) Model {
	sites := opts.Sites
	if len(sites) == 0 {
		sites = ds.Sites()
	}
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}
	title := opts.Title
	if title == "" {
		title = "Launch explorer"
	}

	m := Model{
		ds:     ds,
		title:  title,
		sites:  append([]string{analytics.AllSites}, sites...),
		bounds: analytics.FullRange(ds),
		step:   step,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: styles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			label:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			value:  lipgloss.NewStyle().Bold(true),
			muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			failed: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
	m.rng = m.bounds
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.NextSite):
			m.site = (m.site + 1) % len(m.sites)
		case key.Matches(msg, m.keys.PrevSite):
			m.site = (m.site + len(m.sites) - 1) % len(m.sites)
		case key.Matches(msg, m.keys.LoDown):
			m.rng.Lo = m.clamp(m.rng.Lo - m.step)
		case key.Matches(msg, m.keys.LoUp):
			m.rng.Lo = min(m.clamp(m.rng.Lo+m.step), m.rng.Hi)
		case key.Matches(msg, m.keys.HiDown):
			m.rng.Hi = max(m.clamp(m.rng.Hi-m.step), m.rng.Lo)
		case key.Matches(msg, m.keys.HiUp):
			m.rng.Hi = m.clamp(m.rng.Hi + m.step)
		case key.Matches(msg, m.keys.Reset):
			m.site = 0
			m.rng = m.bounds
		default:
			return m, nil
		}
		m.refresh()
	}
	return m, nil
}

func (m Model) clamp(v float64) float64 {
	return min(max(v, m.bounds.Lo), m.bounds.Hi)
}

func (m *Model) refresh() {
	site := m.Site()
	m.counts = analytics.OutcomeCounts(m.ds, site)
	m.points = analytics.CorrelationPoints(m.ds, site, m.rng)
}

// Site returns the selected site or analytics.AllSites.
func (m Model) Site() string { return m.sites[m.site] }

// Range returns the selected payload range.
func (m Model) Range() analytics.Range { return m.rng }

// Counts returns the current outcome counts.
func (m Model) Counts() []analytics.OutcomeCount { return m.counts }

// Points returns the current correlation points.
func (m Model) Points() []analytics.Point { return m.points }

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.title.Render(m.title))
	b.WriteString("\n\n")

	siteName := m.Site()
	if analytics.IsAllSites(siteName) {
		siteName = "All Sites"
	}
	fmt.Fprintf(&b, "%s %s  %s\n", s.label.Render("Site:"), s.value.Render(siteName),
		s.muted.Render(fmt.Sprintf("(%d/%d)", m.site+1, len(m.sites))))
	fmt.Fprintf(&b, "%s %s - %s kg  %s\n\n", s.label.Render("Payload:"),
		s.value.Render(kg(m.rng.Lo)), s.value.Render(kg(m.rng.Hi)),
		s.muted.Render(fmt.Sprintf("of %s - %s", kg(m.bounds.Lo), kg(m.bounds.Hi))))

	if analytics.IsAllSites(m.Site()) {
		b.WriteString(s.label.Render("Successful launches by site"))
	} else {
		b.WriteString(s.label.Render("Outcomes"))
	}
	b.WriteString("\n")
	if len(m.counts) == 0 {
		b.WriteString(s.muted.Render("  no launches"))
		b.WriteString("\n")
	}
	for _, c := range m.counts {
		fmt.Fprintf(&b, "  %-16s %4d\n", analytics.OutcomeLabel(c.Key), c.Count)
	}

	success := 0
	for _, p := range m.points {
		success += p.Outcome
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d launches in range, %s, %s\n",
		s.label.Render("Points:"), len(m.points),
		s.ok.Render(strconv.Itoa(success)+" succeeded"),
		s.failed.Render(strconv.Itoa(len(m.points)-success)+" failed"))

	names, series := analytics.ByBooster(m.points)
	for _, name := range names {
		fmt.Fprintf(&b, "  %-16s %4d\n", name, len(series[name]))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func kg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
