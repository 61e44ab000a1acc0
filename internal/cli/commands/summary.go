package commands

import (
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/spf13/cobra"
)

// SummaryOutput is the JSON output for the summary command.
type SummaryOutput struct {
	Site   string                   `json:"site"`
	Title  string                   `json:"title"`
	Counts []analytics.OutcomeCount `json:"counts"`
	Total  int                      `json:"total"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show launch outcome counts",
		Long: `Show the data behind the dashboard pie chart.

For all sites this is the number of successful launches per site. For a
single site it is the number of failed and successful launches there.`,
		Example: `  # Successful launches by site
  launchdash summary

  # Outcomes at one site, as JSON
  launchdash summary --site "KSC LC-39A" -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			ds, err := cc.LoadDataset(cmd.Context())
			if err != nil {
				return err
			}

			counts := analytics.OutcomeCounts(ds, site)
			out := SummaryOutput{
				Site:   site,
				Title:  chart.PieTitle(site),
				Counts: counts,
				Total:  analytics.TotalCount(counts),
			}
			if analytics.IsAllSites(site) {
				out.Site = analytics.AllSites
			}
			return renderSummary(cc.Renderer, &out)
		},
	}

	cmd.Flags().StringVarP(&site, "site", "s", analytics.AllSites, "Launch site, or ALL")
	return cmd
}

func renderSummary(r *output.Renderer, out *SummaryOutput) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	keyHeader, countHeader := "Outcome", "Launches"
	if analytics.IsAllSites(out.Site) {
		keyHeader, countHeader = "Site", "Successful launches"
	}

	rows := make([][]string, 0, len(out.Counts))
	for _, c := range out.Counts {
		rows = append(rows, []string{analytics.OutcomeLabel(c.Key), strconv.Itoa(c.Count)})
	}

	r.Header(1, out.Title)
	r.Table([]string{keyHeader, countHeader}, rows)
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatKeyValue("Total", r.Number(float64(out.Total))))
	} else {
		r.Muted("Total: " + r.Number(float64(out.Total)))
	}
	return nil
}
