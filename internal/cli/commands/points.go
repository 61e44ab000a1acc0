package commands

import (
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/analytics"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/spf13/cobra"
)

// PointsOptions holds options for the points command.
type PointsOptions struct {
	Site string
	Min  float64
	Max  float64
}

// PointsOutput is the JSON output for the points command.
type PointsOutput struct {
	Site   string            `json:"site"`
	Title  string            `json:"title"`
	Range  analytics.Range   `json:"range"`
	Points []analytics.Point `json:"points"`
}

// NewPointsCommand creates the points command.
func NewPointsCommand() *cobra.Command {
	opts := &PointsOptions{}

	cmd := &cobra.Command{
		Use:   "points",
		Short: "List launches in a payload range",
		Long: `List the launches behind the dashboard scatter chart: every launch
whose payload mass lies in [--min, --max], optionally at one site.
Unset bounds default to the dataset's smallest and largest payload.`,
		Example: `  # All launches
  launchdash points

  # Launches from one site carrying 2,000 to 5,000 kg
  launchdash points --site "KSC LC-39A" --min 2000 --max 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			ds, err := cc.LoadDataset(cmd.Context())
			if err != nil {
				return err
			}

			rng := analytics.FullRange(ds)
			if cmd.Flags().Changed("min") {
				rng.Lo = opts.Min
			}
			if cmd.Flags().Changed("max") {
				rng.Hi = opts.Max
			}
			if rng.Inverted() {
				cc.Renderer.Warning("--min is greater than --max; no launches can match")
			}

			site := opts.Site
			if analytics.IsAllSites(site) {
				site = analytics.AllSites
			}
			out := PointsOutput{
				Site:   site,
				Title:  chart.ScatterTitle(site),
				Range:  rng,
				Points: analytics.CorrelationPoints(ds, site, rng),
			}
			return renderPoints(cc.Renderer, &out)
		},
	}

	cmd.Flags().StringVarP(&opts.Site, "site", "s", analytics.AllSites, "Launch site, or ALL")
	cmd.Flags().Float64Var(&opts.Min, "min", 0, "Smallest payload mass in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&opts.Max, "max", 0, "Largest payload mass in kg (default: dataset maximum)")
	return cmd
}

func renderPoints(r *output.Renderer, out *PointsOutput) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	rows := make([][]string, 0, len(out.Points))
	for _, p := range out.Points {
		rows = append(rows, []string{
			p.Site,
			strconv.FormatFloat(p.PayloadMass, 'f', -1, 64),
			analytics.OutcomeLabel(strconv.Itoa(p.Outcome)),
			p.BoosterVersion,
		})
	}

	r.Header(1, out.Title)
	r.Muted("Payload " + r.Number(out.Range.Lo) + " - " + r.Number(out.Range.Hi) + " kg")
	r.Println("")
	r.Table([]string{"Site", chart.PayloadAxis, "Outcome", "Booster"}, rows)
	return nil
}
