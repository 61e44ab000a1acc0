package commands

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/spf13/cobra"
)

// BoundsOutput is the JSON output for the bounds command.
type BoundsOutput struct {
	Source     string   `json:"source"`
	Records    int      `json:"records"`
	PayloadMin float64  `json:"payloadMin"`
	PayloadMax float64  `json:"payloadMax"`
	Sites      []string `json:"sites"`
}

// NewBoundsCommand creates the bounds command.
func NewBoundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Describe the loaded dataset",
		Long: `Print the record count, payload mass bounds and distinct launch sites
of the configured dataset. The payload bounds are the limits of the
dashboard's range control.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			ds, err := cc.LoadDataset(cmd.Context())
			if err != nil {
				return err
			}

			lo, hi := ds.PayloadBounds()
			out := BoundsOutput{
				Source:     ds.Source(),
				Records:    ds.Len(),
				PayloadMin: lo,
				PayloadMax: hi,
				Sites:      ds.Sites(),
			}
			return renderBounds(cc.Renderer, &out)
		},
	}
}

func renderBounds(r *output.Renderer, out *BoundsOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Dataset"))
		r.Println("")
		r.Println(output.FormatKeyValue("Source", out.Source))
		r.Println(output.FormatKeyValue("Records", r.Number(float64(out.Records))))
		r.Println(output.FormatKeyValue("Payload min (kg)", r.Number(out.PayloadMin)))
		r.Println(output.FormatKeyValue("Payload max (kg)", r.Number(out.PayloadMax)))
		r.Println(output.FormatKeyValue("Sites", strings.Join(out.Sites, ", ")))
	default:
		styles := r.Styles()
		r.Header(1, "Dataset")
		r.Printf("  %s %s\n", styles.Key.Render("Source:"), out.Source)
		r.Printf("  %s %s\n", styles.Key.Render("Records:"), r.Number(float64(out.Records)))
		r.Printf("  %s %s - %s kg\n", styles.Key.Render("Payload:"), r.Number(out.PayloadMin), r.Number(out.PayloadMax))
		r.Printf("  %s %s\n", styles.Key.Render("Sites ("+strconv.Itoa(len(out.Sites))+"):"), strings.Join(out.Sites, ", "))
	}
	return nil
}
