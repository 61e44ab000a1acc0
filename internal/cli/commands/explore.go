package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/explore"
	"github.com/spf13/cobra"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Explore launches in the terminal",
		Long: `Open an interactive terminal view of the dashboard.

Cycle launch sites with the arrow keys and nudge the payload range with
[ ] (minimum) and { } (maximum). Outcome counts and the launches in range
update as you go.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !output.IsTTY(cmd.OutOrStdout()) {
				return errors.New("explore needs an interactive terminal; use summary or points instead")
			}

			cc := NewCommandContext(cmd)
			ds, err := cc.LoadDataset(cmd.Context())
			if err != nil {
				return err
			}

			model := explore.New(ds, explore.Options{
				Sites: cc.Sites(ds),
				Step:  cc.Cfg.UI.SliderStep,
				Title: cc.Cfg.UI.Title,
			})
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}
