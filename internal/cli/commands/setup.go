package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.FromContext(cmd.Context())
	if r == nil {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadDataset loads the configured launch snapshot.
func (c *CommandContext) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	opts := c.Cfg.LoadOptions()
	opts.Logger = c.Logger

	ds, err := dataset.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

// Sites returns the configured dropdown sites, or the dataset's own sites.
func (c *CommandContext) Sites(ds *dataset.Dataset) []string {
	if len(c.Cfg.Sites) > 0 {
		return c.Cfg.Sites
	}
	return ds.Sites()
}
