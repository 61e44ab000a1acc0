package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/ui"
	"github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
	Open      bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the launch records dashboard",
		Long: `Start a local web server with the interactive launch records dashboard.

The dashboard provides:
- A launch site dropdown (all sites or one site)
- A pie chart of successful launches by site, or outcomes at one site
- A payload range control
- A payload vs. outcome scatter chart, coloured by booster version

JSON views are served under /api and SVG charts under /charts.`,
		Example: `  # Start on the default port (8050)
  launchdash serve

  # Start on a custom port and open a browser
  launchdash serve --port 3000 --open

  # Expose Prometheus metrics on /metrics
  launchdash serve --metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8050)")
	cmd.Flags().String("title", "", "Dashboard title")
	cmd.Flags().Bool("metrics", false, "Serve Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the dashboard in a browser")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg
	r := cc.Renderer

	ds, err := cc.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
	}

	server := ui.NewServer(ui.Config{
		Dataset: ds,
		Sites:   cc.Sites(ds),
		Port:    cfg.UI.Port,
		Title:   cfg.UI.Title,
		Slider: dashboard.Slider{
			Step:         cfg.UI.SliderStep,
			MarkInterval: cfg.UI.MarkInterval,
		},
		Logger:  cc.Logger,
		Metrics: m,
	})

	autoOpen := (cfg.UI.AutoOpen || opts.Open) && !opts.NoBrowser
	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if autoOpen {
		go openBrowser(url)
	}

	r.Success(fmt.Sprintf("Dashboard on %s (%s launches)", url, r.Number(float64(ds.Len()))))
	r.Muted("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
