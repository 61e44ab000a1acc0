package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# launchdash configuration
#
# Every key can be overridden with a LAUNCHDASH_* environment variable
# (LAUNCHDASH_UI__PORT=9000) or a command-line flag (--port 9000).

`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter launchdash.yaml",
		Long: `Write a launchdash.yaml with the default dataset, site list and
dashboard settings. Edit it to point at your own launch records.`,
		Example: `  # Initialize in current directory
  launchdash init

  # Initialize in a new directory
  launchdash init my-dashboard

  # Force overwrite existing config
  launchdash init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cc := NewCommandContext(cmd)

			path, err := writeStarterConfig(dir, force)
			if err != nil {
				return err
			}
			cc.Renderer.StatusLine(path, "success", "")
			cc.Renderer.Success("launchdash project initialized!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func writeStarterConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.Default()); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
