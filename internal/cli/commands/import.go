package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/store"
	"github.com/spf13/cobra"
)

// DefaultStorePath is the snapshot database written by import.
const DefaultStorePath = "launches.db"

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Into    string
	History bool
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the dataset into a SQLite snapshot store",
		Long: `Load the configured dataset and write it into a SQLite database.

The previous snapshot is replaced in a single transaction and the import is
recorded with its row count and payload bounds. Point the dashboard at the
database with --source sqlite --data <file>.`,
		Example: `  # Import the CSV into launches.db
  launchdash import

  # Import into a custom file
  launchdash import --into /var/lib/launchdash/launches.db

  # Show previous imports
  launchdash import --history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Into, "into", DefaultStorePath, "SQLite database to write")
	cmd.Flags().BoolVar(&opts.History, "history", false, "List previous imports instead of importing")

	return cmd
}

func runImport(cmd *cobra.Command, opts *ImportOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	ctx := cmd.Context()

	st, err := store.Open(ctx, opts.Into, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if opts.History {
		imports, err := st.Imports(ctx)
		if err != nil {
			return err
		}
		return renderImports(r, imports)
	}

	ds, err := cc.LoadDataset(ctx)
	if err != nil {
		return err
	}

	imp, err := st.Import(ctx, ds)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(imp)
	}
	r.StatusLine(opts.Into, "success", fmt.Sprintf("(%s rows)", r.Number(float64(imp.RowCount))))
	r.Success("Imported snapshot " + imp.ID)
	return nil
}

func renderImports(r *output.Renderer, imports []store.Import) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(imports)
	}

	rows := make([][]string, 0, len(imports))
	for _, imp := range imports {
		rows = append(rows, []string{
			imp.ID,
			imp.Source,
			strconv.Itoa(imp.RowCount),
			r.Number(imp.PayloadMin) + " - " + r.Number(imp.PayloadMax),
			imp.ImportedAt.Local().Format(time.DateTime),
		})
	}
	r.Header(1, "Imports")
	r.Table([]string{"ID", "Source", "Rows", "Payload (kg)", "Imported"}, rows)
	return nil
}
