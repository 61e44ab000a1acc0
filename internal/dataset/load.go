package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Source kinds understood by Load.
const (
	SourceCSV      = "csv"
	SourceDuckDB   = "duckdb"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
)

// DefaultTable is the table read by the SQL-backed sources.
const DefaultTable = "launches"

// Sources lists every supported source kind.
func Sources() []string {
	return []string{SourceCSV, SourceDuckDB, SourceSQLite, SourcePostgres, SourceMySQL}
}

// IsValidSource reports whether kind names a supported source.
func IsValidSource(kind string) bool {
	for _, s := range Sources() {
		if strings.EqualFold(s, kind) {
			return true
		}
	}
	return false
}

// Columns maps the required fields to header names in a CSV file.
type Columns struct {
	Site    string `koanf:"site" yaml:"site"`
	Payload string `koanf:"payload" yaml:"payload"`
	Outcome string `koanf:"outcome" yaml:"outcome"`
	Booster string `koanf:"booster" yaml:"booster"`
}

// DefaultColumns returns the header names used by the published launch dataset.
func DefaultColumns() Columns {
	return Columns{
		Site:    "Launch Site",
		Payload: "Payload Mass (kg)",
		Outcome: "class",
		Booster: "Booster Version Category",
	}
}

// withDefaults fills any empty column name from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Site == "" {
		c.Site = d.Site
	}
	if c.Payload == "" {
		c.Payload = d.Payload
	}
	if c.Outcome == "" {
		c.Outcome = d.Outcome
	}
	if c.Booster == "" {
		c.Booster = d.Booster
	}
	return c
}

// Options controls how Load reads a dataset.
type Options struct {
	Source  string // one of the Source* kinds; empty means csv
	Path    string // file path for csv, duckdb and sqlite
	DSN     string // connection string for postgres and mysql
	Table   string // table for SQL sources; empty means DefaultTable
	Columns Columns
	Logger  *slog.Logger
}

// Load reads the dataset described by opts and returns an immutable snapshot.
// Every failure is returned as a *LoadError.
func Load(ctx context.Context, opts Options) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.Columns = opts.Columns.withDefaults()
	if opts.Table == "" {
		opts.Table = DefaultTable
	}

	kind := strings.ToLower(opts.Source)
	if kind == "" {
		kind = SourceCSV
	}

	start := time.Now()
	logger.Debug("loading dataset", "source", kind, "path", opts.Path)

	var (
		records []Record
		origin  string
		err     error
	)
	switch kind {
	case SourceCSV:
		origin = opts.Path
		records, err = readCSVFile(opts.Path, opts.Columns)
	case SourceDuckDB:
		origin = opts.Path
		records, err = readDuckDB(ctx, opts.Path, opts.Columns)
	case SourceSQLite:
		origin = opts.Path
		records, err = readSQL(ctx, "sqlite", opts.Path, sqliteDialect, opts.Table, origin)
	case SourcePostgres:
		origin = redactDSN(opts.DSN)
		records, err = readSQL(ctx, "pgx", opts.DSN, postgresDialect, opts.Table, origin)
	case SourceMySQL:
		origin = redactDSN(opts.DSN)
		records, err = readSQL(ctx, "mysql", opts.DSN, mysqlDialect, opts.Table, origin)
	default:
		return nil, loadErr(opts.Source, 0, fmt.Errorf("%w: %q (want one of %s)",
			ErrUnknownSource, opts.Source, strings.Join(Sources(), ", ")))
	}
	if err != nil {
		return nil, err
	}

	ds, err := New(records, origin)
	if err != nil {
		return nil, err
	}

	lo, hi := ds.PayloadBounds()
	logger.Info("dataset loaded",
		"source", kind,
		"records", ds.Len(),
		"sites", len(ds.Sites()),
		"payload_min", lo,
		"payload_max", hi,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return ds, nil
}

// redactDSN hides credentials in URL-style or key=value connection strings.
func redactDSN(dsn string) string {
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme < at {
			return dsn[:scheme+3] + "***" + dsn[at:]
		}
		return "***" + dsn[at:]
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=***"
		}
	}
	return strings.Join(fields, " ")
}
