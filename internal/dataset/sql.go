package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"  // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib"  // postgres driver (registers "pgx")
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"              // sqlite driver (pure Go)
)

// Column names of the launches table written by the snapshot store.
const (
	ColumnSite    = "site"
	ColumnPayload = "payload_mass"
	ColumnOutcome = "outcome"
	ColumnBooster = "booster_version"
)

// dialect quotes identifiers and string literals for one SQL engine.
type dialect struct {
	name       string
	identQuote string
}

var (
	sqliteDialect   = dialect{name: "sqlite", identQuote: `"`}
	postgresDialect = dialect{name: "postgres", identQuote: `"`}
	mysqlDialect    = dialect{name: "mysql", identQuote: "`"}
	duckdbDialect   = dialect{name: "duckdb", identQuote: `"`}
)

func (d dialect) ident(name string) string {
	q := d.identQuote
	return q + strings.ReplaceAll(name, q, q+q) + q
}

func (d dialect) literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// tableQuery selects the four launch fields from a store-shaped table.
func (d dialect) tableQuery(table string) string {
	return fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s",
		d.ident(ColumnSite), d.ident(ColumnPayload), d.ident(ColumnOutcome), d.ident(ColumnBooster),
		d.ident(table))
}

// readSQL opens driver/dsn and reads every row of table.
func readSQL(ctx context.Context, driver, dsn string, d dialect, table, origin string) ([]Record, error) {
	if dsn == "" {
		return nil, loadErr(origin, 0, fmt.Errorf("%w: no %s connection string or path configured", ErrNotFound, d.name))
	}
	if d == sqliteDialect {
		if _, err := os.Stat(dsn); errors.Is(err, fs.ErrNotExist) {
			return nil, loadErr(origin, 0, ErrNotFound)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, loadErr(origin, 0, fmt.Errorf("failed to open %s connection: %w", d.name, err))
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, loadErr(origin, 0, fmt.Errorf("failed to ping %s: %w", d.name, err))
	}

	return ReadRows(ctx, db, d.tableQuery(table), origin)
}

// readDuckDB reads a CSV file through DuckDB's read_csv_auto table function.
// Column types are inferred by DuckDB; validation matches the csv source.
func readDuckDB(ctx context.Context, path string, cols Columns) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadErr(path, 0, ErrNotFound)
		}
		return nil, loadErr(path, 0, err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, loadErr(path, 0, fmt.Errorf("failed to open duckdb connection: %w", err))
	}
	defer func() { _ = db.Close() }()

	d := duckdbDialect
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM read_csv_auto(%s, header = true)",
		d.ident(cols.Site), d.ident(cols.Payload), d.ident(cols.Outcome), d.ident(cols.Booster),
		d.literal(path))

	records, err := ReadRows(ctx, db, query, path)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && strings.Contains(strings.ToLower(le.Err.Error()), "not found") {
			le.Err = fmt.Errorf("%w: %v", ErrMissingColumn, le.Err)
		}
		return nil, err
	}
	return records, nil
}

// ReadRows runs query on db and converts each row into a Record.
// The query must return site, payload mass, outcome and booster version, in
// that order. Row numbers in errors are 1-based.
func ReadRows(ctx context.Context, db *sql.DB, query, origin string) ([]Record, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, loadErr(origin, 0, fmt.Errorf("query failed: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	line := 0
	for rows.Next() {
		line++
		var (
			site, booster    sql.NullString
			payload, outcome sql.NullFloat64
		)
		if err := rows.Scan(&site, &payload, &outcome, &booster); err != nil {
			return nil, loadErr(origin, line, fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		if !site.Valid || !payload.Valid || !outcome.Valid || !booster.Valid {
			return nil, loadErr(origin, line, fmt.Errorf("%w: unexpected NULL value", ErrMalformed))
		}

		var o int
		switch outcome.Float64 {
		case 0:
			o = OutcomeFailure
		case 1:
			o = OutcomeSuccess
		default:
			return nil, loadErr(origin, line, fmt.Errorf("%w: got %v", ErrInvalidOutcome, outcome.Float64))
		}

		records = append(records, Record{
			Site:           strings.TrimSpace(site.String),
			PayloadMass:    payload.Float64,
			Outcome:        o,
			BoosterVersion: strings.TrimSpace(booster.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(origin, line, fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	return records, nil
}
