// Package store persists validated launch snapshots in a SQLite database.
//
// The launches table uses the column names read back by the dataset sqlite
// source, so an imported database can be served directly.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errNotOpen = errors.New("database not opened")

// Import describes one snapshot written by Store.Import.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"rowCount"`
	PayloadMin float64   `json:"payloadMin"`
	PayloadMax float64   `json:"payloadMax"`
	ImportedAt time.Time `json:"importedAt"`
}

// Store is a SQLite-backed launch snapshot store.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and runs migrations.
// Use ":memory:" for an in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate runs all pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return errNotOpen
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func (s *Store) Version() (int64, error) {
	if s.db == nil {
		return 0, errNotOpen
	}
	return goose.GetDBVersion(s.db)
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Import replaces the stored launches with ds in one transaction and records
// the import.
func (s *Store) Import(ctx context.Context, ds *dataset.Dataset) (*Import, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	lo, hi := ds.PayloadBounds()
	imp := &Import{
		ID:         uuid.New().String(),
		Source:     ds.Source(),
		RowCount:   ds.Len(),
		PayloadMin: lo,
		PayloadMax: hi,
		ImportedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return nil, fmt.Errorf("failed to clear launches: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, row_count, payload_min, payload_max, imported_at) VALUES (?, ?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.RowCount, imp.PayloadMin, imp.PayloadMax, imp.ImportedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO launches (import_id, site, payload_mass, outcome, booster_version) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range ds.Records() {
		if _, err := stmt.ExecContext(ctx, imp.ID, r.Site, r.PayloadMass, r.Outcome, r.BoosterVersion); err != nil {
			return nil, fmt.Errorf("failed to insert launch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	s.logger.Info("snapshot imported",
		slog.String("id", imp.ID),
		slog.String("source", imp.Source),
		slog.Int("rows", imp.RowCount))
	return imp, nil
}

// Imports lists recorded imports, newest first.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, payload_min, payload_max, imported_at FROM imports ORDER BY imported_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	imports := []Import{}
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.RowCount, &imp.PayloadMin, &imp.PayloadMax, &imp.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// Snapshot reads the stored launches back as a validated dataset.
func (s *Store) Snapshot(ctx context.Context) (*dataset.Dataset, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY id`,
		dataset.ColumnSite, dataset.ColumnPayload, dataset.ColumnOutcome, dataset.ColumnBooster,
		dataset.DefaultTable)
	records, err := dataset.ReadRows(ctx, s.db, query, s.path)
	if err != nil {
		return nil, err
	}
	return dataset.New(records, s.path)
}
