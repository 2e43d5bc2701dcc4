package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS feature_tables (
	name     TEXT PRIMARY KEY,
	rows     INTEGER NOT NULL,
	cols     INTEGER NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS feature_columns (
	table_name TEXT NOT NULL,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	cells      TEXT NOT NULL,
	PRIMARY KEY (table_name, position)
);`

// FeatureStore caches feature tables in SQLite so the modeling stage can
// restart from a generated table without re-running feature generation.
type FeatureStore struct {
	db *sqlx.DB
}

// NewFeatureStore opens (creating if needed) the SQLite cache at path.
func NewFeatureStore(path string) (*FeatureStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.StoreError("failed to open feature cache", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.StoreError("failed to initialize feature cache schema", err)
	}
	return &FeatureStore{db: db}, nil
}

// SaveTable persists the table under name, replacing any prior version.
// Columns are stored as JSON cell arrays, one row per column, which keeps
// the schema stable across arbitrarily wide feature tables.
func (s *FeatureStore) SaveTable(ctx context.Context, name string, table *survey.Table) error {
	if table == nil || table.NumCols() == 0 {
		return errors.InvalidInput(fmt.Sprintf("cannot cache empty table %q", name))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.StoreError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feature_columns WHERE table_name = ?`, name); err != nil {
		return errors.StoreError("failed to clear prior columns", err)
	}

	for position, colName := range table.ColumnNames() {
		cells, err := table.TextColumn(colName)
		if err != nil {
			return fmt.Errorf("failed to serialize column %q: %w", colName, err)
		}
		payload, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("failed to marshal column %q: %w", colName, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO feature_columns (table_name, position, name, cells) VALUES (?, ?, ?, ?)`,
			name, position, colName, string(payload))
		if err != nil {
			return errors.StoreError(fmt.Sprintf("failed to insert column %q", colName), err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO feature_tables (name, rows, cols, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET rows = excluded.rows, cols = excluded.cols, saved_at = excluded.saved_at`,
		name, table.NumRows(), table.NumCols(), time.Now().UTC())
	if err != nil {
		return errors.StoreError("failed to upsert table manifest", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreError("failed to commit feature cache", err)
	}
	log.Printf("[FeatureStore] Cached table %q (%d columns, %d rows)", name, table.NumCols(), table.NumRows())
	return nil
}

// LoadTable reads a cached table back, columns in original order.
func (s *FeatureStore) LoadTable(ctx context.Context, name string) (*survey.Table, error) {
	manifest, err := s.Manifest(ctx, name)
	if err != nil {
		return nil, err
	}

	type columnRow struct {
		Name  string `db:"name"`
		Cells string `db:"cells"`
	}
	var columns []columnRow
	err = s.db.SelectContext(ctx, &columns,
		`SELECT name, cells FROM feature_columns WHERE table_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, errors.StoreError(fmt.Sprintf("failed to load columns for %q", name), err)
	}

	table := survey.NewTable()
	for _, col := range columns {
		var cells []string
		if err := json.Unmarshal([]byte(col.Cells), &cells); err != nil {
			return nil, errors.StoreError(fmt.Sprintf("corrupt cached column %q", col.Name), err)
		}
		if err := table.AddTextColumn(col.Name, cells); err != nil {
			return nil, fmt.Errorf("failed to rebuild column %q: %w", col.Name, err)
		}
	}

	if table.NumRows() != manifest.Rows || table.NumCols() != manifest.Cols {
		return nil, errors.StoreError(
			fmt.Sprintf("cached table %q shape %dx%d does not match manifest %dx%d",
				name, table.NumRows(), table.NumCols(), manifest.Rows, manifest.Cols), nil)
	}
	log.Printf("[FeatureStore] Loaded table %q (%d columns, %d rows)", name, table.NumCols(), table.NumRows())
	return table, nil
}

// Manifest returns the cached table's shape and save time without loading
// cell data. A missing entry reports ARTIFACT_MISSING.
func (s *FeatureStore) Manifest(ctx context.Context, name string) (*ports.TableManifest, error) {
	var row struct {
		Name    string    `db:"name"`
		Rows    int       `db:"rows"`
		Cols    int       `db:"cols"`
		SavedAt time.Time `db:"saved_at"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT name, rows, cols, saved_at FROM feature_tables WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return nil, errors.ArtifactMissing(fmt.Sprintf("cached table %q", name))
	}
	if err != nil {
		return nil, errors.StoreError(fmt.Sprintf("failed to read manifest for %q", name), err)
	}
	return &ports.TableManifest{Name: row.Name, Rows: row.Rows, Cols: row.Cols, SavedAt: row.SavedAt}, nil
}

// Close releases the underlying database handle.
func (s *FeatureStore) Close() error {
	return s.db.Close()
}
