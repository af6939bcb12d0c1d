package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	tableName    = "water_intake"
	volumeColumn = "amount_ml"
)

// legacyVolumeColumns are the names older files used for the volume column,
// in lookup order.
var legacyVolumeColumns = []string{"intake_ml", "amount"}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS water_intake (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id   TEXT    NOT NULL,
  date      TEXT    NOT NULL,
  amount_ml REAL    NOT NULL
);`

const createMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INTEGER PRIMARY KEY,
  name       TEXT    NOT NULL,
  applied_at TEXT    NOT NULL
);`

// migration is one versioned schema step. Versions are sequential from 1.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{version: 1, name: "water_intake", apply: adoptIntakeTable},
	{version: 2, name: "water_intake_user_date_index", apply: execSQL(
		`CREATE INDEX IF NOT EXISTS idx_water_intake_user_date ON water_intake(user_id, date);`,
	)},
}

func execSQL(q string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q)
		return err
	}
}

// applyMigrations brings the schema to the latest version, one transaction
// per pending step. Already-applied versions are skipped.
func applyMigrations(ctx context.Context, db *sql.DB, log *zap.Logger, now func() time.Time) error {
	if _, err := db.ExecContext(ctx, createMigrationsSQL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := runMigration(ctx, db, m, now); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		log.Info("applied schema migration", zap.Int("version", m.version), zap.String("name", m.name))
	}
	return nil
}

func runMigration(ctx context.Context, db *sql.DB, m migration, now func() time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := m.apply(ctx, tx); err != nil {
		return err
	}
	const q = `INSERT INTO schema_migrations(version, name, applied_at) VALUES (?, ?, ?);`
	if _, err := tx.ExecContext(ctx, q, m.version, m.name, now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations;`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// adoptIntakeTable creates the intake table, or rebuilds a pre-versioning one
// that stored volume under a legacy column name. Rows are copied only when a
// known legacy volume column exists.
func adoptIntakeTable(ctx context.Context, tx *sql.Tx) error {
	cols, err := tableColumns(ctx, tx, tableName)
	if err != nil {
		return err
	}
	if len(cols) == 0 || cols[volumeColumn] {
		_, err := tx.ExecContext(ctx, createTableSQL)
		return err
	}

	if _, err := tx.ExecContext(ctx, `ALTER TABLE water_intake RENAME TO water_intake_old;`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
		return err
	}
	for _, legacy := range legacyVolumeColumns {
		if !cols[legacy] {
			continue
		}
		// legacy comes from a fixed allow-list, never from input.
		q := fmt.Sprintf(`INSERT INTO water_intake (user_id, date, amount_ml)
SELECT user_id, date, %s FROM water_intake_old;`, legacy)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
		break
	}
	_, err = tx.ExecContext(ctx, `DROP TABLE water_intake_old;`)
	return err
}

// tableColumns returns the column names of table, empty when it does not exist.
func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM pragma_table_info(?);`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}
