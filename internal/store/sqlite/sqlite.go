package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/singhankit6748/Water-Tracker/internal/core"

	_ "modernc.org/sqlite" // pure-Go SQLite driver (no CGO)
)

// Store implements core.Store backed by SQLite.
type Store struct {
	db      *sql.DB
	log     *zap.Logger
	nowFunc func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the clock used for "now" and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.nowFunc = now }
}

// WithLogger sets the logger used for schema changes.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open opens (or creates) the SQLite DB at path. It does not touch the
// schema; call EnsureSchema once at startup.
func Open(path string, opts ...Option) (*Store, error) {
	// For modernc.org/sqlite, the DSN can be a simple file path.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Conservative pool settings for SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Pragmas to improve concurrency & reliability.
	_, _ = db.Exec("PRAGMA busy_timeout = 5000;")
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")

	s := &Store{db: db, log: zap.NewNop(), nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureSchema creates or upgrades the schema. Safe to call on every start;
// a second call is a no-op.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return applyMigrations(ctx, s.db, s.log, s.nowFunc)
}

// Close releases the underlying DB.
func (s *Store) Close() error { return s.db.Close() }

// Insert appends one intake event. A zero at means now; the stored date is
// at's calendar day in at's own location.
func (s *Store) Insert(ctx context.Context, userID string, amountML float64, at time.Time) error {
	const q = `INSERT INTO water_intake(user_id, date, amount_ml) VALUES (?, ?, ?);`
	if at.IsZero() {
		at = s.nowFunc()
	}
	if _, err := s.db.ExecContext(ctx, q, userID, at.Format(core.DateLayout), amountML); err != nil {
		return fmt.Errorf("insert intake: %w", err)
	}
	return nil
}

// Query returns userID's events inside filter's window, oldest first.
// Rows whose date does not parse are kept with an unknown weekday.
func (s *Store) Query(ctx context.Context, userID string, filter core.Filter) ([]core.Record, error) {
	q := `SELECT id, date, amount_ml FROM water_intake WHERE user_id = ?`
	args := []any{userID}
	if day, exact, ok := filter.Since(s.nowFunc()); ok {
		if exact {
			q += ` AND date = ?`
		} else {
			q += ` AND date >= ?`
		}
		args = append(args, day)
	}
	q += ` ORDER BY date, id;`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query intake: %w", err)
	}
	defer rows.Close()

	out := []core.Record{}
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.AmountML); err != nil {
			return nil, fmt.Errorf("scan intake: %w", err)
		}
		rec.Weekday = core.Weekday(rec.Date)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query intake: %w", err)
	}
	return out, nil
}

// TodayTotal sums userID's intake for today's date; zero when nothing matches.
func (s *Store) TodayTotal(ctx context.Context, userID string) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount_ml), 0.0) FROM water_intake WHERE user_id = ? AND date = ?;`
	var total float64
	today := s.nowFunc().Format(core.DateLayout)
	if err := s.db.QueryRowContext(ctx, q, userID, today).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum intake: %w", err)
	}
	return total, nil
}

// Compile-time check: *Store implements core.Store.
var _ core.Store = (*Store)(nil)
