package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tharagrowth/allocation"
	_ "modernc.org/sqlite"
)

// SQLite persists recommendations in a SQLite database.
type SQLite struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
	now func() time.Time
}

// OpenSQLite opens (or creates) the database and runs migrations. Use
// ":memory:" for a throw-away database.
func OpenSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps in-memory databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	s := &SQLite{db: db, log: log.With().Str("component", "store").Logger(), now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.log.Debug().Str("path", path).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recommendations (
			id        TEXT PRIMARY KEY,
			saved_at  INTEGER NOT NULL,
			strategy  TEXT NOT NULL,
			segment   TEXT NOT NULL,
			currency  TEXT NOT NULL,
			budget    TEXT NOT NULL,
			allocated TEXT NOT NULL,
			profile   TEXT NOT NULL,
			result    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_saved ON recommendations(saved_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, p allocation.Profile, r *allocation.PortfolioResult) error {
	if r.ID == "" {
		return errors.New("cannot save a recommendation without id")
	}
	profile, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	result, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO recommendations
		(id, saved_at, strategy, segment, currency, budget, allocated, profile, result)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			saved_at=excluded.saved_at, strategy=excluded.strategy, segment=excluded.segment,
			currency=excluded.currency, budget=excluded.budget, allocated=excluded.allocated,
			profile=excluded.profile, result=excluded.result`,
		r.ID, s.now().UnixMilli(), string(r.Strategy.Name), r.Segment,
		r.Budget.Currency(), r.Budget.Decimal().String(), r.TotalAllocated.Decimal().String(),
		string(profile), string(result),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", r.ID, err)
	}
	s.log.Debug().Str("id", r.ID).Msg("recommendation saved")
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*Record, error) {
	var (
		savedAt         int64
		profile, result string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT saved_at, profile, result FROM recommendations WHERE id = ?`, id,
	).Scan(&savedAt, &profile, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}

	rec := &Record{ID: id, SavedAt: time.UnixMilli(savedAt), Result: new(allocation.PortfolioResult)}
	if err := json.Unmarshal([]byte(profile), &rec.Profile); err != nil {
		return nil, fmt.Errorf("decode profile of %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(result), rec.Result); err != nil {
		return nil, fmt.Errorf("decode result of %q: %w", id, err)
	}
	return rec, nil
}

func (s *SQLite) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, saved_at, strategy, segment, currency, budget, allocated
		FROM recommendations ORDER BY saved_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum                        Summary
			savedAt                    int64
			strategy, cur, budget, all string
		)
		if err := rows.Scan(&sum.ID, &savedAt, &strategy, &sum.Segment, &cur, &budget, &all); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		sum.SavedAt = time.UnixMilli(savedAt)
		sum.Strategy = allocation.StrategyName(strategy)
		if sum.Budget, err = allocation.ParseMoney(budget, cur); err != nil {
			return nil, fmt.Errorf("list %q: %w", sum.ID, err)
		}
		if sum.Allocated, err = allocation.ParseMoney(all, cur); err != nil {
			return nil, fmt.Errorf("list %q: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
