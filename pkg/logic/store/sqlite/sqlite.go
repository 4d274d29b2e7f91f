// Package sqlite implements the run archive on SQLite via the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Sideloading-Research/Inference/pkg/logic/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite run archive with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error { return s.db.Close() }

// initSchema creates tables if they don't exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	facts TEXT NOT NULL,
	rules TEXT NOT NULL,
	iterations INTEGER NOT NULL,
	contradictions TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_derivations (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	conclusion TEXT NOT NULL,
	justification TEXT NOT NULL,
	depth INTEGER NOT NULL,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun implements store.Store.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	facts, err := json.Marshal(r.Facts)
	if err != nil {
		return err
	}
	rules, err := json.Marshal(r.Rules)
	if err != nil {
		return err
	}
	contradictions, err := json.Marshal(r.Contradictions)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, created_at, facts, rules, iterations, contradictions)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(facts), string(rules), r.Iterations, string(contradictions)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_derivations WHERE run_id = ?`, r.ID); err != nil {
		return err
	}
	for i, d := range r.Derived {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_derivations (run_id, seq, conclusion, justification, depth)
			 VALUES (?, ?, ?, ?, ?)`,
			r.ID, i, d.Conclusion, d.Justification, d.Depth); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetRun implements store.Store.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, facts, rules, iterations, contradictions FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	derived, err := s.loadDerivations(ctx, id)
	if err != nil {
		return store.Run{}, false, err
	}
	r.Derived = derived
	return r, true, nil
}

// ListRuns implements store.Store, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, facts, rules, iterations, contradictions
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		derived, err := s.loadDerivations(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Derived = derived
	}
	return out, nil
}

func (s *sqliteStore) loadDerivations(ctx context.Context, runID string) ([]store.DerivedFact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conclusion, justification, depth FROM run_derivations
		 WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.DerivedFact
	for rows.Next() {
		var d store.DerivedFact
		if err := rows.Scan(&d.Conclusion, &d.Justification, &d.Depth); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var (
		r              store.Run
		createdAt      string
		facts          string
		rules          string
		contradictions string
	)
	if err := row.Scan(&r.ID, &createdAt, &facts, &rules, &r.Iterations, &contradictions); err != nil {
		return store.Run{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Run{}, err
	}
	r.CreatedAt = t

	if err := json.Unmarshal([]byte(facts), &r.Facts); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(rules), &r.Rules); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(contradictions), &r.Contradictions); err != nil {
		return store.Run{}, err
	}
	return r, nil
}
