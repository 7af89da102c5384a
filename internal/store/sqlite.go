package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	location   TEXT NOT NULL,
	criteria   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	results    TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_location ON runs(location);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, criteria dealfinder.Criteria) (*Run, error) {
	run := &Run{
		ID:        uuid.New(),
		Location:  criteria.Location,
		Criteria:  criteria,
		Status:    StatusRunning,
		CreatedAt: time.Now().UTC(),
	}
	run.UpdatedAt = run.CreatedAt

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal criteria")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, location, criteria, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Location, string(criteriaJSON), run.Status,
		run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, id uuid.UUID, status string, results *dealfinder.Results) error {
	var resultsJSON any
	if results != nil {
		b, err := json.Marshal(results)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal results")
		}
		resultsJSON = string(b)
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, results = ?, updated_at = ? WHERE id = ?`,
		status, resultsJSON, time.Now().UTC(), id.String())
	return eris.Wrap(err, "sqlite: update run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, location, criteria, status, results, created_at, updated_at
		 FROM runs WHERE id = ?`, id.String())
	return scanRun(rowScanner{row})
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location, criteria, status, results, created_at, updated_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rowScanner{rows})
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

// scanner is the shared subset of sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type rowScanner struct {
	scanner
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		idStr, criteriaJSON string
		resultsJSON         sql.NullString
		run                 Run
	)
	err := row.Scan(&idStr, &run.Location, &criteriaJSON, &run.Status,
		&resultsJSON, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}

	run.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, eris.Wrap(err, "store: parse run id")
	}
	if err := json.Unmarshal([]byte(criteriaJSON), &run.Criteria); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal criteria")
	}
	if resultsJSON.Valid && resultsJSON.String != "" {
		run.Results = &dealfinder.Results{}
		if err := json.Unmarshal([]byte(resultsJSON.String), run.Results); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal results")
		}
	}
	return &run, nil
}
