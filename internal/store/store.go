// Package store persists deal-finder runs. Two backends: SQLite for local
// use and Postgres for shared deployments, selected by config.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/kwisener01/re-onmarket/internal/config"
	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

// Run statuses.
const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Run is one persisted workflow execution.
type Run struct {
	ID        uuid.UUID           `json:"id"`
	Location  string              `json:"location"`
	Criteria  dealfinder.Criteria `json:"criteria"`
	Status    string              `json:"status"`
	Results   *dealfinder.Results `json:"results,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Store defines run persistence.
type Store interface {
	// CreateRun records a new run in the running state.
	CreateRun(ctx context.Context, criteria dealfinder.Criteria) (*Run, error)
	// CompleteRun attaches results and moves the run to its final status.
	CompleteRun(ctx context.Context, id uuid.UUID, status string, results *dealfinder.Results) error
	// GetRun loads one run by id.
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// Migrate creates the schema if missing.
	Migrate(ctx context.Context) error
	Close() error
}

// Open builds the store selected by config.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
