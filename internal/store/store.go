// Package store persists study plans and applies day transitions to them.
package store

import (
	"context"

	"github.com/pablasso/study/internal/config"
	"github.com/pablasso/study/internal/study"
)

// Store loads a plan and applies changes to it as read-modify-write updates.
//
// A store that has never been written returns its seed plan from Load and
// persists it on the first mutation.
type Store interface {
	Load(ctx context.Context) (study.Plan, error)
	Save(ctx context.Context, p study.Plan) error
	CompleteDay(ctx context.Context, week, day int) (study.Plan, error)
	SetNotes(ctx context.Context, week, day int, notes string) (study.Plan, error)
	Close() error
}

// Open returns the store selected by the configuration: a SQL database when a
// database URL is set, the JSON plan file in the data directory otherwise.
func Open(cfg config.Config) (Store, error) {
	if cfg.UsesDatabase() {
		return OpenSQL(cfg.DatabaseURL, cfg.Title, cfg.TargetDate)
	}
	return NewFileStore(cfg.DataDir, cfg.PlanPath), nil
}
