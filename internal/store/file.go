package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pablasso/study/internal/logging"
	"github.com/pablasso/study/internal/study"
)

const (
	planFileName    = "plan.json"
	lockFileName    = "plan.lock"
	historyFileName = "history.log"

	lockRetryInterval = 50 * time.Millisecond
)

// FileStore keeps the plan as plan.json in a directory.
//
// Until plan.json exists, the plan is seeded from the Markdown source (or the
// built-in default when the source cannot be read).
type FileStore struct {
	dir     string
	source  string
	lock    *Lock
	history *HistoryLog
}

// NewFileStore creates a store in dir seeded from the Markdown file at source.
// An empty source always seeds the default plan.
func NewFileStore(dir, source string) *FileStore {
	return &FileStore{
		dir:     dir,
		source:  source,
		lock:    NewLock(filepath.Join(dir, lockFileName)),
		history: NewHistoryLog(filepath.Join(dir, historyFileName)),
	}
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// History returns the store's history log.
func (s *FileStore) History() *HistoryLog {
	return s.history
}

// Load reads plan.json, or returns the seed plan if it does not exist yet.
func (s *FileStore) Load(ctx context.Context) (study.Plan, error) {
	p, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		return s.seed(), nil
	}
	if err != nil {
		return study.Plan{}, err
	}
	if err := p.Validate(); err != nil {
		logging.Warn("store", "%s: %v", s.planPath(), err)
	}
	return p, nil
}

// Save replaces the stored plan.
func (s *FileStore) Save(ctx context.Context, p study.Plan) error {
	_, total := p.Counts()
	_, err := s.update(ctx, EventPlanImported, map[string]any{
		"title": p.Title,
		"weeks": len(p.Weeks),
		"days":  total,
	}, func(study.Plan) (study.Plan, error) {
		return p, nil
	})
	return err
}

// CompleteDay marks a day completed and advances the current day.
func (s *FileStore) CompleteDay(ctx context.Context, week, day int) (study.Plan, error) {
	var progress int
	p, err := s.update(ctx, EventDayCompleted, map[string]any{
		"week": week,
		"day":  day,
	}, func(p study.Plan) (study.Plan, error) {
		next, err := p.MarkDayCompleted(week, day)
		progress = next.Progress()
		return next, err
	})
	if err == nil {
		logging.Debug("store", "completed week %d day %d (%d%%)", week, day, progress)
	}
	return p, err
}

// SetNotes replaces the notes of a day.
func (s *FileStore) SetNotes(ctx context.Context, week, day int, notes string) (study.Plan, error) {
	return s.update(ctx, EventNotesSaved, map[string]any{
		"week": week,
		"day":  day,
	}, func(p study.Plan) (study.Plan, error) {
		return p.SetNotes(week, day, notes)
	})
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

// update runs fn on the stored plan under the lock and writes the result.
// When fn fails nothing is written and the stored plan is returned.
func (s *FileStore) update(ctx context.Context, event string, data map[string]any, fn func(study.Plan) (study.Plan, error)) (study.Plan, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return study.Plan{}, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := s.lock.AcquireContext(ctx, lockRetryInterval); err != nil {
		return study.Plan{}, err
	}
	defer func() {
		if err := s.lock.Release(); err != nil {
			logging.Warn("store", "%v", err)
		}
	}()

	current, err := s.Load(ctx)
	if err != nil {
		return study.Plan{}, err
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	if err := s.write(next); err != nil {
		return current, err
	}

	if err := s.history.Append(event, data); err != nil {
		logging.Warn("store", "failed to append history: %v", err)
	}
	return next, nil
}

func (s *FileStore) planPath() string {
	return filepath.Join(s.dir, planFileName)
}

// read parses plan.json.
func (s *FileStore) read() (study.Plan, error) {
	data, err := os.ReadFile(s.planPath())
	if err != nil {
		return study.Plan{}, fmt.Errorf("failed to read plan.json: %w", err)
	}

	var p study.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return study.Plan{}, fmt.Errorf("failed to parse plan.json: %w", err)
	}
	return p, nil
}

// write atomically replaces plan.json using a temp file and rename.
func (s *FileStore) write(p study.Plan) error {
	path := s.planPath()
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// seed returns the plan to use before plan.json exists.
func (s *FileStore) seed() study.Plan {
	if s.source == "" {
		return study.DefaultPlan()
	}

	data, err := os.ReadFile(s.source)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("store", "failed to read %s: %v", s.source, err)
		}
		logging.Debug("store", "no plan document at %s, using default plan", s.source)
		return study.DefaultPlan()
	}
	return study.Parse(string(data))
}
