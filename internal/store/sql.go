package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pablasso/study/internal/logging"
	"github.com/pablasso/study/internal/study"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

// cursorID is the key of the single study_plan row.
const cursorID = 1

// weekRow is a row of study_weeks.
type weekRow struct {
	Week  int    `db:"week"`
	Title string `db:"title"`
}

// progressRow is a row of study_progress.
type progressRow struct {
	Week   int            `db:"week"`
	Day    int            `db:"day"`
	Topic  string         `db:"topic"`
	Status string         `db:"status"`
	Notes  sql.NullString `db:"notes"`
}

// cursorRow is the row of study_plan.
type cursorRow struct {
	Week int `db:"current_week"`
	Day  int `db:"current_day"`
}

// SQLStore keeps the plan in the study_plan, study_weeks and study_progress
// tables of a SQLite or PostgreSQL database. The position columns hold the
// plan order of weeks and days.
type SQLStore struct {
	db         *sqlx.DB
	title      string
	targetDate string
}

// ParseDatabaseURL picks the driver for a database URL. postgres:// and
// postgresql:// URLs use PostgreSQL; anything else is a SQLite path, with an
// optional sqlite:// prefix.
func ParseDatabaseURL(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return driverPostgres, url
	case strings.HasPrefix(url, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(url, "sqlite://")
	default:
		return driverSQLite, url
	}
}

// OpenSQL connects to the database and creates the tables if needed.
// Title and target date label the loaded plan; empty values use the defaults.
func OpenSQL(url, title, targetDate string) (*SQLStore, error) {
	driver, dsn := ParseDatabaseURL(url)

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == driverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s, err := NewSQLStore(db, title, targetDate)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open connection and creates the tables if needed.
func NewSQLStore(db *sqlx.DB, title, targetDate string) (*SQLStore, error) {
	if title == "" {
		title = study.DefaultTitle
	}
	if targetDate == "" {
		targetDate = study.DefaultTargetDate
	}

	s := &SQLStore{db: db, title: title, targetDate: targetDate}
	if err := s.initializeSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// initializeSchema creates the tables if they don't exist.
func (s *SQLStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS study_plan (
			id INTEGER PRIMARY KEY,
			current_week INTEGER NOT NULL,
			current_day INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_plan table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS study_weeks (
			week INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_weeks table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS study_progress (
			week INTEGER NOT NULL,
			day INTEGER NOT NULL,
			topic TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'upcoming',
			notes TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			completed_at TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (week, day)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_progress table: %w", err)
	}

	// tables created before positions were stored
	for _, table := range []string{"study_weeks", "study_progress"} {
		if err := s.ensurePositionColumn(table); err != nil {
			return err
		}
	}
	return nil
}

// ensurePositionColumn adds the position column to table when it is missing.
func (s *SQLStore) ensurePositionColumn(table string) error {
	if _, err := s.db.Exec("SELECT position FROM " + table + " LIMIT 1"); err == nil {
		return nil
	}
	if _, err := s.db.Exec("ALTER TABLE " + table + " ADD COLUMN position INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("failed to add position to %s: %w", table, err)
	}
	return nil
}

// Load reads the plan. An empty database loads the default plan.
func (s *SQLStore) Load(ctx context.Context) (study.Plan, error) {
	p, _, err := s.load(ctx, s.db, false)
	if err != nil {
		return study.Plan{}, err
	}
	if err := p.Validate(); err != nil {
		logging.Warn("store", "database plan: %v", err)
	}
	return p, nil
}

// Save replaces every stored week and day with the given plan.
func (s *SQLStore) Save(ctx context.Context, p study.Plan) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM study_progress"); err != nil {
		return fmt.Errorf("failed to clear study_progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM study_weeks"); err != nil {
		return fmt.Errorf("failed to clear study_weeks: %w", err)
	}
	if err := s.insertPlan(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}
	return nil
}

// CompleteDay marks a day completed and advances the current day.
func (s *SQLStore) CompleteDay(ctx context.Context, week, day int) (study.Plan, error) {
	return s.update(ctx, func(p study.Plan) (study.Plan, error) {
		return p.MarkDayCompleted(week, day)
	})
}

// SetNotes replaces the notes of a day.
func (s *SQLStore) SetNotes(ctx context.Context, week, day int, notes string) (study.Plan, error) {
	return s.update(ctx, func(p study.Plan) (study.Plan, error) {
		return p.SetNotes(week, day, notes)
	})
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// update runs fn on the stored plan inside a transaction and writes back the
// days whose status or notes changed, and the cursor.
func (s *SQLStore) update(ctx context.Context, fn func(study.Plan) (study.Plan, error)) (study.Plan, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return study.Plan{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, empty, err := s.load(ctx, tx, true)
	if err != nil {
		return study.Plan{}, err
	}
	if empty {
		if err := s.insertPlan(ctx, tx, current); err != nil {
			return study.Plan{}, err
		}
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	now := time.Now().UTC()
	for wi, w := range next.Weeks {
		for di, d := range w.Days {
			prev := current.Weeks[wi].Days[di]
			if prev.Status == d.Status && prev.Notes == d.Notes {
				continue
			}
			if err := s.updateDay(ctx, tx, w.Week, d, prev.Status != d.Status, now); err != nil {
				return current, err
			}
		}
	}

	if next.CurrentWeek != current.CurrentWeek || next.CurrentDay != current.CurrentDay {
		if err := s.saveCursor(ctx, tx, next); err != nil {
			return current, err
		}
	}

	if err := tx.Commit(); err != nil {
		return current, fmt.Errorf("failed to commit update: %w", err)
	}
	return next, nil
}

func (s *SQLStore) updateDay(ctx context.Context, tx *sqlx.Tx, week int, d study.Day, statusChanged bool, now time.Time) error {
	notes := sql.NullString{String: d.Notes, Valid: d.Notes != ""}

	var err error
	if statusChanged && d.Status == study.StatusCompleted {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE study_progress
			SET status = ?, notes = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
			WHERE week = ? AND day = ?
		`), string(d.Status), notes, now, week, d.Day)
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE study_progress
			SET status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
			WHERE week = ? AND day = ?
		`), string(d.Status), notes, week, d.Day)
	}
	if err != nil {
		return fmt.Errorf("failed to update week %d day %d: %w", week, d.Day, err)
	}
	return nil
}

// load reads the tables into a plan. The boolean reports an empty database, in
// which case the default plan is returned.
func (s *SQLStore) load(ctx context.Context, q sqlx.QueryerContext, forUpdate bool) (study.Plan, bool, error) {
	query := `
		SELECT week, day, topic, status, notes
		FROM study_progress
		ORDER BY position, week, day
	`
	if forUpdate && s.db.DriverName() == driverPostgres {
		query += " FOR UPDATE"
	}

	var rows []progressRow
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return study.Plan{}, false, fmt.Errorf("failed to load study progress: %w", err)
	}

	var weekRows []weekRow
	if err := sqlx.SelectContext(ctx, q, &weekRows,
		"SELECT week, title FROM study_weeks ORDER BY position, week",
	); err != nil {
		return study.Plan{}, false, fmt.Errorf("failed to load study weeks: %w", err)
	}

	if len(rows) == 0 && len(weekRows) == 0 {
		return study.DefaultPlan(), true, nil
	}

	p := study.Plan{
		Title:      s.title,
		TargetDate: s.targetDate,
		Weeks:      make([]study.Week, 0, len(weekRows)),
	}
	index := make(map[int]int, len(weekRows))
	for _, w := range weekRows {
		index[w.Week] = len(p.Weeks)
		p.Weeks = append(p.Weeks, study.Week{Week: w.Week, Title: w.Title, Days: []study.Day{}})
	}

	for _, row := range rows {
		status, err := study.ParseStatus(row.Status)
		if err != nil {
			return study.Plan{}, false, fmt.Errorf("week %d day %d: %w", row.Week, row.Day, err)
		}

		i, ok := index[row.Week]
		if !ok {
			i = len(p.Weeks)
			index[row.Week] = i
			p.Weeks = append(p.Weeks, study.Week{
				Week:  row.Week,
				Title: fmt.Sprintf("Week %d", row.Week),
				Days:  []study.Day{},
			})
		}

		p.Weeks[i].Days = append(p.Weeks[i].Days, study.Day{
			Day:    row.Day,
			Topic:  row.Topic,
			Status: status,
			Notes:  row.Notes.String,
		})
	}

	var cursor cursorRow
	err := sqlx.GetContext(ctx, q, &cursor, s.db.Rebind(
		"SELECT current_week, current_day FROM study_plan WHERE id = ?"), cursorID)
	switch {
	case err == nil:
		p.CurrentWeek, p.CurrentDay = cursor.Week, cursor.Day
	case errors.Is(err, sql.ErrNoRows):
		p.CurrentWeek, p.CurrentDay = deriveCursor(p)
	default:
		return study.Plan{}, false, fmt.Errorf("failed to load study plan cursor: %w", err)
	}

	return p, false, nil
}

// deriveCursor picks the cursor of a plan stored without one: the first
// current day, else the last completed day, else the first day.
func deriveCursor(p study.Plan) (week, day int) {
	week, day = 1, 1
	first, completed := true, false
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			switch {
			case d.Status == study.StatusCurrent:
				return w.Week, d.Day
			case d.Status == study.StatusCompleted:
				week, day = w.Week, d.Day
				completed = true
			case first && !completed:
				week, day = w.Week, d.Day
			}
			first = false
		}
	}
	return week, day
}

// insertPlan writes every week and day of p in plan order, and its cursor.
func (s *SQLStore) insertPlan(ctx context.Context, tx *sqlx.Tx, p study.Plan) error {
	now := time.Now().UTC()
	position := 0
	for wi, w := range p.Weeks {
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO study_weeks (week, title, position) VALUES (?, ?, ?)"),
			w.Week, w.Title, wi,
		); err != nil {
			return fmt.Errorf("failed to insert week %d: %w", w.Week, err)
		}

		for _, d := range w.Days {
			var completedAt sql.NullTime
			if d.Status == study.StatusCompleted {
				completedAt = sql.NullTime{Time: now, Valid: true}
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO study_progress (week, day, topic, status, notes, position, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`), w.Week, d.Day, d.Topic, string(d.Status),
				sql.NullString{String: d.Notes, Valid: d.Notes != ""}, position, completedAt,
			); err != nil {
				return fmt.Errorf("failed to insert week %d day %d: %w", w.Week, d.Day, err)
			}
			position++
		}
	}
	return s.saveCursor(ctx, tx, p)
}

// saveCursor replaces the stored cursor with the one of p.
func (s *SQLStore) saveCursor(ctx context.Context, tx *sqlx.Tx, p study.Plan) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM study_plan WHERE id = ?"), cursorID); err != nil {
		return fmt.Errorf("failed to clear study plan cursor: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(
		"INSERT INTO study_plan (id, current_week, current_day) VALUES (?, ?, ?)"),
		cursorID, p.CurrentWeek, p.CurrentDay,
	); err != nil {
		return fmt.Errorf("failed to save study plan cursor: %w", err)
	}
	return nil
}
