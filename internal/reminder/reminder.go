// Package reminder announces the current study topic once a day.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pablasso/study/internal/logging"
	"github.com/pablasso/study/internal/study"
)

// PlanSource loads the plan to announce. store.Store satisfies it.
type PlanSource interface {
	Load(ctx context.Context) (study.Plan, error)
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(s study.Summary) error
}

// LogNotifier writes reminders to the log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(s study.Summary) error {
	logging.Info("reminder", "%s: week %d day %d: %s (%d%% complete, %d/%d days)",
		s.Title, s.CurrentWeek, s.CurrentDay, s.CurrentTopic, s.Progress, s.Completed, s.Total)
	return nil
}

// Reminder runs the daily reminder job.
type Reminder struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	source    PlanSource
	notifier  Notifier
	loc       *time.Location
	start     time.Time
	now       func() time.Time
}

// New schedules a reminder every day at the given HH:MM time in loc.
// The scheduler does not run until Start.
func New(source PlanSource, notifier Notifier, at string, loc *time.Location) (*Reminder, error) {
	if _, err := time.Parse("15:04", at); err != nil {
		return nil, fmt.Errorf("invalid reminder time %q: expected HH:MM", at)
	}
	if loc == nil {
		loc = time.Local
	}

	r := &Reminder{
		scheduler: gocron.NewScheduler(loc),
		source:    source,
		notifier:  notifier,
		loc:       loc,
		now:       time.Now,
	}

	job, err := r.scheduler.Every(1).Day().At(at).Do(r.remind)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder: %w", err)
	}
	r.job = job
	return r, nil
}

// AlignFrom makes each reminder align the plan to the calendar, with week 1
// day 1 on start.
func (r *Reminder) AlignFrom(start time.Time) {
	r.start = start
}

// Start runs the scheduler in the background.
func (r *Reminder) Start() {
	r.scheduler.StartAsync()
	logging.Debug("reminder", "next reminder at %s", r.NextRun().Format(time.RFC3339))
}

// Stop halts the scheduler.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// NextRun returns when the reminder fires next.
func (r *Reminder) NextRun() time.Time {
	return r.job.NextRun()
}

// remind loads the plan and announces its current topic. A plan that cannot
// be loaded is replaced by the default plan.
func (r *Reminder) remind() {
	p, err := r.source.Load(context.Background())
	if err != nil {
		logging.Warn("reminder", "failed to load plan, using default: %v", err)
		p = study.DefaultPlan()
	}

	if !r.start.IsZero() {
		p = p.AlignToDate(r.start, r.now().In(r.loc))
	}

	if err := r.notifier.Notify(p.Summary()); err != nil {
		logging.Warn("reminder", "failed to send reminder: %v", err)
	}
}
