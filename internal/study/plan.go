// Package study models a multi-week study plan: parsing it from Markdown,
// tracking which day is current, completing days and computing progress.
//
// Every transformation works on a copy of the plan it is given, so a Plan
// value can be shared freely between callers.
package study

import (
	"errors"
	"fmt"
)

const (
	// DefaultTitle is used when the source document has no title line.
	DefaultTitle = "Staff Engineer Interview Prep"

	// DefaultTargetDate is the target date of parsed and built-in plans.
	DefaultTargetDate = "March 2026"
)

var (
	// ErrDayNotFound is returned when a week/day pair does not exist in a plan.
	ErrDayNotFound = errors.New("day not found")

	// ErrMultipleCurrent is reported by Validate when more than one day is current.
	ErrMultipleCurrent = errors.New("more than one current day")

	// ErrInvalidStatus is returned for statuses outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Day is a single study day within a week.
type Day struct {
	Day    int    `json:"day"`
	Topic  string `json:"topic"`
	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Week groups study days under a numbered heading.
type Week struct {
	Week  int    `json:"week"`
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// Plan is an ordered set of weeks plus the cursor pointing at the current day.
type Plan struct {
	Title       string `json:"title"`
	TargetDate  string `json:"targetDate"`
	Weeks       []Week `json:"weeks"`
	CurrentWeek int    `json:"currentWeek"`
	CurrentDay  int    `json:"currentDay"`
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	out := p
	if p.Weeks == nil {
		return out
	}
	out.Weeks = make([]Week, len(p.Weeks))
	for i, w := range p.Weeks {
		out.Weeks[i] = w
		if w.Days != nil {
			out.Weeks[i].Days = make([]Day, len(w.Days))
			copy(out.Weeks[i].Days, w.Days)
		}
	}
	return out
}

// find returns the indexes of the given week/day, matched by number.
func (p Plan) find(week, day int) (int, int, bool) {
	for wi := range p.Weeks {
		if p.Weeks[wi].Week != week {
			continue
		}
		for di := range p.Weeks[wi].Days {
			if p.Weeks[wi].Days[di].Day == day {
				return wi, di, true
			}
		}
	}
	return -1, -1, false
}

// Day returns the day with the given week/day numbers.
func (p Plan) Day(week, day int) (Day, bool) {
	wi, di, ok := p.find(week, day)
	if !ok {
		return Day{}, false
	}
	return p.Weeks[wi].Days[di], true
}

// Counts returns the number of completed days and the total number of days.
func (p Plan) Counts() (completed, total int) {
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			total++
			if d.Status == StatusCompleted {
				completed++
			}
		}
	}
	return completed, total
}

// Validate checks statuses and the single-current invariant.
// It reports problems without repairing them.
func (p Plan) Validate() error {
	current := 0
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			if !d.Status.IsValid() {
				return fmt.Errorf("week %d day %d: %w: %q", w.Week, d.Day, ErrInvalidStatus, d.Status)
			}
			if d.Status == StatusCurrent {
				current++
			}
		}
	}
	if current > 1 {
		return fmt.Errorf("%w: %d days", ErrMultipleCurrent, current)
	}
	return nil
}

func dayNotFound(week, day int) error {
	return fmt.Errorf("week %d day %d: %w", week, day, ErrDayNotFound)
}
