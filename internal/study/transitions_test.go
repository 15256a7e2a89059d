package study

import (
	"errors"
	"reflect"
	"testing"
)

func testPlan(weeks ...Week) Plan {
	return Plan{
		Title:       "Test",
		TargetDate:  DefaultTargetDate,
		CurrentWeek: 1,
		CurrentDay:  1,
		Weeks:       weeks,
	}
}

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()

	if p.Title != "Staff Engineer Interview Prep" {
		t.Errorf("title mismatch: got %q", p.Title)
	}
	if p.TargetDate != "March 2026" {
		t.Errorf("target date mismatch: got %q", p.TargetDate)
	}
	if len(p.Weeks) != 1 || p.Weeks[0].Week != 1 {
		t.Fatalf("expected exactly week 1, got %d weeks", len(p.Weeks))
	}
	if p.CurrentWeek != 1 || p.CurrentDay != 1 {
		t.Errorf("cursor mismatch: got %d/%d, want 1/1", p.CurrentWeek, p.CurrentDay)
	}
	days := p.Weeks[0].Days
	if days[0].Status != StatusCurrent {
		t.Errorf("expected first day current, got %s", days[0].Status)
	}
	for _, d := range days[1:] {
		if d.Status != StatusUpcoming {
			t.Errorf("day %d: expected upcoming, got %s", d.Day, d.Status)
		}
	}
}

func TestDefaultPlan_ReturnsFreshValue(t *testing.T) {
	a := DefaultPlan()
	a.Weeks[0].Days[0].Status = StatusCompleted

	b := DefaultPlan()
	if b.Weeks[0].Days[0].Status != StatusCurrent {
		t.Error("mutating one default plan leaked into another")
	}
}

func TestCurrentTopic(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCompleted},
		{Day: 2, Topic: "Topic 2", Status: StatusCurrent},
		{Day: 3, Topic: "Topic 3", Status: StatusUpcoming},
	}})

	d, ok := p.CurrentTopic()
	if !ok {
		t.Fatal("expected a current topic")
	}
	if d.Topic != "Topic 2" || d.Day != 2 {
		t.Errorf("current topic mismatch: got day %d %q", d.Day, d.Topic)
	}
}

func TestCurrentTopic_NoneCurrent(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCompleted},
		{Day: 2, Topic: "Topic 2", Status: StatusCompleted},
	}})

	if _, ok := p.CurrentTopic(); ok {
		t.Error("expected no current topic")
	}
}

func TestMarkDayCompleted(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCurrent},
		{Day: 2, Topic: "Topic 2", Status: StatusUpcoming},
		{Day: 3, Topic: "Topic 3", Status: StatusUpcoming},
	}})

	updated, err := p.MarkDayCompleted(1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Weeks[0].Days[0].Status != StatusCompleted {
		t.Errorf("expected day 1 completed, got %s", updated.Weeks[0].Days[0].Status)
	}
	if updated.Weeks[0].Days[1].Status != StatusCurrent {
		t.Errorf("expected day 2 current, got %s", updated.Weeks[0].Days[1].Status)
	}
	if updated.Weeks[0].Days[2].Status != StatusUpcoming {
		t.Errorf("expected day 3 upcoming, got %s", updated.Weeks[0].Days[2].Status)
	}
	if updated.CurrentWeek != 1 || updated.CurrentDay != 2 {
		t.Errorf("cursor mismatch: got %d/%d, want 1/2", updated.CurrentWeek, updated.CurrentDay)
	}
}

func TestMarkDayCompleted_DoesNotMutateInput(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCurrent},
		{Day: 2, Topic: "Topic 2", Status: StatusUpcoming},
	}})
	before := p.Clone()

	if _, err := p.MarkDayCompleted(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(p, before) {
		t.Errorf("input plan was mutated:\ngot  %#v\nwant %#v", p, before)
	}
}

func TestMarkDayCompleted_RollsIntoNextWeek(t *testing.T) {
	p := testPlan(
		Week{Week: 1, Title: "Week 1", Days: []Day{
			{Day: 1, Topic: "Topic 1", Status: StatusCompleted},
			{Day: 2, Topic: "Topic 2", Status: StatusCurrent},
		}},
		Week{Week: 2, Title: "Week 2", Days: []Day{
			{Day: 1, Topic: "Topic 3", Status: StatusUpcoming},
			{Day: 2, Topic: "Topic 4", Status: StatusUpcoming},
		}},
	)
	p.CurrentDay = 2

	updated, err := p.MarkDayCompleted(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.CurrentWeek != 2 || updated.CurrentDay != 1 {
		t.Errorf("cursor mismatch: got %d/%d, want 2/1", updated.CurrentWeek, updated.CurrentDay)
	}
	if updated.Weeks[1].Days[0].Status != StatusCurrent {
		t.Errorf("expected week 2 day 1 current, got %s", updated.Weeks[1].Days[0].Status)
	}
	if updated.Weeks[1].Days[1].Status != StatusUpcoming {
		t.Errorf("expected week 2 day 2 upcoming, got %s", updated.Weeks[1].Days[1].Status)
	}
}

func TestMarkDayCompleted_LastDayKeepsCursor(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCompleted},
		{Day: 2, Topic: "Topic 2", Status: StatusCurrent},
	}})
	p.CurrentDay = 2

	updated, err := p.MarkDayCompleted(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.CurrentWeek != 1 || updated.CurrentDay != 2 {
		t.Errorf("cursor mismatch: got %d/%d, want 1/2", updated.CurrentWeek, updated.CurrentDay)
	}
	if _, ok := updated.CurrentTopic(); ok {
		t.Error("expected no current day after completing the last one")
	}
	if updated.Progress() != 100 {
		t.Errorf("progress mismatch: got %d, want 100", updated.Progress())
	}
}

func TestMarkDayCompleted_RescansWholePlan(t *testing.T) {
	// Day 1 was skipped and is still upcoming while day 2 is current.
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Skipped", Status: StatusUpcoming},
		{Day: 2, Topic: "Topic 2", Status: StatusCurrent},
		{Day: 3, Topic: "Topic 3", Status: StatusUpcoming},
	}})
	p.CurrentDay = 2

	updated, err := p.MarkDayCompleted(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Weeks[0].Days[0].Status != StatusCurrent {
		t.Errorf("expected skipped day 1 promoted to current, got %s", updated.Weeks[0].Days[0].Status)
	}
	if updated.Weeks[0].Days[2].Status != StatusUpcoming {
		t.Errorf("expected day 3 to stay upcoming, got %s", updated.Weeks[0].Days[2].Status)
	}
	if updated.CurrentWeek != 1 || updated.CurrentDay != 1 {
		t.Errorf("cursor mismatch: got %d/%d, want 1/1", updated.CurrentWeek, updated.CurrentDay)
	}
}

func TestMarkDayCompleted_UpcomingDayLeavesStaleCurrent(t *testing.T) {
	// Completing an upcoming day while another day is current does not clear
	// the existing current marker.
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCurrent},
		{Day: 2, Topic: "Topic 2", Status: StatusUpcoming},
		{Day: 3, Topic: "Topic 3", Status: StatusUpcoming},
	}})

	updated, err := p.MarkDayCompleted(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Weeks[0].Days[0].Status != StatusCurrent {
		t.Errorf("expected day 1 to stay current, got %s", updated.Weeks[0].Days[0].Status)
	}
	if updated.Weeks[0].Days[2].Status != StatusCurrent {
		t.Errorf("expected day 3 promoted, got %s", updated.Weeks[0].Days[2].Status)
	}
	if !errors.Is(updated.Validate(), ErrMultipleCurrent) {
		t.Errorf("expected Validate to report multiple current days, got %v", updated.Validate())
	}
}

func TestMarkDayCompleted_NotFound(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCurrent},
		{Day: 2, Topic: "Topic 2", Status: StatusUpcoming},
	}})

	tests := []struct {
		name string
		week int
		day  int
	}{
		{name: "unknown week", week: 2, day: 1},
		{name: "unknown day", week: 1, day: 9},
		{name: "array index is not a day number", week: 0, day: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := p.MarkDayCompleted(tt.week, tt.day)
			if !errors.Is(err, ErrDayNotFound) {
				t.Fatalf("expected ErrDayNotFound, got %v", err)
			}
			if !reflect.DeepEqual(updated, p) {
				t.Errorf("plan changed on missing day:\ngot  %#v\nwant %#v", updated, p)
			}
		})
	}
}

func TestSetNotes(t *testing.T) {
	p := testPlan(Week{Week: 1, Title: "Week 1", Days: []Day{
		{Day: 1, Topic: "Topic 1", Status: StatusCurrent},
	}})

	updated, err := p.SetNotes(1, 1, "read chapter 5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Weeks[0].Days[0].Notes != "read chapter 5" {
		t.Errorf("notes mismatch: got %q", updated.Weeks[0].Days[0].Notes)
	}
	if updated.Weeks[0].Days[0].Status != StatusCurrent {
		t.Errorf("notes changed status to %s", updated.Weeks[0].Days[0].Status)
	}
	if p.Weeks[0].Days[0].Notes != "" {
		t.Error("input plan was mutated")
	}

	if _, err := p.SetNotes(3, 1, "x"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("expected ErrDayNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		days    []Day
		wantErr error
	}{
		{
			name: "single current",
			days: []Day{{Day: 1, Status: StatusCompleted}, {Day: 2, Status: StatusCurrent}},
		},
		{
			name: "no current",
			days: []Day{{Day: 1, Status: StatusCompleted}},
		},
		{
			name:    "two current",
			days:    []Day{{Day: 1, Status: StatusCurrent}, {Day: 2, Status: StatusCurrent}},
			wantErr: ErrMultipleCurrent,
		},
		{
			name:    "unknown status",
			days:    []Day{{Day: 1, Status: Status("done")}},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testPlan(Week{Week: 1, Days: tt.days}).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
