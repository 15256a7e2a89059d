package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/study/internal/study"
	"github.com/pablasso/study/internal/tui/msgs"
)

// fakeStore keeps the plan in memory and records calls.
type fakeStore struct {
	plan      study.Plan
	err       error
	completed [][2]int
	notes     map[[2]int]string
}

func newFakeStore(p study.Plan) *fakeStore {
	return &fakeStore{plan: p, notes: map[[2]int]string{}}
}

func (f *fakeStore) Load(context.Context) (study.Plan, error) {
	if f.err != nil {
		return study.Plan{}, f.err
	}
	return f.plan, nil
}

func (f *fakeStore) Save(_ context.Context, p study.Plan) error {
	f.plan = p
	return f.err
}

func (f *fakeStore) CompleteDay(_ context.Context, week, day int) (study.Plan, error) {
	if f.err != nil {
		return f.plan, f.err
	}
	f.completed = append(f.completed, [2]int{week, day})
	p, err := f.plan.MarkDayCompleted(week, day)
	if err == nil {
		f.plan = p
	}
	return p, err
}

func (f *fakeStore) SetNotes(_ context.Context, week, day int, notes string) (study.Plan, error) {
	if f.err != nil {
		return f.plan, f.err
	}
	f.notes[[2]int{week, day}] = notes
	p, err := f.plan.SetNotes(week, day, notes)
	if err == nil {
		f.plan = p
	}
	return p, err
}

func (f *fakeStore) Close() error { return nil }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return next, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model that has processed its initial load.
func loadedModel(t *testing.T, fs *fakeStore) Model {
	t.Helper()
	m := New(fs)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should return a load command")
	}
	m, _ = update(t, m, cmd())
	return m
}

func TestModel_Init_LoadsPlan(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	m := New(fs)

	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("expected loading view before the plan arrives, got %q", m.View())
	}

	msg := m.Init()()
	if _, ok := msg.(msgs.PlanLoadedMsg); !ok {
		t.Fatalf("expected PlanLoadedMsg, got %T", msg)
	}

	m, _ = update(t, m, msg)
	view := m.View()
	for _, want := range []string{study.DefaultTitle, "0/7 days", "Week 1, Day 1: CAP Theorem"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_Init_LoadError(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	fs.err = errors.New("boom")

	m := loadedModel(t, fs)
	if !strings.Contains(m.View(), "Error: boom") {
		t.Errorf("expected error in view, got %q", m.View())
	}

	// Reload succeeds once the store recovers
	fs.err = nil
	m, cmd := update(t, m, key("r"))
	m, _ = update(t, m, cmd())
	if !m.loaded {
		t.Error("expected plan to be loaded after retry")
	}
}

func TestModel_CursorStartsAtCurrentDay(t *testing.T) {
	p, _ := study.DefaultPlan().MarkDayCompleted(1, 1)
	m := loadedModel(t, newFakeStore(p))

	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel(t, newFakeStore(study.DefaultPlan()))

	m, _ = update(t, m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should not move above the first day, got %d", m.cursor)
	}

	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, key("j"))
	}
	if m.cursor != 6 {
		t.Errorf("cursor should stop at the last day, got %d", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 5 {
		t.Errorf("cursor = %d, want 5", m.cursor)
	}
}

func TestModel_CompleteDay(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	m := loadedModel(t, fs)

	m, _ = update(t, m, key("j"))
	m, cmd := update(t, m, key("x"))
	if cmd == nil {
		t.Fatal("expected a complete command")
	}

	msg := cmd()
	if _, ok := msg.(msgs.PlanUpdatedMsg); !ok {
		t.Fatalf("expected PlanUpdatedMsg, got %T", msg)
	}
	if len(fs.completed) != 1 || fs.completed[0] != [2]int{1, 2} {
		t.Errorf("completed = %v, want [[1 2]]", fs.completed)
	}

	m, _ = update(t, m, msg)
	view := m.View()
	if !strings.Contains(view, "Completed week 1 day 2") {
		t.Errorf("expected status in view:\n%s", view)
	}
	if !strings.Contains(view, "1/7 days") {
		t.Errorf("expected updated progress in view:\n%s", view)
	}
}

func TestModel_CompleteDay_Error(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	m := loadedModel(t, fs)

	fs.err = errors.New("plan is locked")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if !strings.Contains(m.View(), "Error: plan is locked") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
	if !m.loaded {
		t.Error("a failed update should keep the plan on screen")
	}
}

func TestModel_EditNotes(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	m := loadedModel(t, fs)

	m, _ = update(t, m, key("n"))
	if !m.editing {
		t.Fatal("expected editing mode")
	}
	if !strings.Contains(m.View(), "Notes for week 1 day 1") {
		t.Errorf("expected notes editor in view:\n%s", m.View())
	}

	// Navigation keys are typed into the editor while editing
	m, _ = update(t, m, key("jot"))
	if m.cursor != 0 {
		t.Errorf("cursor moved while editing: %d", m.cursor)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.editing {
		t.Error("ctrl+s should leave editing mode")
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m, _ = update(t, m, cmd())

	if got := fs.notes[[2]int{1, 1}]; got != "jot" {
		t.Errorf("saved notes = %q, want %q", got, "jot")
	}
	if !strings.Contains(m.View(), "jot") {
		t.Errorf("expected notes in plan view:\n%s", m.View())
	}
}

func TestModel_EditNotes_Cancel(t *testing.T) {
	fs := newFakeStore(study.DefaultPlan())
	m := loadedModel(t, fs)

	m, _ = update(t, m, key("n"))
	m, _ = update(t, m, key("draft"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.editing {
		t.Error("esc should leave editing mode")
	}
	if cmd != nil {
		t.Error("cancel should not issue a command")
	}
	if len(fs.notes) != 0 {
		t.Errorf("cancel should not save notes, got %v", fs.notes)
	}
}

func TestModel_EditNotes_PrefillsExisting(t *testing.T) {
	p, _ := study.DefaultPlan().SetNotes(1, 1, "existing")
	m := loadedModel(t, newFakeStore(p))

	m, _ = update(t, m, key("n"))
	if got := m.notes.Value(); got != "existing" {
		t.Errorf("editor value = %q, want %q", got, "existing")
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}}

	for _, k := range tests {
		t.Run(k.String(), func(t *testing.T) {
			m := loadedModel(t, newFakeStore(study.DefaultPlan()))
			_, cmd := update(t, m, k)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("expected tea.QuitMsg, got %T", cmd())
			}
		})
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t, newFakeStore(study.DefaultPlan()))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.viewport.Width != 100 {
		t.Errorf("viewport width = %d, want 100", m.viewport.Width)
	}
	if want := 30 - headerHeight - footerHeight; m.viewport.Height != want {
		t.Errorf("viewport height = %d, want %d", m.viewport.Height, want)
	}

	m, _ = update(t, m, key("n"))
	if want := 30 - headerHeight - footerHeight - notesHeight - 1; m.viewport.Height != want {
		t.Errorf("viewport height while editing = %d, want %d", m.viewport.Height, want)
	}
}

func TestModel_ScrollsCursorIntoView(t *testing.T) {
	m := loadedModel(t, newFakeStore(study.DefaultPlan()))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 9})

	for i := 0; i < 6; i++ {
		m, _ = update(t, m, key("j"))
	}

	line := m.planView().Line(m.cursor)
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		t.Errorf("cursor line %d outside viewport [%d, %d)",
			line, m.viewport.YOffset, m.viewport.YOffset+m.viewport.Height)
	}
}
