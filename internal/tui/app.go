// Package tui implements the interactive study plan browser.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/study/internal/store"
	"github.com/pablasso/study/internal/study"
	"github.com/pablasso/study/internal/tui/components"
	"github.com/pablasso/study/internal/tui/msgs"
	"github.com/pablasso/study/internal/tui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	progressWidth = 20
	notesHeight   = 5

	// lines taken by the header and the footer around the viewport
	headerHeight = 4
	footerHeight = 2

	// storeTimeout bounds each store call, including waiting for the plan lock.
	storeTimeout = 10 * time.Second
)

// dayRef locates a day of the plan.
type dayRef struct {
	week int
	day  int
}

// Model is the Bubble Tea model of the plan browser.
type Model struct {
	store store.Store

	plan   study.Plan
	loaded bool
	days   []dayRef
	cursor int

	viewport viewport.Model
	notes    textarea.Model
	editing  bool

	status string
	err    error

	width  int
	height int
}

// Run starts the TUI on the given store.
func Run(s store.Store) error {
	p := tea.NewProgram(
		New(s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// New creates the model. The plan is loaded by Init.
func New(s store.Store) Model {
	ta := textarea.New()
	ta.Placeholder = "Notes for this day... (ctrl+s to save, esc to cancel)"
	ta.SetHeight(notesHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	m := Model{
		store:    s,
		viewport: viewport.New(defaultWidth, 1),
		notes:    ta,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadPlan()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case msgs.PlanLoadedMsg:
		m.loaded = true
		m.err = nil
		m.setPlan(msg.Plan)
		m.cursor = m.currentIndex()
		m.refresh()
		return m, nil

	case msgs.PlanUpdatedMsg:
		m.err = nil
		m.status = msg.Status
		m.setPlan(msg.Plan)
		m.refresh()
		return m, nil

	case msgs.ErrMsg:
		m.err = msg.Err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	if m.editing {
		m.notes, cmd = m.notes.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.days)-1 {
			m.cursor++
			m.refresh()
		}
		return m, nil

	case "x", "enter":
		ref, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.completeDay(ref)

	case "n":
		ref, ok := m.selected()
		if !ok {
			return m, nil
		}
		d, _ := m.plan.Day(ref.week, ref.day)
		m.editing = true
		m.notes.SetValue(d.Notes)
		m.resize(m.width, m.height)
		return m, m.notes.Focus()

	case "r":
		m.status = "Reloading..."
		return m, m.loadPlan()
	}
	return m, nil
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		ref, ok := m.selected()
		m.stopEditing()
		if !ok {
			return m, nil
		}
		return m, m.saveNotes(ref, strings.TrimSpace(m.notes.Value()))

	case "esc":
		m.stopEditing()
		m.status = "Edit cancelled"
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.notes.Blur()
	m.resize(m.width, m.height)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return styles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
				styles.SubtleStyle.Render("r Retry • q Quit") + "\n"
		}
		return styles.SubtleStyle.Render("Loading study plan...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.editing {
		ref, _ := m.selected()
		b.WriteString(styles.SelectedStyle.Render(fmt.Sprintf("Notes for week %d day %d", ref.week, ref.day)))
		b.WriteString("\n")
		b.WriteString(m.notes.View())
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, m.helpItems()))
	return b.String()
}

// header renders the title, progress bar and current topic.
func (m Model) header() string {
	s := m.plan.Summary()

	title := styles.TitleStyle.UnsetMarginBottom().Render(s.Title)
	if s.TargetDate != "" {
		title += styles.SubtleStyle.Render("  target " + s.TargetDate)
	}

	progress := fmt.Sprintf("%s  %d/%d days",
		components.NewProgress(s.Progress, progressWidth).View(), s.Completed, s.Total)

	current := styles.CurrentStyle.Render(
		fmt.Sprintf("Week %d, Day %d: %s", s.CurrentWeek, s.CurrentDay, s.CurrentTopic))

	return title + "\n" + progress + "\n" + current + "\n"
}

func (m Model) statusLine() string {
	if m.err != nil {
		return styles.ErrorStyle.Render("Error: " + m.err.Error())
	}
	return styles.SuccessStyle.Render(m.status)
}

func (m Model) helpItems() []string {
	if m.editing {
		return []string{"ctrl+s Save", "esc Cancel"}
	}
	return []string{"↑↓ Navigate", "x Complete", "n Notes", "r Reload", "q Quit"}
}

// setPlan replaces the plan and keeps the cursor in range.
func (m *Model) setPlan(p study.Plan) {
	m.plan = p
	m.days = nil
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			m.days = append(m.days, dayRef{week: w.Week, day: d.Day})
		}
	}
	if m.cursor >= len(m.days) {
		m.cursor = len(m.days) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// currentIndex returns the index of the current day, or 0.
func (m Model) currentIndex() int {
	i := 0
	for _, w := range m.plan.Weeks {
		for _, d := range w.Days {
			if d.Status == study.StatusCurrent {
				return i
			}
			i++
		}
	}
	return 0
}

func (m Model) selected() (dayRef, bool) {
	if m.cursor < 0 || m.cursor >= len(m.days) {
		return dayRef{}, false
	}
	return m.days[m.cursor], true
}

func (m Model) planView() components.PlanView {
	v := components.NewPlanView(m.plan)
	v.Selected = m.cursor
	v.ShowNotes = true
	return v
}

// refresh re-renders the plan into the viewport and scrolls the cursor into view.
func (m *Model) refresh() {
	v := m.planView()
	m.viewport.SetContent(v.View())

	line := v.Line(m.cursor)
	if line < 0 {
		return
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// resize lays out the viewport for the window size.
func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height

	vh := height - headerHeight - footerHeight
	if m.editing {
		vh -= notesHeight + 1
	}
	if vh < 3 {
		vh = 3
	}

	m.viewport.Width = width
	m.viewport.Height = vh
	m.notes.SetWidth(width)
	if m.loaded {
		m.refresh()
	}
}

func (m Model) loadPlan() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := s.Load(ctx)
		if err != nil {
			return msgs.ErrMsg{Err: err}
		}
		return msgs.PlanLoadedMsg{Plan: p}
	}
}

func (m Model) completeDay(ref dayRef) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := s.CompleteDay(ctx, ref.week, ref.day)
		if err != nil {
			return msgs.ErrMsg{Err: err}
		}
		return msgs.PlanUpdatedMsg{
			Plan:   p,
			Status: fmt.Sprintf("Completed week %d day %d", ref.week, ref.day),
		}
	}
}

func (m Model) saveNotes(ref dayRef, notes string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := s.SetNotes(ctx, ref.week, ref.day, notes)
		if err != nil {
			return msgs.ErrMsg{Err: err}
		}
		return msgs.PlanUpdatedMsg{
			Plan:   p,
			Status: fmt.Sprintf("Saved notes for week %d day %d", ref.week, ref.day),
		}
	}
}
