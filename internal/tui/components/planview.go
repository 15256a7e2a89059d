package components

import (
	"fmt"
	"strings"

	"github.com/pablasso/study/internal/study"
	"github.com/pablasso/study/internal/tui/styles"
)

// Status markers
const (
	MarkerCompleted = "✓"
	MarkerCurrent   = "▶"
	MarkerUpcoming  = "·"
)

// Marker returns the list marker for a day status.
func Marker(s study.Status) string {
	switch s {
	case study.StatusCompleted:
		return MarkerCompleted
	case study.StatusCurrent:
		return MarkerCurrent
	default:
		return MarkerUpcoming
	}
}

// PlanView renders the weeks and days of a plan.
type PlanView struct {
	Plan study.Plan

	// Selected is the index of the highlighted day in plan order, or -1.
	Selected int

	// ShowNotes renders each day's notes below it.
	ShowNotes bool
}

// NewPlanView creates a PlanView with no selection.
func NewPlanView(p study.Plan) PlanView {
	return PlanView{Plan: p, Selected: -1}
}

// View returns the rendered plan.
func (v PlanView) View() string {
	if len(v.Plan.Weeks) == 0 {
		return styles.SubtleStyle.Render("No weeks in this plan.")
	}

	var b strings.Builder
	index := 0
	for wi, w := range v.Plan.Weeks {
		if wi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.WeekStyle.Render(fmt.Sprintf("Week %d: %s", w.Week, w.Title)))
		b.WriteString("\n")

		for _, d := range w.Days {
			line := fmt.Sprintf("%s Day %d: %s", Marker(d.Status), d.Day, d.Topic)
			if index == v.Selected {
				b.WriteString(styles.SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + styles.ForStatus(d.Status).Render(line))
			}
			b.WriteString("\n")

			if v.ShowNotes && d.Notes != "" {
				for _, note := range strings.Split(d.Notes, "\n") {
					b.WriteString(styles.SubtleStyle.Render("    " + note))
					b.WriteString("\n")
				}
			}
			index++
		}
	}
	return b.String()
}

// Line returns the line number in View's output where the day at index starts.
// It is -1 when index is out of range.
func (v PlanView) Line(index int) int {
	line := 0
	i := 0
	for wi, w := range v.Plan.Weeks {
		if wi > 0 {
			line++
		}
		line++ // week heading
		for _, d := range w.Days {
			if i == index {
				return line
			}
			line++
			if v.ShowNotes && d.Notes != "" {
				line += strings.Count(d.Notes, "\n") + 1
			}
			i++
		}
	}
	return -1
}
