// Package msgs defines the messages store commands send back to the TUI.
package msgs

import "github.com/pablasso/study/internal/study"

// PlanLoadedMsg is sent when the plan has been (re)loaded from the store.
type PlanLoadedMsg struct {
	Plan study.Plan
}

// PlanUpdatedMsg is sent when a store update succeeds.
type PlanUpdatedMsg struct {
	Plan   study.Plan
	Status string // short description of the change for the status line
}

// ErrMsg reports a failed store call.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string {
	return e.Err.Error()
}
