package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Event type constants for the history log.
const (
	EventPlanImported = "plan_imported"
	EventDayCompleted = "day_completed"
	EventNotesSaved   = "notes_saved"
)

// Event is a single history log entry.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
}

// HistoryLog appends plan changes to a JSON Lines file.
type HistoryLog struct {
	path string
}

// NewHistoryLog creates a history log at the given path.
func NewHistoryLog(path string) *HistoryLog {
	return &HistoryLog{path: path}
}

// Append writes one event with the current time.
func (h *HistoryLog) Append(event string, data map[string]any) error {
	entry := Event{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}

// Read returns all events in the order they were written.
// A missing log has no events.
func (h *HistoryLog) Read() ([]Event, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return events, nil
}
