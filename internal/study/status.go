package study

import "fmt"

// Status is the progress state of a single study day.
type Status string

// Day status constants
const (
	StatusUpcoming  Status = "upcoming"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCurrent, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// CanTransitionTo reports whether moving from s to target is allowed.
// Checkbox parsing may move an upcoming day straight to completed.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusUpcoming:
		return target == StatusCurrent || target == StatusCompleted
	case StatusCurrent:
		return target == StatusCompleted
	default:
		return false
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so decoding rejects
// unknown statuses.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
