// Package notes keeps a dated study journal as one Markdown file per day.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// UnknownTopic is the topic of a note file without a heading.
const UnknownTopic = "Unknown"

// ErrNotFound is returned when no note exists for a date.
var ErrNotFound = errors.New("note not found")

var (
	topicPattern  = regexp.MustCompile(`# Study Notes: (.+)`)
	headerPattern = regexp.MustCompile(`# Study Notes:.+\n\nDate:.+\n\n`)
)

// Note is the journal entry for one date.
type Note struct {
	Date    string `json:"date"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

// Store reads and writes notes in a directory.
type Store struct {
	dir string
}

// NewStore creates a store for the given notes directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the notes directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the note to <dir>/<date>.md, replacing any previous note for
// that date.
func (s *Store) Save(n Note) error {
	path, err := s.path(n.Date)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	content := fmt.Sprintf("# Study Notes: %s\n\nDate: %s\n\n%s", n.Topic, n.Date, n.Content)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// Load reads the note for a date. Returns ErrNotFound if none was saved.
func (s *Store) Load(date string) (Note, error) {
	path, err := s.path(date)
	if err != nil {
		return Note{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Note{}, fmt.Errorf("%s: %w", date, ErrNotFound)
		}
		return Note{}, fmt.Errorf("failed to read note: %w", err)
	}

	content := string(data)
	topic := UnknownTopic
	if m := topicPattern.FindStringSubmatch(content); m != nil {
		topic = m[1]
	}

	body := content
	if loc := headerPattern.FindStringIndex(content); loc != nil {
		body = content[:loc[0]] + content[loc[1]:]
	}

	return Note{
		Date:    date,
		Topic:   topic,
		Content: body,
	}, nil
}

// List returns the dates that have notes, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := strings.CutSuffix(entry.Name(), ".md")
		if !ok {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// path validates the date and returns the note file path for it.
func (s *Store) path(date string) (string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return filepath.Join(s.dir, date+".md"), nil
}

// Today returns today's date in journal format.
func Today() string {
	return time.Now().Format(dateLayout)
}
