package components

import (
	"strings"

	"github.com/pablasso/study/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual help items.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • " and padded to fill the width.
func (s StatusBar) Render(width int, items []string) string {
	return styles.StatusBarStyle.Width(width).Render(strings.Join(items, " • "))
}
