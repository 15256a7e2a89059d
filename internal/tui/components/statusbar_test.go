package components

import (
	"strings"
	"testing"
)

func TestStatusBar_Render(t *testing.T) {
	items := []string{"↑↓ Navigate", "x Complete", "q Quit"}
	result := NewStatusBar().Render(60, items)

	for _, item := range items {
		if !strings.Contains(result, item) {
			t.Errorf("expected result to contain %q, got: %s", item, result)
		}
	}
	if !strings.Contains(result, " • ") {
		t.Errorf("expected result to contain separator, got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	result := NewStatusBar().Render(10, nil)

	if strings.TrimSpace(result) != "" {
		t.Errorf("expected blank status bar, got: %q", result)
	}
}

func TestStatusBar_Render_NarrowWidth(t *testing.T) {
	result := NewStatusBar().Render(20, []string{"↑↓ Navigate", "x Complete", "q Quit"})

	if result == "" {
		t.Error("expected non-empty result even with narrow width")
	}
}
