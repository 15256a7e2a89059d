package study

import (
	"fmt"
	"strings"
)

// Render writes the plan back to the Markdown form read by Parse.
//
// Completed days get a checked box and every other day an empty one, so the
// current day is re-derived on the next parse. Notes are written as indented
// quote lines, which Parse skips.
func Render(p Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", p.Title)
	for _, w := range p.Weeks {
		fmt.Fprintf(&b, "\n## Week %d: %s\n\n", w.Week, w.Title)
		for _, d := range w.Days {
			box := " "
			if d.Status == StatusCompleted {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] Day %d: %s\n", box, d.Day, d.Topic)
			for _, line := range strings.Split(strings.TrimSpace(d.Notes), "\n") {
				if line == "" {
					continue
				}
				fmt.Fprintf(&b, "  > %s\n", line)
			}
		}
	}

	return b.String()
}
