package study

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	titlePattern = regexp.MustCompile(`^#\s+(.+)`)
	weekPattern  = regexp.MustCompile(`(?i)^##\s+Week\s+(\d+):\s*(.+)`)
	dayPattern   = regexp.MustCompile(`(?i)^-\s*\[?\s*([xX ])?\s*\]?\s*Day\s+(\d+):\s*(.+)`)
)

// Parse reads a Markdown study plan:
//
//	# Title
//
//	## Week 1: Week Title
//
//	- Day 1: Topic
//	- [x] Day 2: Completed topic
//	- [ ] Day 3: Open topic
//
// Parsing is best-effort. Lines that match none of the patterns are skipped,
// as are day lines that appear before the first week header. The first day
// that is not checked off becomes the current day.
func Parse(content string) Plan {
	p := Plan{
		Title:       DefaultTitle,
		TargetDate:  DefaultTargetDate,
		Weeks:       []Week{},
		CurrentWeek: 1,
		CurrentDay:  1,
	}

	var week *Week
	for _, line := range strings.Split(content, "\n") {
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			p.Title = strings.TrimSpace(m[1])
			continue
		}

		if m := weekPattern.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if week != nil {
				p.Weeks = append(p.Weeks, *week)
			}
			week = &Week{Week: n, Title: strings.TrimSpace(m[2]), Days: []Day{}}
			continue
		}

		m := dayPattern.FindStringSubmatch(line)
		if m == nil || week == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		status := StatusUpcoming
		if strings.EqualFold(m[1], "x") {
			status = StatusCompleted
		}
		week.Days = append(week.Days, Day{
			Day:    n,
			Topic:  strings.TrimSpace(m[3]),
			Status: status,
		})
	}
	if week != nil {
		p.Weeks = append(p.Weeks, *week)
	}

	p.deriveCurrent()
	return p
}

// deriveCurrent marks the first non-completed day as current and points the
// cursor at it. A fully completed plan keeps its cursor.
func (p *Plan) deriveCurrent() {
	for wi := range p.Weeks {
		for di := range p.Weeks[wi].Days {
			d := &p.Weeks[wi].Days[di]
			if d.Status == StatusCompleted {
				continue
			}
			d.Status = StatusCurrent
			p.CurrentWeek = p.Weeks[wi].Week
			p.CurrentDay = d.Day
			return
		}
	}
}
