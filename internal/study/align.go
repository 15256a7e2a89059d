package study

import "time"

// DaysPerWeek is the calendar length of a study week.
const DaysPerWeek = 7

// AlignToDate returns a copy of the plan with statuses following the calendar,
// given the date of week 1 day 1.
//
// Days before today become completed, today's day becomes current and later
// days become upcoming. Completed days stay completed. Today is clamped to the
// plan's first and last day, so a finished schedule keeps its last day current.
func (p Plan) AlignToDate(start, now time.Time) Plan {
	out := p.Clone()

	last := 0
	for _, w := range out.Weeks {
		for _, d := range w.Days {
			if abs := absoluteDay(w.Week, d.Day); abs > last {
				last = abs
			}
		}
	}
	if last < 1 {
		return out
	}

	today := calendarDays(start, now) + 1
	if today < 1 {
		today = 1
	}
	if today > last {
		today = last
	}

	for wi := range out.Weeks {
		for di := range out.Weeks[wi].Days {
			d := &out.Weeks[wi].Days[di]
			abs := absoluteDay(out.Weeks[wi].Week, d.Day)
			switch {
			case d.Status == StatusCompleted:
			case abs < today:
				d.Status = StatusCompleted
			case abs == today:
				d.Status = StatusCurrent
			default:
				d.Status = StatusUpcoming
			}
		}
	}

	out.CurrentWeek = (today-1)/DaysPerWeek + 1
	out.CurrentDay = (today-1)%DaysPerWeek + 1
	return out
}

func absoluteDay(week, day int) int {
	return (week-1)*DaysPerWeek + day
}

// calendarDays counts the calendar dates from from to to, each read in its own
// location. Daylight saving shifts do not change the count.
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
