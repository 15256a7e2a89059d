package study

// CurrentTopic returns the first day whose status is current.
// The boolean is false when no day is current, e.g. a finished plan.
func (p Plan) CurrentTopic() (Day, bool) {
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			if d.Status == StatusCurrent {
				return d, true
			}
		}
	}
	return Day{}, false
}

// MarkDayCompleted returns a copy of the plan with the given day completed and
// the next current day assigned.
//
// The next current day is the first upcoming day in the whole plan, not the
// first one after the completed day: an upcoming day left behind earlier in
// the plan is promoted ahead of later ones. If no upcoming day remains the
// cursor keeps its previous value. Stale current markers are left alone; use
// Validate to detect them.
//
// When the day does not exist the returned plan is an unchanged copy and the
// error wraps ErrDayNotFound.
func (p Plan) MarkDayCompleted(week, day int) (Plan, error) {
	out := p.Clone()

	wi, di, ok := out.find(week, day)
	if !ok {
		return out, dayNotFound(week, day)
	}
	out.Weeks[wi].Days[di].Status = StatusCompleted

	out.promoteNextUpcoming()
	return out, nil
}

// promoteNextUpcoming makes the first upcoming day current and moves the
// cursor to it.
func (p *Plan) promoteNextUpcoming() {
	for wi := range p.Weeks {
		for di := range p.Weeks[wi].Days {
			d := &p.Weeks[wi].Days[di]
			if d.Status != StatusUpcoming {
				continue
			}
			d.Status = StatusCurrent
			p.CurrentWeek = p.Weeks[wi].Week
			p.CurrentDay = d.Day
			return
		}
	}
}

// SetNotes returns a copy of the plan with the notes of the given day replaced.
// Status is not affected.
func (p Plan) SetNotes(week, day int, notes string) (Plan, error) {
	out := p.Clone()

	wi, di, ok := out.find(week, day)
	if !ok {
		return out, dayNotFound(week, day)
	}
	out.Weeks[wi].Days[di].Notes = notes
	return out, nil
}
