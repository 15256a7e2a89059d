package study

// NoTopic is the summary topic of a plan without a current day.
const NoTopic = "No topic set"

// Progress returns the percentage of completed days, rounded half up.
// An empty plan has no progress.
func (p Plan) Progress() int {
	completed, total := p.Counts()
	if total == 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// Summary is a flat view of a plan's position and progress.
type Summary struct {
	Title        string `json:"title"`
	TargetDate   string `json:"targetDate"`
	CurrentWeek  int    `json:"currentWeek"`
	CurrentDay   int    `json:"currentDay"`
	CurrentTopic string `json:"currentTopic"`
	Progress     int    `json:"progress"`
	Completed    int    `json:"completed"`
	Total        int    `json:"total"`
}

// Summary returns the plan's position and progress.
func (p Plan) Summary() Summary {
	completed, total := p.Counts()
	topic := NoTopic
	if d, ok := p.CurrentTopic(); ok {
		topic = d.Topic
	}
	return Summary{
		Title:        p.Title,
		TargetDate:   p.TargetDate,
		CurrentWeek:  p.CurrentWeek,
		CurrentDay:   p.CurrentDay,
		CurrentTopic: topic,
		Progress:     p.Progress(),
		Completed:    completed,
		Total:        total,
	}
}
