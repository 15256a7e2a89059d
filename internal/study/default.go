package study

// DefaultPlan returns the built-in plan used when no plan document is available.
func DefaultPlan() Plan {
	return Plan{
		Title:       DefaultTitle,
		TargetDate:  DefaultTargetDate,
		CurrentWeek: 1,
		CurrentDay:  1,
		Weeks: []Week{
			{
				Week:  1,
				Title: "System Design Foundations",
				Days: []Day{
					{Day: 1, Topic: "CAP Theorem & Consistency Models", Status: StatusCurrent},
					{Day: 2, Topic: "Scaling Strategies", Status: StatusUpcoming},
					{Day: 3, Topic: "Load Balancing & Caching", Status: StatusUpcoming},
					{Day: 4, Topic: "Database Selection & Sharding", Status: StatusUpcoming},
					{Day: 5, Topic: "Message Queues", Status: StatusUpcoming},
					{Day: 6, Topic: "Practice: URL Shortener", Status: StatusUpcoming},
					{Day: 7, Topic: "Review", Status: StatusUpcoming},
				},
			},
		},
	}
}
