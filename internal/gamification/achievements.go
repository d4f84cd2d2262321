package gamification

// Stats is the task-list summary achievements are judged against.
type Stats struct {
	TotalTasks     int
	CompletedTasks int
	CompletionRate float64
	Streak         int
}

type Achievement struct {
	ID          string
	Name        string
	Description string
	Unlocked    bool
	Icon        string
	Points      int
}

type rule struct {
	Achievement
	predicate func(Stats) bool
}

var rules = []rule{
	{
		Achievement: Achievement{ID: "first_task", Name: "Quantum Leap", Description: "Create your first task", Icon: "🌱", Points: 10},
		predicate:   func(s Stats) bool { return s.TotalTasks >= 1 },
	},
	{
		Achievement: Achievement{ID: "first_collapse", Name: "Wave Function Collapse", Description: "Complete a task", Icon: "✓", Points: 20},
		predicate:   func(s Stats) bool { return s.CompletedTasks >= 1 },
	},
	{
		Achievement: Achievement{ID: "task_hoarder", Name: "Task Hoarder", Description: "Have 10 tasks on the list", Icon: "📋", Points: 30},
		predicate:   func(s Stats) bool { return s.TotalTasks >= 10 },
	},
	{
		Achievement: Achievement{ID: "entanglement_engineer", Name: "Entanglement Engineer", Description: "Complete 5 tasks", Icon: "🔗", Points: 50},
		predicate:   func(s Stats) bool { return s.CompletedTasks >= 5 },
	},
	{
		Achievement: Achievement{ID: "temporal_consistency", Name: "Temporal Consistency", Description: "Complete tasks 3 days in a row", Icon: "🔥", Points: 60},
		predicate:   func(s Stats) bool { return s.Streak >= 3 },
	},
	{
		Achievement: Achievement{ID: "heat_death_avoided", Name: "Heat Death Avoided", Description: "Reach 100% completion with at least 3 tasks", Icon: "🌡", Points: 75},
		predicate:   func(s Stats) bool { return s.TotalTasks >= 3 && s.CompletionRate >= 100 },
	},
	{
		Achievement: Achievement{ID: "cosmic_routine", Name: "Cosmic Routine", Description: "Complete tasks 7 days in a row", Icon: "⚡", Points: 150},
		predicate:   func(s Stats) bool { return s.Streak >= 7 },
	},
	{
		Achievement: Achievement{ID: "multiverse_manager", Name: "Multiverse Manager", Description: "Complete 25 tasks", Icon: "🏆", Points: 200},
		predicate:   func(s Stats) bool { return s.CompletedTasks >= 25 },
	},
}

// Catalog returns every achievement, all locked.
func Catalog() []Achievement {
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Achievement)
	}
	return out
}

// TotalPoints sums the points of unlocked achievements.
func TotalPoints(achievements []Achievement) int {
	total := 0
	for _, a := range achievements {
		if a.Unlocked {
			total += a.Points
		}
	}
	return total
}
