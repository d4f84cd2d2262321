package gamification

type Level struct {
	Current         int
	Title           string
	NextLevelPoints int
	CurrentPoints   int
	TotalPoints     int
}

type levelStep struct {
	threshold int
	title     string
}

// Thresholds are strictly increasing; level N starts at levels[N-1].
var levels = []levelStep{
	{threshold: 0, title: "Quantum Novice"},
	{threshold: 30, title: "Entangled Apprentice"},
	{threshold: 100, title: "Superposition Adept"},
	{threshold: 200, title: "Wave Function Wizard"},
	{threshold: 350, title: "Cosmic Procrastinator"},
	{threshold: 550, title: "Master of the Multiverse"},
}

// LevelForPoints places total among the level thresholds. CurrentPoints
// counts progress since the current level began; NextLevelPoints is the
// total needed for the next level, or 0 at the top.
func LevelForPoints(total int) Level {
	if total < 0 {
		total = 0
	}
	idx := 0
	for i, step := range levels {
		if total >= step.threshold {
			idx = i
		}
	}
	out := Level{
		Current:       idx + 1,
		Title:         levels[idx].title,
		CurrentPoints: total - levels[idx].threshold,
		TotalPoints:   total,
	}
	if idx+1 < len(levels) {
		out.NextLevelPoints = levels[idx+1].threshold
	}
	return out
}
