package storage

import "time"

type Task struct {
	ID               int
	Text             string
	Completed        bool
	LifeMeaningScore float64
	QuantumState     string
	Excuses          []string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

type AchievementUnlock struct {
	ID         string
	UnlockedAt time.Time
}

type TaskListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
