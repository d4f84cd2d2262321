package productivity

import "github.com/sandeepkv93/quantumtodo/internal/model"

type ProcrastinationLevel string

const (
	LevelLow     ProcrastinationLevel = "Low"
	LevelMedium  ProcrastinationLevel = "Medium"
	LevelHigh    ProcrastinationLevel = "High"
	LevelQuantum ProcrastinationLevel = "Quantum"
)

// Completion-rate floors for each procrastination bucket.
const (
	LowThreshold    = 75.0
	MediumThreshold = 50.0
	HighThreshold   = 25.0
)

// Quantum efficiency weights; both must stay positive.
const (
	completionWeight = 0.6
	lifeScoreWeight  = 0.4
)

type Data struct {
	TotalTasks           int                  `yaml:"total_tasks"`
	CompletedTasks       int                  `yaml:"completed_tasks"`
	CompletionRate       float64              `yaml:"completion_rate"`
	AverageLifeScore     float64              `yaml:"average_life_score"`
	QuantumEfficiency    float64              `yaml:"quantum_efficiency"`
	ProcrastinationLevel ProcrastinationLevel `yaml:"procrastination_level"`
}

func Calculate(tasks []model.Task) Data {
	out := Data{TotalTasks: len(tasks)}
	if len(tasks) == 0 {
		out.ProcrastinationLevel = LevelFor(0)
		return out
	}

	lifeSum := 0.0
	for _, t := range tasks {
		if t.Completed {
			out.CompletedTasks++
		}
		lifeSum += t.LifeMeaningScore
	}
	out.CompletionRate = float64(out.CompletedTasks) / float64(out.TotalTasks) * 100
	out.AverageLifeScore = lifeSum / float64(out.TotalTasks)
	out.QuantumEfficiency = QuantumEfficiency(out.CompletionRate, out.AverageLifeScore)
	out.ProcrastinationLevel = LevelFor(out.CompletionRate)
	return out
}

func QuantumEfficiency(completionRate, averageLifeScore float64) float64 {
	return completionWeight*completionRate + lifeScoreWeight*averageLifeScore
}

func LevelFor(completionRate float64) ProcrastinationLevel {
	switch {
	case completionRate >= LowThreshold:
		return LevelLow
	case completionRate >= MediumThreshold:
		return LevelMedium
	case completionRate >= HighThreshold:
		return LevelHigh
	default:
		return LevelQuantum
	}
}
