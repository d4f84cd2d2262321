package productivity

import (
	"math"
	"testing"

	"github.com/sandeepkv93/quantumtodo/internal/model"
)

func tasksWith(completed, total int, score float64) []model.Task {
	out := make([]model.Task, total)
	for i := range out {
		out[i] = model.Task{ID: i + 1, Text: "t", LifeMeaningScore: score, Completed: i < completed}
	}
	return out
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil)
	if got.TotalTasks != 0 || got.CompletionRate != 0 || got.AverageLifeScore != 0 || got.QuantumEfficiency != 0 {
		t.Fatalf("unexpected empty data: %+v", got)
	}
	if got.ProcrastinationLevel != LevelQuantum {
		t.Fatalf("expected Quantum for empty list, got %s", got.ProcrastinationLevel)
	}
}

func TestCalculateAggregates(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, LifeMeaningScore: 20, Completed: true},
		{ID: 2, LifeMeaningScore: 40},
		{ID: 3, LifeMeaningScore: 60, Completed: true},
		{ID: 4, LifeMeaningScore: 80},
	}
	got := Calculate(tasks)
	if got.TotalTasks != 4 || got.CompletedTasks != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.CompletionRate != 50 || got.AverageLifeScore != 50 {
		t.Fatalf("unexpected rate/average: %+v", got)
	}
	if math.Abs(got.QuantumEfficiency-50) > 1e-9 {
		t.Fatalf("unexpected efficiency: %v", got.QuantumEfficiency)
	}
	if got.ProcrastinationLevel != LevelMedium {
		t.Fatalf("expected Medium, got %s", got.ProcrastinationLevel)
	}
}

func TestCompletionRateBounds(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for done := 0; done <= total; done++ {
			rate := Calculate(tasksWith(done, total, 50)).CompletionRate
			if rate < 0 || rate > 100 {
				t.Fatalf("rate %v out of range for %d/%d", rate, done, total)
			}
		}
	}
}

func TestLevelForBuckets(t *testing.T) {
	cases := []struct {
		rate float64
		want ProcrastinationLevel
	}{
		{0, LevelQuantum},
		{24.99, LevelQuantum},
		{25, LevelHigh},
		{49.99, LevelHigh},
		{50, LevelMedium},
		{74.99, LevelMedium},
		{75, LevelLow},
		{100, LevelLow},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.rate); got != tc.want {
			t.Fatalf("LevelFor(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestQuantumEfficiencyIsMonotonic(t *testing.T) {
	for rate := 0.0; rate < 100; rate += 5 {
		for score := 1.0; score < 100; score += 7 {
			base := QuantumEfficiency(rate, score)
			if QuantumEfficiency(rate+1, score) <= base {
				t.Fatalf("not increasing in completion rate at (%v,%v)", rate, score)
			}
			if QuantumEfficiency(rate, score+1) <= base {
				t.Fatalf("not increasing in life score at (%v,%v)", rate, score)
			}
		}
	}
}
