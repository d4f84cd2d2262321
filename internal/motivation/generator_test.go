package motivation

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/quantumtodo/internal/productivity"
)

func TestQuoteIsDeterministicForSeed(t *testing.T) {
	a := NewGenerator(9)
	b := NewGenerator(9)
	for i := 0; i < 20; i++ {
		if got, want := a.Quote(), b.Quote(); got != want {
			t.Fatalf("draw %d differs: %q vs %q", i, got, want)
		}
	}
}

func TestQuoteComesFromPool(t *testing.T) {
	pool := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		pool[q] = true
	}
	g := NewGenerator(4)
	for i := 0; i < 50; i++ {
		if q := g.Quote(); !pool[q] {
			t.Fatalf("quote outside pool: %q", q)
		}
	}
}

func TestForAddsNudgeByProcrastinationLevel(t *testing.T) {
	cases := []struct {
		data  productivity.Data
		nudge string
	}{
		{productivity.Calculate(nil), ""},
		{productivity.Data{TotalTasks: 4, ProcrastinationLevel: productivity.LevelLow}, nudges[productivity.LevelLow]},
		{productivity.Data{TotalTasks: 4, ProcrastinationLevel: productivity.LevelQuantum}, nudges[productivity.LevelQuantum]},
	}
	for _, tc := range cases {
		got := NewGenerator(2).For(tc.data)
		if tc.nudge == "" {
			for _, n := range nudges {
				if strings.HasPrefix(got, n) {
					t.Fatalf("empty list should get a bare quote: %q", got)
				}
			}
			continue
		}
		if !strings.HasPrefix(got, tc.nudge+" ") {
			t.Fatalf("expected nudge %q, got %q", tc.nudge, got)
		}
	}
}
