package gamification

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/storage"
)

var today = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func doneOn(id int, at time.Time) model.Task {
	return model.Task{ID: id, Text: "t", Completed: true, CompletedAt: &at, LifeMeaningScore: 50, QuantumState: model.QuantumCollapsed}
}

func open(id int) model.Task {
	return model.Task{ID: id, Text: "t", LifeMeaningScore: 50, QuantumState: model.QuantumSuperposition}
}

func TestCatalogIDsUniqueAndLocked(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog() {
		if seen[a.ID] {
			t.Fatalf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Unlocked || a.Points <= 0 {
			t.Fatalf("unexpected catalog entry: %+v", a)
		}
	}
}

func TestLevelThresholdsStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(levels); i++ {
		if levels[i].threshold <= levels[i-1].threshold {
			t.Fatalf("threshold %d not above %d", levels[i].threshold, levels[i-1].threshold)
		}
	}
}

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points  int
		level   int
		current int
		next    int
	}{
		{0, 1, 0, 30},
		{29, 1, 29, 30},
		{30, 2, 0, 100},
		{120, 3, 20, 200},
		{550, 6, 0, 0},
		{900, 6, 350, 0},
		{-5, 1, 0, 30},
	}
	for _, tc := range cases {
		got := LevelForPoints(tc.points)
		if got.Current != tc.level || got.CurrentPoints != tc.current || got.NextLevelPoints != tc.next {
			t.Fatalf("LevelForPoints(%d) = %+v", tc.points, got)
		}
		if got.Title == "" {
			t.Fatalf("missing title for %d", tc.points)
		}
	}
	prev := 0
	for p := 0; p <= 1000; p += 5 {
		if lvl := LevelForPoints(p).Current; lvl < prev {
			t.Fatalf("level decreased at %d points", p)
		} else {
			prev = lvl
		}
	}
}

func TestCompletionStreak(t *testing.T) {
	tasks := []model.Task{
		doneOn(1, today.Add(-2*time.Hour)),
		doneOn(2, today.AddDate(0, 0, -1)),
		doneOn(3, today.AddDate(0, 0, -2)),
		doneOn(4, today.AddDate(0, 0, -4)),
		open(5),
	}
	if got := CompletionStreak(tasks, today); got != 3 {
		t.Fatalf("streak = %d, want 3", got)
	}

	// Nothing yet today: the run ending yesterday still counts.
	if got := CompletionStreak(tasks[1:], today); got != 2 {
		t.Fatalf("streak from yesterday = %d, want 2", got)
	}
	if got := CompletionStreak([]model.Task{doneOn(1, today.AddDate(0, 0, -3))}, today); got != 0 {
		t.Fatalf("stale streak = %d, want 0", got)
	}
	if got := CompletionStreak(nil, today); got != 0 {
		t.Fatalf("empty streak = %d", got)
	}
}

func TestEvaluateUnlocksAndNeverRelocks(t *testing.T) {
	tr := NewTracker(nil)
	ctx := context.Background()

	res, err := tr.Data(ctx, []model.Task{doneOn(1, today), doneOn(2, today), doneOn(3, today)}, today)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for _, id := range []string{"first_task", "first_collapse", "heat_death_avoided"} {
		if !tr.IsUnlocked(id) {
			t.Fatalf("expected %s unlocked", id)
		}
	}
	if len(res.NewlyUnlocked) != 3 {
		t.Fatalf("expected 3 new unlocks, got %+v", res.NewlyUnlocked)
	}
	if res.Level.TotalPoints != 10+20+75 {
		t.Fatalf("unexpected points: %+v", res.Level)
	}

	res, err = tr.Data(ctx, nil, today)
	if err != nil {
		t.Fatalf("evaluate empty: %v", err)
	}
	if len(res.NewlyUnlocked) != 0 {
		t.Fatalf("unexpected new unlocks: %+v", res.NewlyUnlocked)
	}
	for _, a := range res.Achievements {
		switch a.ID {
		case "first_task", "first_collapse", "heat_death_avoided":
			if !a.Unlocked {
				t.Fatalf("achievement %s relocked after stats regressed", a.ID)
			}
		}
	}
	if res.Level.TotalPoints != 105 {
		t.Fatalf("points regressed: %+v", res.Level)
	}
}

func TestEvaluateMonotonicOverRandomWalk(t *testing.T) {
	tr := NewTracker(nil)
	ctx := context.Background()
	unlocked := make(map[string]bool)
	walk := []Stats{
		{TotalTasks: 1},
		{TotalTasks: 12, CompletedTasks: 6, CompletionRate: 50},
		{TotalTasks: 0},
		{TotalTasks: 3, CompletedTasks: 3, CompletionRate: 100, Streak: 7},
		{TotalTasks: 2, CompletedTasks: 0},
	}
	for step, stats := range walk {
		res, err := tr.Evaluate(ctx, stats)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		for _, a := range res.Achievements {
			if unlocked[a.ID] && !a.Unlocked {
				t.Fatalf("step %d: %s went true -> false", step, a.ID)
			}
			unlocked[a.ID] = a.Unlocked
		}
	}
	if !unlocked["cosmic_routine"] || !unlocked["task_hoarder"] {
		t.Fatalf("expected streak and hoarder unlocks, got %v", unlocked)
	}
}

type brokenUnlockStore struct{}

func (brokenUnlockStore) UnlockAchievement(context.Context, storage.AchievementUnlock) error {
	return errors.New("read-only universe")
}

func (brokenUnlockStore) ListUnlockedAchievements(context.Context) ([]storage.AchievementUnlock, error) {
	return nil, nil
}

func TestEvaluateKeepsUnlockWhenPersistFails(t *testing.T) {
	tr := NewTracker(brokenUnlockStore{})
	res, err := tr.Evaluate(context.Background(), Stats{TotalTasks: 1})
	if err == nil {
		t.Fatal("expected persist error")
	}
	if !tr.IsUnlocked("first_task") || res.Level.TotalPoints != 10 {
		t.Fatalf("unlock lost on persist failure: %+v", res.Level)
	}
}

func TestTrackerRestoresFromSQLite(t *testing.T) {
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "achievements.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	first := NewTracker(repo)
	if _, err := first.Evaluate(ctx, Stats{TotalTasks: 1, CompletedTasks: 1, CompletionRate: 100}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	second := NewTracker(repo)
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	res, err := second.Evaluate(ctx, Stats{})
	if err != nil {
		t.Fatalf("evaluate after restore: %v", err)
	}
	if !second.IsUnlocked("first_task") || !second.IsUnlocked("first_collapse") {
		t.Fatal("expected unlocks restored from sqlite")
	}
	if res.Level.TotalPoints != 30 {
		t.Fatalf("unexpected restored points: %+v", res.Level)
	}
}

// flakyUnlockStore fails the first write and then behaves like SQLite.
type flakyUnlockStore struct {
	failures int
	rows     map[string]storage.AchievementUnlock
}

func (f *flakyUnlockStore) UnlockAchievement(_ context.Context, in storage.AchievementUnlock) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk busy")
	}
	if _, ok := f.rows[in.ID]; !ok {
		f.rows[in.ID] = in
	}
	return nil
}

func (f *flakyUnlockStore) ListUnlockedAchievements(context.Context) ([]storage.AchievementUnlock, error) {
	out := make([]storage.AchievementUnlock, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func TestEvaluateRetriesFailedPersistUntilRestartSeesIt(t *testing.T) {
	st := &flakyUnlockStore{failures: 1, rows: make(map[string]storage.AchievementUnlock)}
	ctx := t.Context()

	first := NewTracker(st)
	if _, err := first.Evaluate(ctx, Stats{TotalTasks: 1}); err == nil {
		t.Fatal("expected first persist to fail")
	}
	if len(st.rows) != 0 {
		t.Fatalf("nothing should be stored yet: %v", st.rows)
	}

	// Stats regress to zero; the pending unlock is still written.
	if _, err := first.Evaluate(ctx, Stats{}); err != nil {
		t.Fatalf("retry evaluate: %v", err)
	}
	if _, ok := st.rows["first_task"]; !ok {
		t.Fatalf("expected first_task persisted on retry, got %v", st.rows)
	}

	restarted := NewTracker(st)
	if err := restarted.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	res, err := restarted.Evaluate(ctx, Stats{})
	if err != nil {
		t.Fatalf("evaluate after restart: %v", err)
	}
	if !restarted.IsUnlocked("first_task") || res.Level.TotalPoints != 10 {
		t.Fatalf("first_task relocked after restart: %+v", res.Level)
	}
}
