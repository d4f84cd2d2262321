package gamification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/productivity"
	"github.com/sandeepkv93/quantumtodo/internal/storage"
)

// UnlockStore persists unlocked achievement ids.
type UnlockStore interface {
	UnlockAchievement(ctx context.Context, in storage.AchievementUnlock) error
	ListUnlockedAchievements(ctx context.Context) ([]storage.AchievementUnlock, error)
}

type Result struct {
	Achievements  []Achievement
	Level         Level
	NewlyUnlocked []Achievement
}

// Tracker remembers which achievements have unlocked. Unlocks are never
// revoked, even when the task list later shrinks. Unlocks the store has
// not accepted yet stay pending and are retried on every Evaluate.
type Tracker struct {
	mu       sync.Mutex
	unlocked map[string]time.Time
	pending  map[string]time.Time
	store    UnlockStore
	now      func() time.Time
}

func NewTracker(store UnlockStore) *Tracker {
	return &Tracker{
		unlocked: make(map[string]time.Time),
		pending:  make(map[string]time.Time),
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Restore loads previously persisted unlocks.
func (t *Tracker) Restore(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	rows, err := t.store.ListUnlockedAchievements(ctx)
	if err != nil {
		return fmt.Errorf("restore achievements: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range rows {
		if _, ok := t.unlocked[row.ID]; !ok {
			t.unlocked[row.ID] = row.UnlockedAt
		}
		delete(t.pending, row.ID)
	}
	return nil
}

// Evaluate unlocks every achievement whose threshold stats meets. The
// returned result is valid even when persisting unlocks fails.
func (t *Tracker) Evaluate(ctx context.Context, stats Stats) (Result, error) {
	t.mu.Lock()
	now := t.now()
	fresh := make([]Achievement, 0)
	all := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		a := r.Achievement
		if _, ok := t.unlocked[a.ID]; !ok && r.predicate(stats) {
			t.unlocked[a.ID] = now
			if t.store != nil {
				t.pending[a.ID] = now
			}
			a.Unlocked = true
			fresh = append(fresh, a)
		}
		_, a.Unlocked = t.unlocked[a.ID]
		all = append(all, a)
	}
	t.mu.Unlock()

	res := Result{
		Achievements:  all,
		Level:         LevelForPoints(TotalPoints(all)),
		NewlyUnlocked: fresh,
	}
	return res, t.flush(ctx)
}

// flush persists pending unlocks in catalog order.
func (t *Tracker) flush(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	var errs []error
	for _, r := range rules {
		id := r.Achievement.ID
		t.mu.Lock()
		at, ok := t.pending[id]
		t.mu.Unlock()
		if !ok {
			continue
		}
		if err := t.store.UnlockAchievement(ctx, storage.AchievementUnlock{ID: id, UnlockedAt: at}); err != nil {
			errs = append(errs, fmt.Errorf("persist achievement %s: %w", id, err))
			continue
		}
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}
	return errors.Join(errs...)
}

// Data derives stats from tasks and evaluates them.
func (t *Tracker) Data(ctx context.Context, tasks []model.Task, now time.Time) (Result, error) {
	return t.Evaluate(ctx, StatsFromTasks(tasks, now))
}

func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.unlocked[id]
	return ok
}

func StatsFromTasks(tasks []model.Task, now time.Time) Stats {
	p := productivity.Calculate(tasks)
	return Stats{
		TotalTasks:     p.TotalTasks,
		CompletedTasks: p.CompletedTasks,
		CompletionRate: p.CompletionRate,
		Streak:         CompletionStreak(tasks, now),
	}
}

// CompletionStreak counts consecutive calendar days with at least one
// completion, ending today or, if nothing is done yet today, yesterday.
func CompletionStreak(tasks []model.Task, now time.Time) int {
	days := make(map[string]bool)
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			days[t.CompletedAt.In(now.Location()).Format(time.DateOnly)] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	day := now
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
