package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/astrology"
	"github.com/sandeepkv93/quantumtodo/internal/config"
	"github.com/sandeepkv93/quantumtodo/internal/excuse"
	"github.com/sandeepkv93/quantumtodo/internal/gamification"
	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/motivation"
	"github.com/sandeepkv93/quantumtodo/internal/storage"
	"github.com/sandeepkv93/quantumtodo/internal/store"
)

// runtime is everything one invocation needs, wired from config.
type runtime struct {
	cfg        config.Config
	repo       storage.Repository
	store      *store.Store
	tracker    *gamification.Tracker
	astrology  astrology.Calculator
	motivation *motivation.Generator
	now        func() time.Time
}

func openRuntime(ctx context.Context, cfg config.Config, interactive bool) (*runtime, error) {
	rt := &runtime{
		cfg:        cfg,
		astrology:  astrology.New(cfg.AstrologySeed),
		motivation: motivation.NewGenerator(cfg.MotivationSeed),
		now:        time.Now,
	}

	var taskRepo store.TaskRepository
	var unlockStore gamification.UnlockStore
	if !cfg.InMemory {
		repo, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		rt.repo = repo
		taskRepo = repo
		unlockStore = repo
	}

	latency := time.Duration(0)
	if interactive {
		latency = cfg.Latency
	}
	rt.store = store.New(store.Options{
		Repository: taskRepo,
		Excuses:    excuse.NewGenerator(cfg.ExcuseSeed),
		Latency:    latency,
	})
	rt.tracker = gamification.NewTracker(unlockStore)

	if err := rt.tracker.Restore(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	if !interactive {
		if err := rt.store.Load(ctx); err != nil {
			rt.Close()
			return nil, err
		}
	}
	return rt, nil
}

func (rt *runtime) Close() {
	rt.store.Close()
	if rt.repo != nil {
		_ = rt.repo.Close()
	}
}

func (rt *runtime) gamification(ctx context.Context) (gamification.Result, error) {
	return rt.tracker.Data(ctx, rt.store.Tasks(), rt.now())
}

// listTasks pushes filtering and paging down to SQL. In-memory runs have
// no database, so the store snapshot is filtered the same way.
func (rt *runtime) listTasks(ctx context.Context, filter storage.TaskListFilter) ([]model.Task, error) {
	if rt.repo == nil {
		return filterTasks(rt.store.Tasks(), filter), nil
	}
	rows, err := rt.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.FromEntity(row))
	}
	return out, nil
}

func filterTasks(tasks []model.Task, filter storage.TaskListFilter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, t)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return out[:0]
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out
}
