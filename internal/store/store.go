package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/excuse"
	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/storage"
)

const (
	OpAdd            = "add task"
	OpToggle         = "toggle task"
	OpDelete         = "delete task"
	OpExcuse         = "generate excuse"
	OpClearCompleted = "clear completed tasks"
	OpClearAll       = "clear all tasks"
	OpLoad           = "load tasks"
)

// TaskRepository is the persistence the store writes through. A nil
// repository keeps the list in memory only.
type TaskRepository interface {
	CreateTask(ctx context.Context, in storage.Task) error
	UpdateTask(ctx context.Context, in storage.Task) error
	DeleteTask(ctx context.Context, id int) error
	DeleteTasks(ctx context.Context, ids []int) error
	DeleteAllTasks(ctx context.Context) error
	ListTasks(ctx context.Context, filter storage.TaskListFilter) ([]storage.Task, error)
}

type Options struct {
	Repository TaskRepository
	Excuses    *excuse.Generator
	// Random drives life meaning scores. Nil seeds from the clock.
	Random    rand.Source
	Latency   time.Duration
	Now       func() time.Time
	QueueSize int
}

type applyFunc func(ctx context.Context, current []model.Task) ([]model.Task, error)

type request struct {
	ctx   context.Context
	op    string
	apply applyFunc
	reply chan error
}

// Store owns the task list. Mutations are queued and applied one at a
// time by a single writer goroutine; reads return deep copies.
type Store struct {
	mu     sync.RWMutex
	tasks  []model.Task
	nextID int
	errMsg string

	pending atomic.Int64

	repo    TaskRepository
	excuses *excuse.Generator
	rng     *rand.Rand
	latency time.Duration
	now     func() time.Time

	lifecycle sync.Mutex
	stopped   bool
	requests  chan request
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func New(opts Options) *Store {
	src := opts.Random
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	gen := opts.Excuses
	if gen == nil {
		gen = excuse.NewGenerator(0)
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	queue := opts.QueueSize
	if queue <= 0 {
		queue = 16
	}
	s := &Store{
		tasks:    make([]model.Task, 0),
		nextID:   1,
		repo:     opts.Repository,
		excuses:  gen,
		rng:      rand.New(src),
		latency:  opts.Latency,
		now:      now,
		requests: make(chan request, queue),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Close stops the writer after the operations already queued finish.
func (s *Store) Close() {
	s.lifecycle.Lock()
	if s.stopped {
		s.lifecycle.Unlock()
		<-s.doneCh
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.lifecycle.Unlock()
	<-s.doneCh
}

func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneTasks(s.tasks)
}

func (s *Store) Task(id int) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.tasks, id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// IsLoading reports whether any mutation is queued or running.
func (s *Store) IsLoading() bool {
	return s.pending.Load() > 0
}

func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store) AddTask(ctx context.Context, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, &Error{Code: ErrCodeValidation, Op: OpAdd, Err: ErrEmptyText}
	}
	var created model.Task
	err := s.submit(ctx, OpAdd, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		task := model.Task{
			ID:               s.nextID,
			Text:             text,
			LifeMeaningScore: float64(s.rng.IntN(model.MaxLifeMeaningScore-model.MinLifeMeaningScore+1) + model.MinLifeMeaningScore),
			QuantumState:     model.QuantumSuperposition,
			Excuses:          []string{},
			CreatedAt:        s.now(),
		}
		if s.repo != nil {
			if err := s.repo.CreateTask(ctx, toEntity(task)); err != nil {
				return nil, err
			}
		}
		next := make([]model.Task, len(current), len(current)+1)
		copy(next, current)
		created = task.Clone()
		return append(next, task), nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// ToggleTask flips completion. Unknown ids are ignored.
func (s *Store) ToggleTask(ctx context.Context, id int) error {
	return s.submit(ctx, OpToggle, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return current, nil
		}
		task := current[idx].Clone()
		task.Completed = !task.Completed
		if task.Completed {
			at := s.now()
			task.CompletedAt = &at
			task.QuantumState = model.QuantumCollapsed
		} else {
			task.CompletedAt = nil
			task.QuantumState = openState(task)
		}
		return s.replace(ctx, current, idx, task)
	})
}

// DeleteTask removes the task with id. Unknown ids are ignored.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	return s.submit(ctx, OpDelete, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return current, nil
		}
		if s.repo != nil {
			if err := s.repo.DeleteTask(ctx, id); err != nil {
				return nil, err
			}
		}
		next := make([]model.Task, 0, len(current)-1)
		next = append(next, current[:idx]...)
		return append(next, current[idx+1:]...), nil
	})
}

// GenerateExcuse appends a fresh excuse to the task with id. Open tasks
// that collect excuses become entangled.
func (s *Store) GenerateExcuse(ctx context.Context, id int) error {
	return s.submit(ctx, OpExcuse, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return current, nil
		}
		task := current[idx].Clone()
		task.Excuses = append(task.Excuses, s.excuses.Generate(task))
		if !task.Completed {
			task.QuantumState = model.QuantumEntangled
		}
		return s.replace(ctx, current, idx, task)
	})
}

func (s *Store) ClearCompletedTasks(ctx context.Context) error {
	return s.submit(ctx, OpClearCompleted, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		next := make([]model.Task, 0, len(current))
		ids := make([]int, 0)
		for _, t := range current {
			if t.Completed {
				ids = append(ids, t.ID)
				continue
			}
			next = append(next, t)
		}
		if len(ids) == 0 {
			return current, nil
		}
		if s.repo != nil {
			if err := s.repo.DeleteTasks(ctx, ids); err != nil {
				return nil, err
			}
		}
		return next, nil
	})
}

func (s *Store) ClearAllTasks(ctx context.Context) error {
	return s.submit(ctx, OpClearAll, func(ctx context.Context, current []model.Task) ([]model.Task, error) {
		if s.repo != nil {
			if err := s.repo.DeleteAllTasks(ctx); err != nil {
				return nil, err
			}
		}
		return make([]model.Task, 0), nil
	})
}

// Load replaces the in-memory list with the repository contents.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.submit(ctx, OpLoad, func(ctx context.Context, _ []model.Task) ([]model.Task, error) {
		rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
		if err != nil {
			return nil, err
		}
		next := make([]model.Task, 0, len(rows))
		for _, row := range rows {
			task := FromEntity(row)
			if err := task.Validate(); err != nil {
				return nil, fmt.Errorf("task %d: %w", row.ID, err)
			}
			next = append(next, task)
		}
		return next, nil
	})
}

func (s *Store) submit(ctx context.Context, op string, apply applyFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req := request{ctx: ctx, op: op, apply: apply, reply: make(chan error, 1)}

	s.lifecycle.Lock()
	if s.stopped {
		s.lifecycle.Unlock()
		return unexpected(op, ErrStopped)
	}
	s.pending.Add(1)
	// Enqueue under the lifecycle lock so Close cannot drain past us.
	s.requests <- req
	s.lifecycle.Unlock()

	return <-req.reply
}

func (s *Store) loop() {
	defer close(s.doneCh)
	for {
		select {
		case req := <-s.requests:
			s.process(req)
		case <-s.stopCh:
			for {
				select {
				case req := <-s.requests:
					s.process(req)
				default:
					return
				}
			}
		}
	}
}

func (s *Store) process(req request) {

	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.mu.RLock()
	current := s.tasks
	s.mu.RUnlock()

	next, err := s.safeApply(req, current)
	if err != nil {
		se := unexpected(req.op, err)
		s.mu.Lock()
		s.errMsg = fmt.Sprintf("failed to %s: %v", req.op, err)
		s.mu.Unlock()
		s.pending.Add(-1)
		req.reply <- se
		return
	}

	s.mu.Lock()
	s.tasks = next
	if id := maxID(next) + 1; id > s.nextID {
		s.nextID = id
	}
	s.mu.Unlock()
	// Settle the loading flag before the caller wakes up.
	s.pending.Add(-1)
	req.reply <- nil
}

func (s *Store) safeApply(req request, current []model.Task) (next []model.Task, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return req.apply(req.ctx, current)
}

func (s *Store) replace(ctx context.Context, current []model.Task, idx int, task model.Task) ([]model.Task, error) {
	if s.repo != nil {
		if err := s.repo.UpdateTask(ctx, toEntity(task)); err != nil {
			return nil, err
		}
	}
	next := make([]model.Task, len(current))
	copy(next, current)
	next[idx] = task
	return next, nil
}

func openState(t model.Task) model.QuantumState {
	if len(t.Excuses) > 0 {
		return model.QuantumEntangled
	}
	return model.QuantumSuperposition
}

func indexOf(tasks []model.Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func maxID(tasks []model.Task) int {
	out := 0
	for _, t := range tasks {
		if t.ID > out {
			out = t.ID
		}
	}
	return out
}

func toEntity(t model.Task) storage.Task {
	return storage.Task{
		ID:               t.ID,
		Text:             t.Text,
		Completed:        t.Completed,
		LifeMeaningScore: t.LifeMeaningScore,
		QuantumState:     string(t.QuantumState),
		Excuses:          append([]string(nil), t.Excuses...),
		CreatedAt:        t.CreatedAt,
		CompletedAt:      t.CompletedAt,
	}
}

// FromEntity converts a persisted row into a task.
func FromEntity(e storage.Task) model.Task {
	excuses := e.Excuses
	if excuses == nil {
		excuses = []string{}
	}
	return model.Task{
		ID:               e.ID,
		Text:             e.Text,
		Completed:        e.Completed,
		LifeMeaningScore: e.LifeMeaningScore,
		QuantumState:     model.QuantumState(e.QuantumState),
		Excuses:          excuses,
		CreatedAt:        e.CreatedAt,
		CompletedAt:      e.CompletedAt,
	}
}
