package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the full persistence surface one qtodo process opens.
type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id int) error
	DeleteTasks(ctx context.Context, ids []int) error
	DeleteAllTasks(ctx context.Context) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	UnlockAchievement(ctx context.Context, in AchievementUnlock) error
	ListUnlockedAchievements(ctx context.Context) ([]AchievementUnlock, error)

	Close() error
}

var _ Repository = (*SQLiteRepository)(nil)
