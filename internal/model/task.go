package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidQuantumState = errors.New("model: invalid quantum state")
	ErrInvalidLifeScore    = errors.New("model: invalid life meaning score")
)

const (
	MinLifeMeaningScore = 1
	MaxLifeMeaningScore = 100
)

type QuantumState string

const (
	QuantumSuperposition QuantumState = "superposition"
	QuantumCollapsed     QuantumState = "collapsed"
	QuantumEntangled     QuantumState = "entangled"
)

func (s QuantumState) IsValid() bool {
	switch s {
	case QuantumSuperposition, QuantumCollapsed, QuantumEntangled:
		return true
	default:
		return false
	}
}

type Task struct {
	ID               int
	Text             string
	Completed        bool
	LifeMeaningScore float64
	QuantumState     QuantumState
	Excuses          []string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.Excuses != nil {
		out.Excuses = append([]string(nil), t.Excuses...)
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.QuantumState.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuantumState, t.QuantumState)
	}
	if t.LifeMeaningScore < MinLifeMeaningScore || t.LifeMeaningScore > MaxLifeMeaningScore {
		return fmt.Errorf("%w: %v", ErrInvalidLifeScore, t.LifeMeaningScore)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is open")
	}
	if t.Completed && t.QuantumState == QuantumSuperposition {
		return errors.New("model: completed task cannot remain in superposition")
	}
	return nil
}

// CloneTasks deep-copies a task list.
func CloneTasks(in []Task) []Task {
	out := make([]Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
