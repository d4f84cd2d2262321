package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:               1,
		Text:             "Observe the cat",
		QuantumState:     QuantumSuperposition,
		LifeMeaningScore: 42,
		CreatedAt:        now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:               1,
		Text:             "Done task",
		Completed:        true,
		QuantumState:     QuantumCollapsed,
		LifeMeaningScore: 10,
		CreatedAt:        now,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task is completed" {
		t.Fatalf("unexpected error: %v", err)
	}

	task.CompletedAt = &now
	task.QuantumState = QuantumSuperposition
	if err := task.Validate(); err == nil {
		t.Fatal("expected superposition error for completed task")
	}
}

func TestTaskValidateInvalidFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:               1,
		Text:             "Bad state",
		QuantumState:     QuantumState("tunnelling"),
		LifeMeaningScore: 50,
		CreatedAt:        now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidQuantumState) {
		t.Fatalf("expected ErrInvalidQuantumState, got: %v", err)
	}

	task.QuantumState = QuantumEntangled
	task.LifeMeaningScore = 101
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidLifeScore) {
		t.Fatalf("expected ErrInvalidLifeScore, got: %v", err)
	}

	task.LifeMeaningScore = 50
	task.Text = "   "
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestCloneDoesNotShareState(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	orig := Task{ID: 1, Text: "x", Excuses: []string{"a"}, CompletedAt: &now}
	cp := orig.Clone()
	cp.Excuses[0] = "b"
	*cp.CompletedAt = now.Add(time.Hour)
	if orig.Excuses[0] != "a" {
		t.Fatalf("clone shares excuses slice: %v", orig.Excuses)
	}
	if !orig.CompletedAt.Equal(now) {
		t.Fatalf("clone shares completed_at pointer: %v", orig.CompletedAt)
	}
}
