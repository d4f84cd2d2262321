package store

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "validation"
	ErrCodeUnexpected ErrorCode = "unexpected"
)

var (
	ErrEmptyText  = errors.New("store: task text is required")
	ErrStopped    = errors.New("store: stopped")
	ErrUnexpected = errors.New("store: unexpected failure")
)

// Error is returned by store operations. Unexpected errors also land in
// the store's dismissible error message.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeValidation
}

func IsUnexpected(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeUnexpected
}

func unexpected(op string, err error) *Error {
	if !errors.Is(err, ErrUnexpected) {
		err = fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	return &Error{Code: ErrCodeUnexpected, Op: op, Err: err}
}
