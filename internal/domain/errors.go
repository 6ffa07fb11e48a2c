package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBoardNotStarted is returned when an action arrives before the board was opened.
	ErrBoardNotStarted = errors.New("board not started")
	// ErrEmptyPrompt indicates a question record without prompt text.
	ErrEmptyPrompt = errors.New("question prompt is empty")
	// ErrInvalidPoints indicates an answer record with negative points.
	ErrInvalidPoints = errors.New("answer points must not be negative")
)

// RecordError points at the question record that failed validation.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("question %d: %v", e.Index+1, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
