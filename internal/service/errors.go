package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the board service. Domain rule violations
// (domain.ErrVoting, domain.ErrAnswerAcceptance) are returned unwrapped so
// callers can match them with errors.Is and errors.As.
var (
	// ErrNotFound is the parent of every entity-specific not found error.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound indicates no user with the given ID exists on the board.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrQuestionNotFound indicates no question with the given ID exists on the board.
	ErrQuestionNotFound = fmt.Errorf("%w: question", ErrNotFound)

	// ErrAnswerNotFound indicates no answer with the given ID exists on the board.
	ErrAnswerNotFound = fmt.Errorf("%w: answer", ErrNotFound)

	// ErrPostNotFound indicates no question or answer with the given ID exists.
	ErrPostNotFound = fmt.Errorf("%w: post", ErrNotFound)
)

// BoardServiceError wraps unexpected failures with the operation that hit them.
type BoardServiceError struct {
	// Operation is the operation that failed (e.g., "create_service")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface for BoardServiceError.
func (e *BoardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("board service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BoardServiceError) Unwrap() error {
	return e.Err
}
