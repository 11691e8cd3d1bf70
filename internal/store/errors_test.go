package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrEventNotFound", err: ErrEventNotFound, expected: true},
		{name: "wrapped ErrEventNotFound", err: fmt.Errorf("get event: %w", ErrEventNotFound), expected: true},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(NewStoreError("event", "append", "id exists", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrEventNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")

	err := NewStoreError("event", "append", "insert failed", cause)
	assert.Equal(t, "append operation on event failed: insert failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("event", "list", "bad limit", nil)
	assert.Equal(t, "list operation on event failed: bad limit", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
