package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardEvent(t *testing.T) {
	boardID, actorID, subjectID := uuid.New(), uuid.New(), uuid.New()

	event, err := NewBoardEvent(TypeVoteCast, boardID, actorID, subjectID,
		VotePayload{Direction: "up", Changed: true})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeVoteCast, event.Type)
	assert.Equal(t, boardID, event.BoardID)
	assert.Equal(t, actorID, event.ActorID)
	assert.Equal(t, subjectID, event.SubjectID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var payload VotePayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, VotePayload{Direction: "up", Changed: true}, payload)
}

func TestNewBoardEvent_NilPayload(t *testing.T) {
	event, err := NewBoardEvent(TypeUserCreated, uuid.New(), uuid.New(), uuid.New(), nil)

	require.NoError(t, err)
	assert.Nil(t, event.Payload)

	b, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "payload")
}

func TestNewBoardEvent_UnencodablePayload(t *testing.T) {
	_, err := NewBoardEvent(TypeUserCreated, uuid.New(), uuid.New(), uuid.New(), make(chan int))
	assert.Error(t, err)
}

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	LastEvent    *BoardEvent
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *BoardEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	var got *BoardEvent
	handler := EventHandlerFunc(func(ctx context.Context, event *BoardEvent) error {
		got = event
		return errors.New("boom")
	})

	event, err := NewBoardEvent(TypeAnswerAccepted, uuid.New(), uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	err = handler.HandleEvent(context.Background(), event)
	assert.EqualError(t, err, "boom")
	assert.Same(t, event, got)
}
