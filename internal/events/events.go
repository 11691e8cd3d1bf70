package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted for board activity.
const (
	TypeUserCreated    = "user_created"
	TypeQuestionAsked  = "question_asked"
	TypeAnswerPosted   = "answer_posted"
	TypeVoteCast       = "vote_cast"
	TypeAnswerAccepted = "answer_accepted"
)

// BoardEvent records one thing that happened on a board.
type BoardEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// BoardID identifies the board the event happened on
	BoardID uuid.UUID `json:"board_id"`

	// ActorID is the user who acted
	ActorID uuid.UUID `json:"actor_id"`

	// SubjectID is the entity acted upon: the new user, question or answer,
	// or the post that was voted on
	SubjectID uuid.UUID `json:"subject_id"`

	// Payload holds type-specific details serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// Seq orders events within a board. It is assigned by the board service
	// in mutation order and starts at 1; zero means unsequenced.
	Seq int64 `json:"seq"`

	CreatedAt time.Time `json:"created_at"`
}

// VotePayload is the payload of a TypeVoteCast event.
type VotePayload struct {
	Direction string `json:"direction"`
	Changed   bool   `json:"changed"`
}

// PostPayload is the payload of TypeQuestionAsked and TypeAnswerPosted
// events. QuestionID is only set for answers.
type PostPayload struct {
	Text       string     `json:"text"`
	QuestionID *uuid.UUID `json:"question_id,omitempty"`
}

// UserPayload is the payload of a TypeUserCreated event.
type UserPayload struct {
	Name string `json:"name"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *BoardEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewBoardEvent creates a BoardEvent with a fresh ID and timestamp.
// A nil payload leaves Payload empty.
func NewBoardEvent(eventType string, boardID, actorID, subjectID uuid.UUID, payload any) (*BoardEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &BoardEvent{
		ID:        uuid.New(),
		Type:      eventType,
		BoardID:   boardID,
		ActorID:   actorID,
		SubjectID: subjectID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that react to events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *BoardEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *BoardEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *BoardEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that publish events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *BoardEvent) error
}
