package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/events"
)

// ActivityStore defines the interface for the board activity journal.
type ActivityStore interface {
	// Append records an event. Appending an event whose ID is already
	// stored returns ErrDuplicate.
	Append(ctx context.Context, event *events.BoardEvent) error

	// ListByBoard returns up to limit events for boardID in Seq order.
	// A limit of zero or less returns every event.
	ListByBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]*events.BoardEvent, error)

	// GetByID retrieves a single event. Returns ErrEventNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*events.BoardEvent, error)
}
