package store

import (
	"context"
	"fmt"

	"github.com/phrazzld/overboard/internal/events"
)

// JournalHandler is an events.EventHandler that appends every event it
// receives to an ActivityStore.
type JournalHandler struct {
	activity ActivityStore
}

// NewJournalHandler creates a JournalHandler writing to activity.
func NewJournalHandler(activity ActivityStore) *JournalHandler {
	return &JournalHandler{activity: activity}
}

var _ events.EventHandler = (*JournalHandler)(nil)

// HandleEvent implements events.EventHandler.
func (h *JournalHandler) HandleEvent(ctx context.Context, event *events.BoardEvent) error {
	if err := h.activity.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to journal %s event: %w", event.Type, err)
	}
	return nil
}
