package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/platform/logger"
	"github.com/phrazzld/overboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB returns a migrated in-memory SQLite database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	_, log := logger.NewTestLogger(t)

	db, err := Open(ctx, DriverSQLite, ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, DriverSQLite, log))
	return db
}

func newEvent(t *testing.T, boardID uuid.UUID, eventType string, payload any) *events.BoardEvent {
	t.Helper()
	event, err := events.NewBoardEvent(eventType, boardID, uuid.New(), uuid.New(), payload)
	require.NoError(t, err)
	return event
}

func TestActivityStore_AppendAndGet(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	ctx := context.Background()
	boardID := uuid.New()

	event := newEvent(t, boardID, events.TypeVoteCast, events.VotePayload{Direction: "up", Changed: true})
	event.Seq = 7
	require.NoError(t, s.Append(ctx, event))

	got, err := s.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, boardID, got.BoardID)
	assert.Equal(t, event.ActorID, got.ActorID)
	assert.Equal(t, event.SubjectID, got.SubjectID)
	assert.Equal(t, events.TypeVoteCast, got.Type)
	assert.Equal(t, event.Seq, got.Seq)
	assert.True(t, event.CreatedAt.Equal(got.CreatedAt))
	assert.JSONEq(t, string(event.Payload), string(got.Payload))
}

func TestActivityStore_NilPayloadRoundTrips(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	ctx := context.Background()

	event := newEvent(t, uuid.New(), events.TypeAnswerAccepted, nil)
	require.NoError(t, s.Append(ctx, event))

	got, err := s.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Payload)
}

func TestActivityStore_ListByBoard(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	ctx := context.Background()
	boardID := uuid.New()
	otherBoard := uuid.New()

	base := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	var want []uuid.UUID
	for i, eventType := range []string{events.TypeUserCreated, events.TypeQuestionAsked, events.TypeAnswerPosted} {
		event := newEvent(t, boardID, eventType, nil)
		event.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Append(ctx, event))
		want = append(want, event.ID)
	}
	require.NoError(t, s.Append(ctx, newEvent(t, otherBoard, events.TypeUserCreated, nil)))

	all, err := s.ListByBoard(ctx, boardID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, event := range all {
		assert.Equal(t, want[i], event.ID)
	}

	limited, err := s.ListByBoard(ctx, boardID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, want[1], limited[1].ID)

	none, err := s.ListByBoard(ctx, uuid.New(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActivityStore_ListByBoardFollowsSeq(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	ctx := context.Background()
	boardID := uuid.New()

	// Timestamps run backwards relative to the sequence.
	base := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	var want []uuid.UUID
	for i := 1; i <= 3; i++ {
		event := newEvent(t, boardID, events.TypeUserCreated, nil)
		event.Seq = int64(i)
		event.CreatedAt = base.Add(-time.Duration(i) * time.Millisecond)
		require.NoError(t, s.Append(ctx, event))
		want = append(want, event.ID)
	}

	got, err := s.ListByBoard(ctx, boardID, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, event := range got {
		assert.Equal(t, want[i], event.ID)
		assert.Equal(t, int64(i+1), event.Seq)
	}
}

func TestActivityStore_DuplicateAppend(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	ctx := context.Background()

	event := newEvent(t, uuid.New(), events.TypeUserCreated, events.UserPayload{Name: "Anelle"})
	require.NoError(t, s.Append(ctx, event))

	err := s.Append(ctx, event)
	require.Error(t, err)
	assert.True(t, store.IsDuplicateError(err))

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "append", storeErr.Operation)
}

func TestActivityStore_InvalidEvent(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)

	err := s.Append(context.Background(), &events.BoardEvent{})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	err = s.Append(context.Background(), nil)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestActivityStore_GetMissing(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrEventNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestJournalHandlerWritesThroughToDatabase(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db, nil)
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(store.NewJournalHandler(s))
	ctx := context.Background()

	event := newEvent(t, uuid.New(), events.TypeQuestionAsked, events.PostPayload{Text: "What is a unit?"})
	require.NoError(t, emitter.EmitEvent(ctx, event))

	stored, err := s.ListByBoard(ctx, event.BoardID, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	var payload events.PostPayload
	require.NoError(t, stored[0].UnmarshalPayload(&payload))
	assert.Equal(t, "What is a unit?", payload.Text)
}

func TestMigrationStatus(t *testing.T) {
	db := openTestDB(t)

	statuses, err := Status(context.Background(), db, DriverSQLite)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.True(t, s.Applied, "migration %d should be applied", s.Version)
	}
	require.Len(t, statuses, 2)
	assert.Equal(t, int64(1), statuses[0].Version)
	assert.Equal(t, int64(2), statuses[1].Version)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root@/db", nil)
	assert.Error(t, err)

	err = Migrate(context.Background(), nil, "mysql", nil)
	assert.Error(t, err)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), store.ErrNotFound)

	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain))
}
