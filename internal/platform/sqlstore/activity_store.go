package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/platform/logger"
	"github.com/phrazzld/overboard/internal/store"
)

// ActivityStore implements store.ActivityStore over database/sql.
type ActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewActivityStore creates an ActivityStore. The caller owns db.
// If logger is nil, a default logger will be used.
func NewActivityStore(db store.DBTX, logger *slog.Logger) *ActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

var _ store.ActivityStore = (*ActivityStore)(nil)

// Append implements store.ActivityStore.Append.
func (s *ActivityStore) Append(ctx context.Context, event *events.BoardEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if event == nil || event.ID == uuid.Nil || event.Type == "" {
		return fmt.Errorf("%w: event must have an ID and a type", store.ErrInvalidEntity)
	}

	var payload sql.NullString
	if len(event.Payload) > 0 {
		payload = sql.NullString{String: string(event.Payload), Valid: true}
	}

	query := `
		INSERT INTO board_activity
			(id, board_id, event_type, actor_id, subject_id, payload, seq, created_at_ns)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID.String(),
		event.BoardID.String(),
		event.Type,
		event.ActorID.String(),
		event.SubjectID.String(),
		payload,
		event.Seq,
		event.CreatedAt.UnixNano(),
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate event appended",
				slog.String("event_id", event.ID.String()))
		} else {
			log.Error("failed to append event",
				slog.String("error", err.Error()),
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.Type))
		}
		return store.NewStoreError("event", "append", "insert failed", mapped)
	}

	log.Debug("event appended",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))
	return nil
}

// ListByBoard implements store.ActivityStore.ListByBoard.
func (s *ActivityStore) ListByBoard(
	ctx context.Context,
	boardID uuid.UUID,
	limit int,
) ([]*events.BoardEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, board_id, event_type, actor_id, subject_id, payload, seq, created_at_ns
		FROM board_activity
		WHERE board_id = $1
		ORDER BY seq, created_at_ns, id
	`
	args := []any{boardID.String()}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list events",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, store.NewStoreError("event", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var out []*events.BoardEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, store.NewStoreError("event", "list", "scan failed", err)
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("event", "list", "iteration failed", MapError(err))
	}

	log.Debug("events listed",
		slog.String("board_id", boardID.String()),
		slog.Int("count", len(out)))
	return out, nil
}

// GetByID implements store.ActivityStore.GetByID.
func (s *ActivityStore) GetByID(ctx context.Context, id uuid.UUID) (*events.BoardEvent, error) {
	query := `
		SELECT id, board_id, event_type, actor_id, subject_id, payload, seq, created_at_ns
		FROM board_activity
		WHERE id = $1
	`
	event, err := scanEvent(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEventNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get event",
			slog.String("error", err.Error()),
			slog.String("event_id", id.String()))
		return nil, store.NewStoreError("event", "get", "query failed", MapError(err))
	}
	return event, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*events.BoardEvent, error) {
	var (
		event     events.BoardEvent
		payload   sql.NullString
		createdNs int64
	)
	if err := row.Scan(
		&event.ID,
		&event.BoardID,
		&event.Type,
		&event.ActorID,
		&event.SubjectID,
		&payload,
		&event.Seq,
		&createdNs,
	); err != nil {
		return nil, err
	}

	if payload.Valid {
		event.Payload = []byte(payload.String)
	}
	event.CreatedAt = time.Unix(0, createdNs).UTC()
	return &event, nil
}
