package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/overboard/internal/api"
	"github.com/phrazzld/overboard/internal/config"
	"github.com/phrazzld/overboard/internal/domain"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/metrics"
	"github.com/phrazzld/overboard/internal/platform/sqlstore"
	"github.com/phrazzld/overboard/internal/service"
	"github.com/phrazzld/overboard/internal/store"
)

// application holds the shared dependencies of a running board and owns
// their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when no journal database is configured.
	db       *sql.DB
	activity store.ActivityStore

	emitter *events.InMemoryEventEmitter
	metrics *metrics.Collector
	feed    *api.FeedHub
	board   service.BoardService
}

// newApplication builds the board and everything that observes it. When a
// database is configured it is migrated and every board event is journaled
// to it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		emitter: events.NewInMemoryEventEmitter(logger),
		metrics: metrics.NewCollector(),
		feed:    api.NewFeedHub(cfg.Feed.BufferSize, logger),
	}

	if cfg.Database.Enabled() {
		db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, logger); err != nil {
			app.cleanup()
			return nil, err
		}

		app.activity = sqlstore.NewActivityStore(db, logger)
		app.emitter.RegisterHandler(store.NewJournalHandler(app.activity))
		logger.Info("activity journal enabled", "driver", cfg.Database.Driver)
	}

	// The journal is registered first so an event is persisted before it is
	// counted or broadcast.
	app.emitter.RegisterHandler(app.metrics)
	app.emitter.RegisterHandler(app.feed)

	board, err := service.NewBoardService(
		domain.NewBoard(cfg.Board.Name),
		app.emitter,
		logger,
		service.WithRuleViolationHook(app.metrics.ObserveRuleViolation),
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}
	app.board = board

	logger.Info("board created",
		"board_id", board.BoardID(),
		"board_name", board.BoardName())
	return app, nil
}

// router returns the HTTP handler for the board.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Board:   app.board,
		Feed:    app.feed,
		Metrics: app.metrics,
		Logger:  app.logger,
	})
}

// cleanup disconnects feed subscribers and closes the database.
func (app *application) cleanup() {
	app.feed.Close()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		} else {
			app.logger.Info("database connection closed")
		}
	}
}
