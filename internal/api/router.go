package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/overboard/internal/api/middleware"
	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/metrics"
	"github.com/phrazzld/overboard/internal/service"
)

// RouterConfig carries the dependencies of NewRouter. Feed and Metrics are
// optional; their routes are not mounted when nil.
type RouterConfig struct {
	Board   service.BoardService
	Feed    *FeedHub
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// NewRouter builds the chi router serving the board API.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(log))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	boardHandler := NewBoardHandler(cfg.Board, log)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", boardHandler.CreateUser)
		r.Get("/users", boardHandler.ListUsers)
		r.Get("/users/{id}", boardHandler.GetUser)
		r.Get("/users/{id}/questions", boardHandler.ListUserQuestions)
		r.Get("/users/{id}/answers", boardHandler.ListUserAnswers)

		r.Get("/questions", boardHandler.ListQuestions)
		r.Get("/questions/{id}", boardHandler.GetQuestion)
		r.Get("/answers", boardHandler.ListAnswers)
		r.Get("/answers/{id}", boardHandler.GetAnswer)

		// Actions performed by a user
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireActingUser)

			r.Post("/questions", boardHandler.AskQuestion)
			r.Post("/questions/{id}/answers", boardHandler.AnswerQuestion)
			r.Post("/answers/{id}/accept", boardHandler.AcceptAnswer)
			r.Post("/posts/{id}/upvote", boardHandler.UpVote)
			r.Post("/posts/{id}/downvote", boardHandler.DownVote)
		})

		if cfg.Feed != nil {
			r.Method(http.MethodGet, "/feed", cfg.Feed)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
			Status: "ok",
			Board:  cfg.Board.BoardName(),
		})
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r
}
