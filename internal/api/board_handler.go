package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/platform/logger"
	"github.com/phrazzld/overboard/internal/service"
)

// BoardHandler serves the board's users, posts, votes and acceptances.
type BoardHandler struct {
	board  service.BoardService
	logger *slog.Logger
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(board service.BoardService, logger *slog.Logger) *BoardHandler {
	if board == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("board service cannot be nil for BoardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{
		board:  board,
		logger: logger.With(slog.String("component", "board_handler")),
	}
}

// CreateUser handles POST /api/users.
func (h *BoardHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.board.CreateUser(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// ListUsers handles GET /api/users.
func (h *BoardHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.board.Users(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}.
func (h *BoardHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.board.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListUserQuestions handles GET /api/users/{id}/questions.
func (h *BoardHandler) ListUserQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	questions, err := h.board.UserQuestions(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list questions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, questions)
}

// ListUserAnswers handles GET /api/users/{id}/answers.
func (h *BoardHandler) ListUserAnswers(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	answers, err := h.board.UserAnswers(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list answers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answers)
}

// AskQuestion handles POST /api/questions on behalf of the acting user.
func (h *BoardHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	authorID, ok := shared.ActingUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req PostTextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	question, err := h.board.AskQuestion(r.Context(), authorID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to ask question")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("question asked",
		slog.String("question_id", question.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, question)
}

// ListQuestions handles GET /api/questions.
func (h *BoardHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.board.Questions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list questions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, questions)
}

// GetQuestion handles GET /api/questions/{id}.
func (h *BoardHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	question, err := h.board.GetQuestion(r.Context(), questionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get question")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// AnswerQuestion handles POST /api/questions/{id}/answers on behalf of the
// acting user.
func (h *BoardHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	authorID, questionID, ok := handleActingUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req PostTextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, err := h.board.AnswerQuestion(r.Context(), authorID, questionID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to answer question")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("answer posted",
		slog.String("question_id", questionID.String()),
		slog.String("answer_id", answer.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, answer)
}

// ListAnswers handles GET /api/answers.
func (h *BoardHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.board.Answers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list answers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answers)
}

// GetAnswer handles GET /api/answers/{id}.
func (h *BoardHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	answer, err := h.board.GetAnswer(r.Context(), answerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answer)
}

// AcceptAnswer handles POST /api/answers/{id}/accept on behalf of the
// acting user.
func (h *BoardHandler) AcceptAnswer(w http.ResponseWriter, r *http.Request) {
	userID, answerID, ok := handleActingUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	answer, err := h.board.AcceptAnswer(r.Context(), userID, answerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to accept answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answer)
}

// UpVote handles POST /api/posts/{id}/upvote on behalf of the acting user.
func (h *BoardHandler) UpVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.board.UpVote)
}

// DownVote handles POST /api/posts/{id}/downvote on behalf of the acting user.
func (h *BoardHandler) DownVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.board.DownVote)
}

type voteFunc func(ctx context.Context, voterID, postID uuid.UUID) (bool, error)

func (h *BoardHandler) vote(w http.ResponseWriter, r *http.Request, cast voteFunc) {
	voterID, postID, ok := handleActingUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	changed, err := cast(r.Context(), voterID, postID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to cast vote")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, VoteResponse{Changed: changed})
}
