package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	apiMiddleware "github.com/phrazzld/overboard/internal/api/middleware"
	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/domain"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/metrics"
	"github.com/phrazzld/overboard/internal/platform/logger"
	"github.com/phrazzld/overboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAPI wires a real board service behind the router.
type testAPI struct {
	t       *testing.T
	handler http.Handler
	board   service.BoardService
	metrics *metrics.Collector
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	_, log := logger.NewTestLogger(t)

	collector := metrics.NewCollector()
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(collector)

	svc, err := service.NewBoardService(domain.NewBoard("Unit Testing"), emitter, log,
		service.WithRuleViolationHook(collector.ObserveRuleViolation))
	require.NoError(t, err)

	return &testAPI{
		t:       t,
		handler: NewRouter(RouterConfig{Board: svc, Metrics: collector, Logger: log}),
		board:   svc,
		metrics: collector,
	}
}

// do sends a request acting as actor (uuid.Nil for none) and decodes the
// JSON response into out when out is non-nil.
func (a *testAPI) do(method, path string, actor uuid.UUID, body any, out any) int {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if actor != uuid.Nil {
		req.Header.Set(apiMiddleware.ActingUserHeader, actor.String())
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(a.t, json.NewDecoder(rec.Body).Decode(out), "body: %s", rec.Body.String())
	}
	return rec.Code
}

func (a *testAPI) createUser(name string) service.UserView {
	a.t.Helper()
	var u service.UserView
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/api/users", uuid.Nil, CreateUserRequest{Name: name}, &u))
	return u
}

func (a *testAPI) reputation(userID uuid.UUID) int {
	a.t.Helper()
	var u service.UserView
	require.Equal(a.t, http.StatusOK, a.do(http.MethodGet, "/api/users/"+userID.String(), uuid.Nil, nil, &u))
	return u.Reputation
}

func TestBoardAPI_Scenario(t *testing.T) {
	a := newTestAPI(t)
	anelle := a.createUser("Anelle")
	sally := a.createUser("Sally")

	var q service.QuestionView
	status := a.do(http.MethodPost, "/api/questions", anelle.ID, PostTextRequest{Text: "What is a unit?"}, &q)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, anelle.ID, q.AuthorID)

	var ans service.AnswerView
	status = a.do(http.MethodPost, "/api/questions/"+q.ID.String()+"/answers", sally.ID,
		PostTextRequest{Text: "The smallest testable part."}, &ans)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, q.ID, ans.QuestionID)

	var vote VoteResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/posts/"+q.ID.String()+"/upvote", sally.ID, nil, &vote))
	assert.True(t, vote.Changed)
	assert.Equal(t, 5, a.reputation(anelle.ID))

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/posts/"+ans.ID.String()+"/upvote", anelle.ID, nil, &vote))
	assert.Equal(t, 10, a.reputation(sally.ID))

	// Voting the same way twice changes nothing.
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/posts/"+ans.ID.String()+"/upvote", anelle.ID, nil, &vote))
	assert.False(t, vote.Changed)

	// Only the question's author may accept.
	var errResp shared.ErrorResponse
	status = a.do(http.MethodPost, "/api/answers/"+ans.ID.String()+"/accept", sally.ID, nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only Anelle can accept this answer as it is their question", errResp.Error)

	var accepted service.AnswerView
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/answers/"+ans.ID.String()+"/accept", anelle.ID, nil, &accepted))
	assert.True(t, accepted.Accepted)
	assert.Equal(t, 25, a.reputation(sally.ID))

	// Self votes are rejected.
	status = a.do(http.MethodPost, "/api/posts/"+q.ID.String()+"/downvote", anelle.ID, nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You cannot vote for yourself!", errResp.Error)
	assert.Equal(t, 5, a.reputation(anelle.ID))

	var mine []service.QuestionView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/users/"+anelle.ID.String()+"/questions", uuid.Nil, nil, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, []uuid.UUID{ans.ID}, mine[0].AnswerIDs)

	var theirs []service.AnswerView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/users/"+sally.ID.String()+"/answers", uuid.Nil, nil, &theirs))
	require.Len(t, theirs, 1)
	assert.True(t, theirs[0].Accepted)
}

func TestBoardAPI_Listing(t *testing.T) {
	a := newTestAPI(t)
	anelle := a.createUser("Anelle")
	sally := a.createUser("Sally")

	var q service.QuestionView
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/questions", anelle.ID, PostTextRequest{Text: "Why?"}, &q))
	require.Equal(t, http.StatusCreated,
		a.do(http.MethodPost, "/api/questions/"+q.ID.String()+"/answers", sally.ID, PostTextRequest{Text: "Because."}, nil))

	var users []service.UserView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/users", uuid.Nil, nil, &users))
	assert.Len(t, users, 2)

	var questions []service.QuestionView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/questions", uuid.Nil, nil, &questions))
	assert.Len(t, questions, 1)

	var got service.QuestionView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/questions/"+q.ID.String(), uuid.Nil, nil, &got))
	assert.Equal(t, "Why?", got.Text)

	var answers []service.AnswerView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/answers", uuid.Nil, nil, &answers))
	require.Len(t, answers, 1)

	var answer service.AnswerView
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/answers/"+answers[0].ID.String(), uuid.Nil, nil, &answer))
	assert.Equal(t, "Because.", answer.Text)

	var health HealthResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", uuid.Nil, nil, &health))
	assert.Equal(t, HealthResponse{Status: "ok", Board: "Unit Testing"}, health)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "overboard_questions_total 1")
	assert.Contains(t, rec.Body.String(), "overboard_answers_total 1")
}

func TestBoardAPI_RequestErrors(t *testing.T) {
	a := newTestAPI(t)
	anelle := a.createUser("Anelle")
	missing := uuid.New()

	tests := []struct {
		name   string
		method string
		path   string
		actor  uuid.UUID
		body   any
		want   int
	}{
		{"ask_without_actor", http.MethodPost, "/api/questions", uuid.Nil, PostTextRequest{Text: "?"}, http.StatusUnauthorized},
		{"ask_unknown_actor", http.MethodPost, "/api/questions", missing, PostTextRequest{Text: "?"}, http.StatusNotFound},
		{"ask_empty_text", http.MethodPost, "/api/questions", anelle.ID, PostTextRequest{}, http.StatusBadRequest},
		{"ask_text_at_limit", http.MethodPost, "/api/questions", anelle.ID,
			PostTextRequest{Text: strings.Repeat("x", 10000)}, http.StatusCreated},
		{"ask_text_too_long", http.MethodPost, "/api/questions", anelle.ID,
			PostTextRequest{Text: strings.Repeat("x", 10001)}, http.StatusBadRequest},
		{"ask_unknown_field", http.MethodPost, "/api/questions", anelle.ID, map[string]string{"body": "?"}, http.StatusBadRequest},
		{"create_user_without_name", http.MethodPost, "/api/users", uuid.Nil, CreateUserRequest{}, http.StatusBadRequest},
		{"get_user_bad_id", http.MethodGet, "/api/users/not-a-uuid", uuid.Nil, nil, http.StatusBadRequest},
		{"get_user_missing", http.MethodGet, "/api/users/" + missing.String(), uuid.Nil, nil, http.StatusNotFound},
		{"get_question_missing", http.MethodGet, "/api/questions/" + missing.String(), uuid.Nil, nil, http.StatusNotFound},
		{"answer_missing_question", http.MethodPost, "/api/questions/" + missing.String() + "/answers", anelle.ID,
			PostTextRequest{Text: "!"}, http.StatusNotFound},
		{"vote_missing_post", http.MethodPost, "/api/posts/" + missing.String() + "/upvote", anelle.ID, nil, http.StatusNotFound},
		{"vote_bad_post_id", http.MethodPost, "/api/posts/nope/downvote", anelle.ID, nil, http.StatusBadRequest},
		{"accept_missing_answer", http.MethodPost, "/api/answers/" + missing.String() + "/accept", anelle.ID, nil, http.StatusNotFound},
		{"accept_without_actor", http.MethodPost, "/api/answers/" + missing.String() + "/accept", uuid.Nil, nil, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var errResp shared.ErrorResponse
			status := a.do(tc.method, tc.path, tc.actor, tc.body, &errResp)
			assert.Equal(t, tc.want, status)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestNewBoardHandlerPanicsWithoutService(t *testing.T) {
	assert.Panics(t, func() { NewBoardHandler(nil, nil) })
}
