package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/domain"
	"github.com/phrazzld/overboard/internal/platform/logger"
	"github.com/phrazzld/overboard/internal/service"
)

// ErrUnexpectedOutcome indicates a step did not behave as the scenario
// declared.
var ErrUnexpectedOutcome = errors.New("unexpected step outcome")

// StepError reports the step that stopped a run.
type StepError struct {
	// Index is the 1-based position of the step in the scenario
	Index int
	// Action is the step's action
	Action string
	// Err is the underlying error
	Err error
}

// Error implements the error interface for StepError.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Action, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// UserResult is a user's state after a run.
type UserResult struct {
	Ref        string    `json:"ref"        yaml:"ref"`
	Name       string    `json:"name"       yaml:"name"`
	ID         uuid.UUID `json:"id"         yaml:"id"`
	Reputation int       `json:"reputation" yaml:"reputation"`
}

// Report summarizes a completed run.
type Report struct {
	Scenario   string       `json:"scenario"   yaml:"scenario"`
	Steps      int          `json:"steps"      yaml:"steps"`
	Violations int          `json:"violations" yaml:"violations"`
	Users      []UserResult `json:"users"      yaml:"users"`
}

// Run applies sc to board and reports every user's final reputation. It
// stops at the first step whose outcome differs from what the scenario
// declares.
func Run(ctx context.Context, board service.BoardService, sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, slog.Default()).With(slog.String("scenario", sc.Name))

	r := &runner{
		board: board,
		users: make(map[string]uuid.UUID, len(sc.Users)),
		posts: make(map[string]uuid.UUID),
	}

	for _, u := range sc.Users {
		view, err := board.CreateUser(ctx, u.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", u.Name, err)
		}
		r.users[u.ref()] = view.ID
	}

	report := &Report{Scenario: sc.Name}
	for i, step := range sc.Steps {
		violated, err := r.apply(ctx, step)
		if err != nil {
			return nil, &StepError{Index: i + 1, Action: step.Action, Err: err}
		}
		if violated {
			report.Violations++
		}
		report.Steps++

		log.Debug("step applied",
			slog.Int("step", i+1),
			slog.String("action", step.Action),
			slog.String("as", step.As))
	}

	for _, u := range sc.Users {
		view, err := board.GetUser(ctx, r.users[u.ref()])
		if err != nil {
			return nil, err
		}
		report.Users = append(report.Users, UserResult{
			Ref:        u.ref(),
			Name:       view.Name,
			ID:         view.ID,
			Reputation: view.Reputation,
		})
	}

	log.Info("scenario applied",
		slog.Int("steps", report.Steps),
		slog.Int("violations", report.Violations))
	return report, nil
}

type runner struct {
	board service.BoardService
	users map[string]uuid.UUID
	posts map[string]uuid.UUID
}

// apply performs one step and reports whether it hit the expected rule
// violation.
func (r *runner) apply(ctx context.Context, step Step) (bool, error) {
	actor := r.users[step.As]
	target := r.posts[step.Target]

	var (
		changed    bool
		hasChanged bool
		err        error
	)
	switch step.Action {
	case ActionAsk:
		var q *service.QuestionView
		if q, err = r.board.AskQuestion(ctx, actor, step.Text); err == nil {
			r.remember(step.Ref, q.ID)
		}
	case ActionAnswer:
		var a *service.AnswerView
		if a, err = r.board.AnswerQuestion(ctx, actor, target, step.Text); err == nil {
			r.remember(step.Ref, a.ID)
		}
	case ActionUpVote:
		changed, err = r.board.UpVote(ctx, actor, target)
		hasChanged = true
	case ActionDownVote:
		changed, err = r.board.DownVote(ctx, actor, target)
		hasChanged = true
	case ActionAccept:
		_, err = r.board.AcceptAnswer(ctx, actor, target)
	default:
		return false, fmt.Errorf("%w: unknown action %q", ErrInvalidScenario, step.Action)
	}

	if step.ExpectError != "" {
		if !matchesExpectation(err, step.ExpectError) {
			return false, fmt.Errorf("%w: expected %s error, got %v", ErrUnexpectedOutcome, step.ExpectError, err)
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if step.ExpectChanged != nil && hasChanged && *step.ExpectChanged != changed {
		return false, fmt.Errorf("%w: expected changed=%t, got %t", ErrUnexpectedOutcome, *step.ExpectChanged, changed)
	}
	return false, nil
}

func (r *runner) remember(ref string, id uuid.UUID) {
	if ref != "" {
		r.posts[ref] = id
	}
}

func matchesExpectation(err error, expect string) bool {
	switch expect {
	case ExpectVoting:
		return errors.Is(err, domain.ErrVoting)
	case ExpectAcceptance:
		return errors.Is(err, domain.ErrAnswerAcceptance)
	default:
		return false
	}
}
