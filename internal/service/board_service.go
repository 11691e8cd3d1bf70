package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/domain"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/platform/logger"
)

// Vote directions as they appear in events and metrics.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Rule names passed to a RuleViolationHook.
const (
	RuleSelfVote         = "self_vote"
	RuleAnswerAcceptance = "answer_acceptance"
)

// RuleViolationHook is called whenever a user action is rejected by a
// domain rule.
type RuleViolationHook func(rule string)

// BoardService exposes the board operations to the outer layers.
type BoardService interface {
	// BoardID and BoardName describe the hosted board.
	BoardID() uuid.UUID
	BoardName() string

	// CreateUser registers a new user. Names need not be unique.
	CreateUser(ctx context.Context, name string) (*UserView, error)

	// GetUser returns the user with their current reputation.
	GetUser(ctx context.Context, userID uuid.UUID) (*UserView, error)

	// Users lists every user in creation order.
	Users(ctx context.Context) ([]UserView, error)

	// AskQuestion posts a question authored by authorID.
	AskQuestion(ctx context.Context, authorID uuid.UUID, text string) (*QuestionView, error)

	// AnswerQuestion posts an answer by authorID to questionID.
	AnswerQuestion(ctx context.Context, authorID, questionID uuid.UUID, text string) (*AnswerView, error)

	// GetQuestion and GetAnswer look up a single post.
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*QuestionView, error)
	GetAnswer(ctx context.Context, answerID uuid.UUID) (*AnswerView, error)

	// Questions and Answers list the board registries in creation order.
	Questions(ctx context.Context) ([]QuestionView, error)
	Answers(ctx context.Context) ([]AnswerView, error)

	// UserQuestions and UserAnswers list the posts authored by userID.
	UserQuestions(ctx context.Context, userID uuid.UUID) ([]QuestionView, error)
	UserAnswers(ctx context.Context, userID uuid.UUID) ([]AnswerView, error)

	// UpVote and DownVote cast a vote by voterID on postID and report
	// whether anything changed.
	UpVote(ctx context.Context, voterID, postID uuid.UUID) (bool, error)
	DownVote(ctx context.Context, voterID, postID uuid.UUID) (bool, error)

	// AcceptAnswer marks answerID accepted on behalf of userID.
	AcceptAnswer(ctx context.Context, userID, answerID uuid.UUID) (*AnswerView, error)

	// Reputation computes userID's current reputation.
	Reputation(ctx context.Context, userID uuid.UUID) (int, error)
}

// boardServiceImpl guards a single domain.Board with a RWMutex.
//
// Events are sequenced and queued while the lock is held, then published
// after it is released by whichever caller finds no publisher running. The
// queue is drained in order, so handlers see events in the order the board
// applied them and may still call back into the service.
type boardServiceImpl struct {
	mu        sync.RWMutex
	board     *domain.Board
	emitter   events.EventEmitter
	onViolate RuleViolationHook
	logger    *slog.Logger

	// guarded by mu
	seq        int64
	pending    []pendingEvent
	publishing bool
}

type pendingEvent struct {
	ctx   context.Context
	event *events.BoardEvent
}

// Option customizes a BoardService.
type Option func(*boardServiceImpl)

// WithRuleViolationHook registers hook to observe rejected actions.
func WithRuleViolationHook(hook RuleViolationHook) Option {
	return func(s *boardServiceImpl) {
		s.onViolate = hook
	}
}

// NewBoardService creates a BoardService for board. emitter may be nil, in
// which case no events are published. If logger is nil, slog.Default() is
// used.
func NewBoardService(
	board *domain.Board,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (BoardService, error) {
	if board == nil {
		return nil, &BoardServiceError{
			Operation: "create_service",
			Message:   "board cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &boardServiceImpl{
		board:   board,
		emitter: emitter,
		logger: logger.With(
			"component", "board_service",
			"board_id", board.ID(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *boardServiceImpl) BoardID() uuid.UUID { return s.board.ID() }
func (s *boardServiceImpl) BoardName() string  { return s.board.Name() }

func (s *boardServiceImpl) CreateUser(ctx context.Context, name string) (*UserView, error) {
	s.mu.Lock()
	u := s.board.CreateUser(name)
	view := newUserView(u)
	publish := s.enqueueLocked(ctx, events.TypeUserCreated, view.ID, view.ID, events.UserPayload{Name: name})
	s.mu.Unlock()

	s.log(ctx).Info("user created", "user_id", view.ID, "name", name)
	publish()
	return &view, nil
}

func (s *boardServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.board.User(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	view := newUserView(u)
	return &view, nil
}

func (s *boardServiceImpl) Users(ctx context.Context) ([]UserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.board.Users()
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out, nil
}

func (s *boardServiceImpl) AskQuestion(
	ctx context.Context,
	authorID uuid.UUID,
	text string,
) (*QuestionView, error) {
	s.mu.Lock()
	author, ok := s.board.User(authorID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrUserNotFound
	}
	view := newQuestionView(author.AskQuestion(text))
	publish := s.enqueueLocked(ctx, events.TypeQuestionAsked, authorID, view.ID, events.PostPayload{Text: text})
	s.mu.Unlock()

	s.log(ctx).Info("question asked", "question_id", view.ID, "author_id", authorID)
	publish()
	return &view, nil
}

func (s *boardServiceImpl) AnswerQuestion(
	ctx context.Context,
	authorID, questionID uuid.UUID,
	text string,
) (*AnswerView, error) {
	s.mu.Lock()
	author, ok := s.board.User(authorID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrUserNotFound
	}
	question, ok := s.board.Question(questionID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrQuestionNotFound
	}
	view := newAnswerView(author.AnswerQuestion(question, text))
	publish := s.enqueueLocked(ctx, events.TypeAnswerPosted, authorID, view.ID,
		events.PostPayload{Text: text, QuestionID: &questionID})
	s.mu.Unlock()

	s.log(ctx).Info("answer posted",
		"answer_id", view.ID,
		"question_id", questionID,
		"author_id", authorID)
	publish()
	return &view, nil
}

func (s *boardServiceImpl) GetQuestion(ctx context.Context, questionID uuid.UUID) (*QuestionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.board.Question(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}
	view := newQuestionView(q)
	return &view, nil
}

func (s *boardServiceImpl) GetAnswer(ctx context.Context, answerID uuid.UUID) (*AnswerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.board.Answer(answerID)
	if !ok {
		return nil, ErrAnswerNotFound
	}
	view := newAnswerView(a)
	return &view, nil
}

func (s *boardServiceImpl) Questions(ctx context.Context) ([]QuestionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return questionViews(s.board.Questions()), nil
}

func (s *boardServiceImpl) Answers(ctx context.Context) ([]AnswerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return answerViews(s.board.Answers()), nil
}

func (s *boardServiceImpl) UserQuestions(ctx context.Context, userID uuid.UUID) ([]QuestionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.board.User(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return questionViews(u.Questions()), nil
}

func (s *boardServiceImpl) UserAnswers(ctx context.Context, userID uuid.UUID) ([]AnswerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.board.User(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return answerViews(u.Answers()), nil
}

func (s *boardServiceImpl) UpVote(ctx context.Context, voterID, postID uuid.UUID) (bool, error) {
	return s.vote(ctx, voterID, postID, DirectionUp)
}

func (s *boardServiceImpl) DownVote(ctx context.Context, voterID, postID uuid.UUID) (bool, error) {
	return s.vote(ctx, voterID, postID, DirectionDown)
}

func (s *boardServiceImpl) vote(
	ctx context.Context,
	voterID, postID uuid.UUID,
	direction string,
) (bool, error) {
	log := s.log(ctx).With("voter_id", voterID, "post_id", postID, "direction", direction)

	s.mu.Lock()
	voter, ok := s.board.User(voterID)
	if !ok {
		s.mu.Unlock()
		return false, ErrUserNotFound
	}
	post, ok := s.board.Post(postID)
	if !ok {
		s.mu.Unlock()
		return false, ErrPostNotFound
	}

	var changed bool
	var err error
	if direction == DirectionUp {
		changed, err = voter.UpVote(post)
	} else {
		changed, err = voter.DownVote(post)
	}
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, domain.ErrVoting) {
			s.violation(RuleSelfVote)
		}
		log.Debug("vote rejected", "error", err)
		return false, err
	}
	publish := s.enqueueLocked(ctx, events.TypeVoteCast, voterID, postID,
		events.VotePayload{Direction: direction, Changed: changed})
	s.mu.Unlock()

	log.Info("vote cast", "changed", changed)
	publish()
	return changed, nil
}

func (s *boardServiceImpl) AcceptAnswer(
	ctx context.Context,
	userID, answerID uuid.UUID,
) (*AnswerView, error) {
	log := s.log(ctx).With("user_id", userID, "answer_id", answerID)

	s.mu.Lock()
	u, ok := s.board.User(userID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrUserNotFound
	}
	answer, ok := s.board.Answer(answerID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrAnswerNotFound
	}
	if err := u.AcceptAnswer(answer); err != nil {
		s.mu.Unlock()
		if errors.Is(err, domain.ErrAnswerAcceptance) {
			s.violation(RuleAnswerAcceptance)
		}
		log.Debug("answer acceptance rejected", "error", err)
		return nil, err
	}
	view := newAnswerView(answer)
	publish := s.enqueueLocked(ctx, events.TypeAnswerAccepted, userID, answerID, nil)
	s.mu.Unlock()

	log.Info("answer accepted", "question_id", view.QuestionID)
	publish()
	return &view, nil
}

func (s *boardServiceImpl) Reputation(ctx context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.board.User(userID)
	if !ok {
		return 0, ErrUserNotFound
	}
	return u.Reputation(), nil
}

func (s *boardServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *boardServiceImpl) violation(rule string) {
	if s.onViolate != nil {
		s.onViolate(rule)
	}
}

func noop() {}

// enqueueLocked sequences an event for a mutation that has just been applied
// and queues it for publishing. The caller must hold s.mu and must call the
// returned function after releasing it.
func (s *boardServiceImpl) enqueueLocked(
	ctx context.Context,
	eventType string,
	actorID, subjectID uuid.UUID,
	payload any,
) func() {
	s.seq++
	if s.emitter == nil {
		return noop
	}

	event, err := events.NewBoardEvent(eventType, s.board.ID(), actorID, subjectID, payload)
	if err != nil {
		s.log(ctx).Error("failed to build event", "error", err, "event_type", eventType)
		return noop
	}
	event.Seq = s.seq

	s.pending = append(s.pending, pendingEvent{ctx: context.WithoutCancel(ctx), event: event})
	if s.publishing {
		return noop
	}
	s.publishing = true
	return s.publishPending
}

// publishPending drains the queue in order until it is empty. Only one
// caller runs it at a time. Failures are logged rather than returned: the
// board has changed either way.
func (s *boardServiceImpl) publishPending() {
	drained := false
	defer func() {
		if !drained {
			s.mu.Lock()
			s.publishing = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		if len(batch) == 0 {
			s.publishing = false
			drained = true
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		for _, p := range batch {
			if err := s.emitter.EmitEvent(p.ctx, p.event); err != nil {
				s.log(p.ctx).Error("failed to emit event",
					"error", err,
					"event_id", p.event.ID,
					"event_type", p.event.Type,
					"seq", p.event.Seq)
			}
		}
	}
}
