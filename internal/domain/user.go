package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of exactly one Board. Users are compared by identity:
// two *User values are the same user only if they are the same pointer.
// Names are not required to be unique.
type User struct {
	id        uuid.UUID
	name      string
	board     *Board
	createdAt time.Time
}

func newUser(board *Board, name string) *User {
	return &User{
		id:        uuid.New(),
		name:      name,
		board:     board,
		createdAt: time.Now().UTC(),
	}
}

// ID returns the identifier assigned to the user at creation.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Board returns the board the user belongs to.
func (u *User) Board() *Board { return u.board }

// CreatedAt returns when the user was created.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// AskQuestion posts a new question authored by u on u's board.
func (u *User) AskQuestion(text string) *Question {
	q := newQuestion(u, text)
	u.board.addQuestion(q)
	return q
}

// AnswerQuestion posts an answer by u to q and registers it on u's board.
// q is not required to belong to the same board.
func (u *User) AnswerQuestion(q *Question, text string) *Answer {
	a := newAnswer(q, u, text)
	q.addAnswer(a)
	u.board.addAnswer(a)
	return a
}

// AcceptAnswer marks a as the accepted answer to its question. Only the
// question's author may do this; anyone else gets an *AnswerAcceptanceError.
// Accepting an already accepted answer is a no-op. Several answers to the same
// question may be accepted.
func (u *User) AcceptAnswer(a *Answer) error {
	questioner := a.Question().Author()
	if questioner != u {
		return &AnswerAcceptanceError{Acceptor: questioner.Name()}
	}
	a.accept()
	return nil
}

// UpVote records an up-vote by u on p, moving any earlier down-vote.
// It reports whether anything changed; voting the same way twice returns
// false. Voting on one's own post returns a *VotingError.
func (u *User) UpVote(p Post) (bool, error) {
	if p.Author() == u {
		return false, &VotingError{Message: selfVoteMessage}
	}
	return p.base().addUpVoter(u), nil
}

// DownVote records a down-vote by u on p, moving any earlier up-vote.
// It follows the same rules as UpVote.
func (u *User) DownVote(p Post) (bool, error) {
	if p.Author() == u {
		return false, &VotingError{Message: selfVoteMessage}
	}
	return p.base().addDownVoter(u), nil
}

// Questions returns the questions on u's board authored by u, oldest first.
func (u *User) Questions() []*Question {
	var out []*Question
	for _, q := range u.board.questions {
		if q.Author() == u {
			out = append(out, q)
		}
	}
	return out
}

// Answers returns the answers on u's board authored by u, oldest first.
func (u *User) Answers() []*Answer {
	var out []*Answer
	for _, a := range u.board.answers {
		if a.Author() == u {
			out = append(out, a)
		}
	}
	return out
}

// Reputation computes u's score from the current state of the board.
func (u *User) Reputation() int {
	return ScoreReputation(u.Questions(), u.Answers())
}
