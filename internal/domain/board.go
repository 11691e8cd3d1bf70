package domain

import (
	"github.com/google/uuid"
)

// Board is a single question-and-answer space. It creates users and keeps
// the authoritative, creation-ordered registries of every question and
// answer posted through them.
type Board struct {
	id        uuid.UUID
	name      string
	users     []*User
	questions []*Question
	answers   []*Answer
}

// NewBoard creates an empty board.
func NewBoard(name string) *Board {
	return &Board{
		id:   uuid.New(),
		name: name,
	}
}

// ID returns the board's identifier.
func (b *Board) ID() uuid.UUID { return b.id }

// Name returns the board's label.
func (b *Board) Name() string { return b.name }

// CreateUser registers a new user on b. Duplicate names are allowed.
func (b *Board) CreateUser(name string) *User {
	u := newUser(b, name)
	b.users = append(b.users, u)
	return u
}

// Users returns every user created by b, oldest first.
func (b *Board) Users() []*User {
	return cloneUsers(b.users)
}

// Questions returns every question on b, oldest first.
func (b *Board) Questions() []*Question {
	out := make([]*Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Answers returns every answer on b across all questions, oldest first.
func (b *Board) Answers() []*Answer {
	out := make([]*Answer, len(b.answers))
	copy(out, b.answers)
	return out
}

// User looks up a user created by b.
func (b *Board) User(id uuid.UUID) (*User, bool) {
	for _, u := range b.users {
		if u.id == id {
			return u, true
		}
	}
	return nil, false
}

// Question looks up a question registered on b.
func (b *Board) Question(id uuid.UUID) (*Question, bool) {
	for _, q := range b.questions {
		if q.id == id {
			return q, true
		}
	}
	return nil, false
}

// Answer looks up an answer registered on b.
func (b *Board) Answer(id uuid.UUID) (*Answer, bool) {
	for _, a := range b.answers {
		if a.id == id {
			return a, true
		}
	}
	return nil, false
}

// Post looks up a question or answer registered on b.
func (b *Board) Post(id uuid.UUID) (Post, bool) {
	if q, ok := b.Question(id); ok {
		return q, true
	}
	if a, ok := b.Answer(id); ok {
		return a, true
	}
	return nil, false
}

func (b *Board) addQuestion(q *Question) {
	b.questions = append(b.questions, q)
}

func (b *Board) addAnswer(a *Answer) {
	b.answers = append(b.answers, a)
}
