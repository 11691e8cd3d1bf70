package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/domain"
)

// UserView is a point-in-time copy of a user and their reputation.
type UserView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Reputation int       `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionView is a point-in-time copy of a question.
type QuestionView struct {
	ID         uuid.UUID   `json:"id"`
	AuthorID   uuid.UUID   `json:"author_id"`
	AuthorName string      `json:"author_name"`
	Text       string      `json:"text"`
	UpVotes    int         `json:"up_votes"`
	DownVotes  int         `json:"down_votes"`
	AnswerIDs  []uuid.UUID `json:"answer_ids"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AnswerView is a point-in-time copy of an answer.
type AnswerView struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	UpVotes    int       `json:"up_votes"`
	DownVotes  int       `json:"down_votes"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserView(u *domain.User) UserView {
	return UserView{
		ID:         u.ID(),
		Name:       u.Name(),
		Reputation: u.Reputation(),
		CreatedAt:  u.CreatedAt(),
	}
}

func newQuestionView(q *domain.Question) QuestionView {
	answers := q.Answers()
	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.ID())
	}
	return QuestionView{
		ID:         q.ID(),
		AuthorID:   q.Author().ID(),
		AuthorName: q.Author().Name(),
		Text:       q.Text(),
		UpVotes:    q.UpVotes(),
		DownVotes:  q.DownVotes(),
		AnswerIDs:  ids,
		CreatedAt:  q.CreatedAt(),
	}
}

func newAnswerView(a *domain.Answer) AnswerView {
	return AnswerView{
		ID:         a.ID(),
		QuestionID: a.Question().ID(),
		AuthorID:   a.Author().ID(),
		AuthorName: a.Author().Name(),
		Text:       a.Text(),
		UpVotes:    a.UpVotes(),
		DownVotes:  a.DownVotes(),
		Accepted:   a.IsAccepted(),
		CreatedAt:  a.CreatedAt(),
	}
}

func questionViews(qs []*domain.Question) []QuestionView {
	out := make([]QuestionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, newQuestionView(q))
	}
	return out
}

func answerViews(as []*domain.Answer) []AnswerView {
	out := make([]AnswerView, 0, len(as))
	for _, a := range as {
		out = append(out, newAnswerView(a))
	}
	return out
}
