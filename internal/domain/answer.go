package domain

// Answer is a Post responding to a Question. Once accepted by the question's
// author it stays accepted.
type Answer struct {
	post
	question *Question
	text     string
	accepted bool
}

var _ Post = (*Answer)(nil)

func newAnswer(question *Question, author *User, text string) *Answer {
	return &Answer{
		post:     newPost(author),
		question: question,
		text:     text,
	}
}

// Question returns the question this answer responds to.
func (a *Answer) Question() *Question { return a.question }

// Text returns the answer body.
func (a *Answer) Text() string { return a.text }

// IsAccepted reports whether the question's author has accepted this answer.
func (a *Answer) IsAccepted() bool { return a.accepted }

func (a *Answer) accept() {
	a.accepted = true
}
