package domain

// Question is a Post asking something of the board.
type Question struct {
	post
	text    string
	answers []*Answer
}

var _ Post = (*Question)(nil)

func newQuestion(author *User, text string) *Question {
	return &Question{
		post: newPost(author),
		text: text,
	}
}

// Text returns the question as it was asked.
func (q *Question) Text() string { return q.text }

// Answers returns the answers submitted to q in submission order.
func (q *Question) Answers() []*Answer {
	out := make([]*Answer, len(q.answers))
	copy(out, q.answers)
	return out
}

func (q *Question) addAnswer(a *Answer) {
	q.answers = append(q.answers, a)
}
