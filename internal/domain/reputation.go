package domain

// Reputation weights.
const (
	QuestionUpVotePoints = 5
	AnswerUpVotePoints   = 10
	AnswerDownVotePoints = -1
	AcceptedAnswerPoints = 15
)

// ScoreReputation sums the reputation earned by the given questions and
// answers. Down-votes on questions do not count. The result may be negative.
func ScoreReputation(questions []*Question, answers []*Answer) int {
	reputation := 0
	for _, q := range questions {
		reputation += q.UpVotes() * QuestionUpVotePoints
	}
	for _, a := range answers {
		reputation += a.UpVotes() * AnswerUpVotePoints
		reputation += a.DownVotes() * AnswerDownVotePoints
		if a.IsAccepted() {
			reputation += AcceptedAnswerPoints
		}
	}
	return reputation
}
