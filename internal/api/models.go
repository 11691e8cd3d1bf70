package api

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// PostTextRequest is the body for asking a question or posting an answer.
// The board accepts any text; these bounds apply to the HTTP surface only.
type PostTextRequest struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

// VoteResponse reports whether a vote changed the post.
type VoteResponse struct {
	Changed bool `json:"changed"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Board  string `json:"board"`
}
