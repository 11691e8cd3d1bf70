package domain

import (
	"errors"
	"fmt"
)

// Business rule violations. Both are terminal for the attempted action and
// are never worth retrying.
var (
	// ErrVoting is matched by every *VotingError.
	ErrVoting = errors.New("voting rule violated")

	// ErrAnswerAcceptance is matched by every *AnswerAcceptanceError.
	ErrAnswerAcceptance = errors.New("answer acceptance rule violated")
)

// selfVoteMessage is the fixed message carried by self-vote errors.
const selfVoteMessage = "You cannot vote for yourself!"

// VotingError is returned when a user votes on a post they authored.
type VotingError struct {
	Message string
}

// Error implements the error interface for VotingError.
func (e *VotingError) Error() string {
	return e.Message
}

// Is reports whether target is ErrVoting.
func (e *VotingError) Is(target error) bool {
	return target == ErrVoting
}

// AnswerAcceptanceError is returned when someone other than the question's
// author tries to accept an answer. Acceptor names the user who may.
type AnswerAcceptanceError struct {
	Acceptor string
}

// Error implements the error interface for AnswerAcceptanceError.
func (e *AnswerAcceptanceError) Error() string {
	return fmt.Sprintf("Only %s can accept this answer as it is their question", e.Acceptor)
}

// Is reports whether target is ErrAnswerAcceptance.
func (e *AnswerAcceptanceError) Is(target error) bool {
	return target == ErrAnswerAcceptance
}
