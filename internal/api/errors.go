package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/domain"
	"github.com/phrazzld/overboard/internal/service"
)

// Request errors raised by the handlers themselves.
var (
	// ErrInvalidID indicates a path parameter is not a valid UUID.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidRequest indicates a malformed or invalid request body.
	ErrInvalidRequest = errors.New("invalid request")
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so no
// internal error type leaks to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Board rule violations
	case errors.Is(err, domain.ErrVoting),
		errors.Is(err, domain.ErrAnswerAcceptance):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Rule violations
// carry their own message since it is meant for the user.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var voteErr *domain.VotingError
	var acceptErr *domain.AnswerAcceptanceError

	switch {
	case errors.As(err, &voteErr):
		return voteErr.Error()
	case errors.As(err, &acceptErr):
		return acceptErr.Error()

	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrQuestionNotFound):
		return "Question not found"
	case errors.Is(err, service.ErrAnswerNotFound):
		return "Answer not found"
	case errors.Is(err, service.ErrPostNotFound):
		return "Post not found"

	case errors.Is(err, ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, ErrInvalidRequest):
		return "Invalid request format"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for err. A non-empty message replaces
// the safe message for server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && message != "" {
		safeMessage = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, safeMessage, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'AskRequest.Text' Error:Field validation for 'Text' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "notblank":
		return "must not be blank"
	default:
		return "validation failed"
	}
}
