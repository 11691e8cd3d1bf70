package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/platform/logger"
)

// ActingUserHeader names the user a mutating request is performed by.
const ActingUserHeader = "X-User-ID"

// RequireActingUser parses the X-User-ID header into the request context.
// Requests without a well-formed user ID are rejected with 401. Whether the
// user exists is left to the handler.
func RequireActingUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		raw := strings.TrimSpace(r.Header.Get(ActingUserHeader))
		if raw == "" {
			log.Debug("missing acting user header")
			shared.RespondWithError(w, r, http.StatusUnauthorized, "X-User-ID header is required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			log.Debug("malformed acting user header", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "X-User-ID header is invalid")
			return
		}

		ctx := shared.WithActingUser(r.Context(), userID)
		ctx = logger.WithContext(ctx, log.With(slog.String("acting_user_id", userID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
