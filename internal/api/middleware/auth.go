package middleware

import (
	"context"
	"net/http"

	"github.com/intega-app/intega/internal/api/apierr"
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth creates authentication middleware requiring a resolved identity
// with the given role. An empty role admits any authenticated user.
func Auth(binder *session.Binder, required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome, err := binder.Resolve(r.Context(), r)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			switch auth.Authorize(outcome, required) {
			case auth.Allow:
			case auth.DenyWrongRole:
				apierr.WriteError(w, apierr.NewWrongRoleError())
				return
			default:
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, outcome.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.UserRecord {
	user, _ := ctx.Value(userContextKey).(*model.UserRecord)
	return user
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.UserRecord {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
