package middleware

import (
	"context"
	"net/http"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
)

type contextKey string

const userContextKey contextKey = "user"

// GetUser retrieves the authenticated user from the request context.
// Returns nil if no user is authenticated.
func GetUser(ctx context.Context) *model.UserRecord {
	user, _ := ctx.Value(userContextKey).(*model.UserRecord)
	return user
}

// Auth returns middleware that requires an authenticated user with the
// given role; an empty role admits any authenticated user. Unauthenticated
// visitors are sent to the login page with a return path, wrong-role users
// to their own landing page.
func Auth(binder *session.Binder, required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome, err := binder.Resolve(r.Context(), r)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			switch auth.Authorize(outcome, required) {
			case auth.Allow:
			case auth.DenyWrongRole:
				SetFlash(w, "error", "You do not have access to that page")
				http.Redirect(w, r, auth.HomeFor(outcome.User.Role), http.StatusSeeOther)
				return
			default:
				http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, outcome.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that resolves the session if present but
// doesn't require it. Sets the user in context if authenticated.
func OptionalAuth(binder *session.Binder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome, err := binder.Resolve(r.Context(), r)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, outcome.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
