package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
)

const (
	// CookieName is the session cookie holding the bound user id
	CookieName = "intega_session"

	userIDKey = "user_id"
)

// Outcome is the per-request authentication result. It is derived fresh on
// every request and never cached beyond it.
type Outcome struct {
	// User is the resolved record, nil when unauthenticated
	User *model.UserRecord
}

// Authenticated reports whether the outcome carries a resolved identity
func (o Outcome) Authenticated() bool { return o.User != nil }

// Unauthenticated is the zero outcome
var Unauthenticated = Outcome{}

// Binder bridges a successful credential check and per-request identity
// resolution. It stores only the numeric user id in the session; the full
// record is re-resolved through the user store on every request, so account
// deletion takes effect immediately.
type Binder struct {
	cookies sessions.Store
	users   storage.UserStore
}

// NewBinder creates a Binder over the given cookie store and user store
func NewBinder(cookies sessions.Store, users storage.UserStore) *Binder {
	return &Binder{
		cookies: cookies,
		users:   users,
	}
}

// NewCookieStore builds the gorilla cookie store used in production wiring.
// hashKey authenticates the cookie, blockKey encrypts it; both come from
// configuration so sessions survive restarts.
func NewCookieStore(hashKey, blockKey []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Bind stores the user's id in the request's session. Rebinding the same id
// is a no-op as far as any later Resolve can observe.
func (b *Binder) Bind(w http.ResponseWriter, r *http.Request, user *model.UserRecord) error {
	sess, _ := b.cookies.Get(r, CookieName)
	sess.Values[userIDKey] = int64(user.ID)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Resolve derives the authentication outcome for the request. A missing or
// undecodable cookie, an absent bound id, or an id that no longer resolves
// to a record all yield Unauthenticated; only a failing user store is an
// error, which the route layer turns into a generic 500.
func (b *Binder) Resolve(ctx context.Context, r *http.Request) (Outcome, error) {
	sess, err := b.cookies.Get(r, CookieName)
	if err != nil {
		// Tampered or stale cookie: treat as logged out, not as a failure
		return Unauthenticated, nil
	}

	raw, ok := sess.Values[userIDKey].(int64)
	if !ok {
		return Unauthenticated, nil
	}

	user, err := b.users.GetUserByID(ctx, model.UserID(raw))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return Unauthenticated, nil
		}
		return Unauthenticated, fmt.Errorf("resolve session identity: %w", err)
	}

	return Outcome{User: user}, nil
}

// Unbind clears the bound id and expires the cookie. Unbinding a session
// that was never bound succeeds.
func (b *Binder) Unbind(w http.ResponseWriter, r *http.Request) error {
	sess, _ := b.cookies.Get(r, CookieName)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
