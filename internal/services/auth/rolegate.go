package auth

import (
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/session"
)

// Decision is the result of an access check against a route's requirement
type Decision int

const (
	// Allow admits the request
	Allow Decision = iota
	// DenyNotAuthenticated means no identity was resolved for the request
	DenyNotAuthenticated
	// DenyWrongRole means an identity was resolved but its role does not
	// match the route's requirement
	DenyWrongRole
)

// Authorize checks a resolved outcome against a required role. An empty
// required role admits any authenticated user. Role checks are exact
// matches; there is no role hierarchy.
func Authorize(outcome session.Outcome, required model.Role) Decision {
	if !outcome.Authenticated() {
		return DenyNotAuthenticated
	}
	if required != "" && outcome.User.Role != required {
		return DenyWrongRole
	}
	return Allow
}

// HomeFor maps a role to its landing page. Unknown roles fall back to the
// public home so a bad record never traps a user in a redirect loop.
func HomeFor(role model.Role) string {
	switch role {
	case model.RoleStudent:
		return "/student/dashboard"
	case model.RoleCompany:
		return "/company/dashboard"
	case model.RoleSchool:
		return "/school/dashboard"
	default:
		return "/"
	}
}
