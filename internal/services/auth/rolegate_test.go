package auth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
)

var allRoles = []model.Role{model.RoleStudent, model.RoleCompany, model.RoleSchool}

func outcomeFor(role model.Role) session.Outcome {
	return session.Outcome{User: &model.UserRecord{ID: 1, Role: role}}
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	assert.Equal(t, auth.DenyNotAuthenticated, auth.Authorize(session.Unauthenticated, ""))
	for _, required := range allRoles {
		assert.Equal(t, auth.DenyNotAuthenticated, auth.Authorize(session.Unauthenticated, required),
			"required=%s", required)
	}
}

// TestAuthorizeMatrix walks every authenticated role against every
// requirement, including the empty one admitting any authenticated user
func TestAuthorizeMatrix(t *testing.T) {
	for _, role := range allRoles {
		for _, required := range append([]model.Role{""}, allRoles...) {
			want := auth.Allow
			if required != "" && required != role {
				want = auth.DenyWrongRole
			}

			t.Run(fmt.Sprintf("%s against %q", role, required), func(t *testing.T) {
				assert.Equal(t, want, auth.Authorize(outcomeFor(role), required))
			})
		}
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/student/dashboard", auth.HomeFor(model.RoleStudent))
	assert.Equal(t, "/company/dashboard", auth.HomeFor(model.RoleCompany))
	assert.Equal(t, "/school/dashboard", auth.HomeFor(model.RoleSchool))
	assert.Equal(t, "/", auth.HomeFor("ADMIN"))
	assert.Equal(t, "/", auth.HomeFor(""))
}
