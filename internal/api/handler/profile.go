package handler

import (
	"net/http"

	"github.com/intega-app/intega/internal/api/apierr"
	"github.com/intega-app/intega/internal/api/middleware"
	"github.com/intega-app/intega/internal/api/response"
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
)

// ProfileHandler serves the authenticated user's role profile
type ProfileHandler struct {
	store storage.UserStore
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(store storage.UserStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	out := response.Profile{Role: string(user.Role)}

	switch user.Role {
	case model.RoleStudent:
		p, err := h.store.GetStudentProfile(r.Context(), user.ID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		sp := response.StudentProfileFromModel(p)
		out.Student = &sp
	case model.RoleCompany:
		p, err := h.store.GetCompanyProfile(r.Context(), user.ID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		cp := response.CompanyProfileFromModel(p)
		out.Company = &cp
	case model.RoleSchool:
		p, err := h.store.GetSchoolProfile(r.Context(), user.ID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		sp := response.SchoolProfileFromModel(p)
		out.School = &sp
	}

	response.JSON(w, http.StatusOK, out)
}
