package handler

import (
	"encoding/json"
	"net/http"

	"github.com/intega-app/intega/internal/api/apierr"
	"github.com/intega-app/intega/internal/api/middleware"
	"github.com/intega-app/intega/internal/api/request"
	"github.com/intega-app/intega/internal/api/response"
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	authService *auth.Service
	binder      *session.Binder
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, binder *session.Binder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		binder:      binder,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), registrationFromRequest(req))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// A fresh account is logged in immediately
	if err := h.binder.Bind(w, r, result.User); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromModel(result.User))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.binder.Bind(w, r, user); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromModel(user))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.binder.Unbind(w, r); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

func registrationFromRequest(req request.RegisterRequest) auth.RegistrationRequest {
	out := auth.RegistrationRequest{
		Role:     model.Role(req.Role),
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}
	if req.Student != nil {
		out.Student = &model.StudentProfile{
			FirstName: req.Student.FirstName,
			LastName:  req.Student.LastName,
			School:    req.Student.School,
			Degree:    req.Student.Degree,
		}
	}
	if req.Company != nil {
		out.Company = &model.CompanyProfile{
			CompanyName: req.Company.CompanyName,
			Sector:      req.Company.Sector,
			Website:     req.Company.Website,
			ContactName: req.Company.ContactName,
		}
	}
	if req.School != nil {
		out.School = &model.SchoolProfile{
			SchoolName:  req.School.SchoolName,
			City:        req.School.City,
			ContactName: req.School.ContactName,
		}
	}
	return out
}
