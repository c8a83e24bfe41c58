package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
	"github.com/intega-app/intega/internal/web/middleware"
	"github.com/intega-app/intega/internal/web/templates"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
	binder      *session.Binder
	renderer    *templates.Renderer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, binder *session.Binder, renderer *templates.Renderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		binder:      binder,
		renderer:    renderer,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		http.Redirect(w, r, auth.HomeFor(user.Role), http.StatusSeeOther)
		return
	}

	data := templates.LoginData{
		PageData: templates.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}

	h.renderPage(w, "login.html", data)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, "Invalid form data", "", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if email == "" || password == "" {
		h.renderLoginError(w, "Email and password are required", email, next)
		return
	}

	user, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			h.renderLoginError(w, "Invalid email or password", email, next)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.binder.Bind(w, r, user); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Welcome back, "+user.Username+"!")

	if next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, auth.HomeFor(user.Role), http.StatusSeeOther)
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		http.Redirect(w, r, auth.HomeFor(user.Role), http.StatusSeeOther)
		return
	}

	data := templates.RegisterData{
		PageData: templates.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
		Role:        string(model.RoleStudent),
		FieldErrors: make(map[string]string),
	}

	h.renderPage(w, "register.html", data)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, "Invalid form data", "", "", "", nil)
		return
	}

	role := r.FormValue("role")
	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	req := auth.RegistrationRequest{
		Role:     model.Role(role),
		Email:    email,
		Username: username,
		Password: password,
	}

	switch req.Role {
	case model.RoleStudent:
		req.Student = &model.StudentProfile{
			FirstName: strings.TrimSpace(r.FormValue("first_name")),
			LastName:  strings.TrimSpace(r.FormValue("last_name")),
			School:    strings.TrimSpace(r.FormValue("school")),
			Degree:    strings.TrimSpace(r.FormValue("degree")),
		}
	case model.RoleCompany:
		req.Company = &model.CompanyProfile{
			CompanyName: strings.TrimSpace(r.FormValue("company_name")),
			Sector:      strings.TrimSpace(r.FormValue("sector")),
			Website:     strings.TrimSpace(r.FormValue("website")),
			ContactName: strings.TrimSpace(r.FormValue("company_contact")),
		}
	case model.RoleSchool:
		req.School = &model.SchoolProfile{
			SchoolName:  strings.TrimSpace(r.FormValue("school_name")),
			City:        strings.TrimSpace(r.FormValue("city")),
			ContactName: strings.TrimSpace(r.FormValue("school_contact")),
		}
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		var missing *model.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			fieldErrors := make(map[string]string, len(missing.Fields))
			for _, f := range missing.Fields {
				fieldErrors[f] = "This field is required"
			}
			h.renderRegisterError(w, "", role, email, username, fieldErrors)
		case errors.Is(err, model.ErrInvalidRole):
			h.renderRegisterError(w, "Please choose a valid account type", role, email, username, nil)
		case errors.Is(err, model.ErrEmailExists):
			h.renderRegisterError(w, "", role, email, username, map[string]string{
				"email": "An account with this email already exists",
			})
		default:
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if err := h.binder.Bind(w, r, result.User); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Account created! Welcome, "+result.User.Username+"!")
	http.Redirect(w, r, auth.HomeFor(result.User.Role), http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.binder.Unbind(w, r); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderPage(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, errorMsg, email, next string) {
	data := templates.LoginData{
		PageData: templates.PageData{Title: "Login"},
		Email:    email,
		Error:    errorMsg,
		Next:     next,
	}
	h.renderPage(w, "login.html", data)
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, errorMsg, role, email, username string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	if role == "" {
		role = string(model.RoleStudent)
	}

	data := templates.RegisterData{
		PageData:    templates.PageData{Title: "Register"},
		Role:        role,
		Email:       email,
		Username:    username,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	h.renderPage(w, "register.html", data)
}
