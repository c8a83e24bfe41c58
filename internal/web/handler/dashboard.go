package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
	"github.com/intega-app/intega/internal/web/middleware"
	"github.com/intega-app/intega/internal/web/templates"
)

// DashboardHandler renders the per-role landing pages
type DashboardHandler struct {
	store    storage.UserStore
	renderer *templates.Renderer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(store storage.UserStore, renderer *templates.Renderer) *DashboardHandler {
	return &DashboardHandler{
		store:    store,
		renderer: renderer,
	}
}

// Student renders the student dashboard
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var lines []string
	p, err := h.store.GetStudentProfile(r.Context(), user.ID)
	switch {
	case err == nil:
		lines = profileLines(
			"Name: "+p.FirstName+" "+p.LastName,
			"School: "+p.School,
			"Degree: "+p.Degree,
		)
	case !errors.Is(err, model.ErrProfileNotFound):
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard_student.html", user, lines)
}

// Company renders the company dashboard
func (h *DashboardHandler) Company(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var lines []string
	p, err := h.store.GetCompanyProfile(r.Context(), user.ID)
	switch {
	case err == nil:
		lines = profileLines(
			"Company: "+p.CompanyName,
			"Sector: "+p.Sector,
			"Website: "+p.Website,
			"Contact: "+p.ContactName,
		)
	case !errors.Is(err, model.ErrProfileNotFound):
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard_company.html", user, lines)
}

// School renders the school dashboard
func (h *DashboardHandler) School(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var lines []string
	p, err := h.store.GetSchoolProfile(r.Context(), user.ID)
	switch {
	case err == nil:
		lines = profileLines(
			"School: "+p.SchoolName,
			"City: "+p.City,
			"Contact: "+p.ContactName,
		)
	case !errors.Is(err, model.ErrProfileNotFound):
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard_school.html", user, lines)
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, page string, user *model.UserRecord, lines []string) {
	data := templates.DashboardData{
		PageData: templates.PageData{
			Title:    fmt.Sprintf("%s dashboard", user.Username),
			Username: user.Username,
			Role:     string(user.Role),
			Flash:    middleware.GetFlash(r.Context()),
		},
		ProfileLines: lines,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// profileLines drops entries whose value part is empty
func profileLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		_, value, _ := strings.Cut(l, ":")
		if strings.TrimSpace(value) != "" {
			out = append(out, l)
		}
	}
	return out
}
