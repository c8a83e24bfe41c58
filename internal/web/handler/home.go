package handler

import (
	"net/http"

	"github.com/intega-app/intega/internal/web/middleware"
	"github.com/intega-app/intega/internal/web/templates"
)

// HomeHandler handles the public home page
type HomeHandler struct {
	renderer *templates.Renderer
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *templates.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := templates.PageData{
		Title: "Home",
		Flash: middleware.GetFlash(r.Context()),
	}
	if user := middleware.GetUser(r.Context()); user != nil {
		data.Username = user.Username
		data.Role = string(user.Role)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, "home.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
