package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
	"github.com/intega-app/intega/internal/storage"
	"github.com/intega-app/intega/internal/web/handler"
	"github.com/intega-app/intega/internal/web/middleware"
	"github.com/intega-app/intega/internal/web/templates"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Binder      *session.Binder
	Store       storage.UserStore
	Renderer    *templates.Renderer
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	flashMiddleware := middleware.Flash()
	optionalAuth := middleware.OptionalAuth(cfg.Binder)

	homeHandler := handler.NewHomeHandler(cfg.Renderer)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Binder, cfg.Renderer)
	dashboardHandler := handler.NewDashboardHandler(cfg.Store, cfg.Renderer)

	// Public routes (optional auth for showing the user in the nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuth)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Role-gated dashboards
	dashboard := func(role model.Role, path string, h http.HandlerFunc) {
		sub := r.PathPrefix(path).Subrouter()
		sub.Use(flashMiddleware)
		sub.Use(middleware.Auth(cfg.Binder, role))
		sub.HandleFunc("", h).Methods(http.MethodGet)
	}
	dashboard(model.RoleStudent, "/student/dashboard", dashboardHandler.Student)
	dashboard(model.RoleCompany, "/company/dashboard", dashboardHandler.Company)
	dashboard(model.RoleSchool, "/school/dashboard", dashboardHandler.School)

	return r
}
