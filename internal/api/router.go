package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/intega-app/intega/internal/api/handler"
	apimiddleware "github.com/intega-app/intega/internal/api/middleware"
	"github.com/intega-app/intega/internal/middleware"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/services/session"
	"github.com/intega-app/intega/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Binder      *session.Binder
	Store       storage.UserStore
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Binder)
	profileHandler := handler.NewProfileHandler(cfg.Store)

	requireAuth := apimiddleware.Auth(cfg.Binder, "")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Logging(cfg.Logger))

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes
	me := api.PathPrefix("/auth/me").Subrouter()
	me.Use(requireAuth)
	me.HandleFunc("", authHandler.Me).Methods(http.MethodGet)

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(requireAuth)
	profile.HandleFunc("", profileHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
