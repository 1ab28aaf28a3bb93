package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/progressjournal/internal/api/handler"
	"github.com/mcoot/progressjournal/internal/api/middleware"
	"github.com/mcoot/progressjournal/internal/services/auth"
	"github.com/mcoot/progressjournal/internal/services/progress"
	"github.com/mcoot/progressjournal/internal/services/records"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	Records         *records.Service
	ProgressService *progress.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AuthService, cfg.Records)
	journalHandler := handler.NewJournalHandler(cfg.Records)
	progressHandler := handler.NewProgressHandler(cfg.ProgressService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/accounts/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)

	// Journal routes (all require auth)
	journal := api.PathPrefix("/journal").Subrouter()
	journal.Use(authMiddleware)
	journal.HandleFunc("", journalHandler.GetLog).Methods(http.MethodGet)
	journal.HandleFunc("/goals/{index}/complete", journalHandler.CompleteGoal).Methods(http.MethodPost)
	journal.HandleFunc("/{category}", journalHandler.GetCategory).Methods(http.MethodGet)
	journal.HandleFunc("/{category}", journalHandler.Append).Methods(http.MethodPost)

	// Progress routes
	progressRoutes := api.PathPrefix("/progress").Subrouter()
	progressRoutes.Use(authMiddleware)
	progressRoutes.HandleFunc("", progressHandler.Get).Methods(http.MethodGet)

	// Public catalogue and health check
	api.HandleFunc("/challenges", progressHandler.Challenges).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
