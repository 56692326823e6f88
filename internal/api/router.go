package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yoBruxo/PTbotKND/internal/api/handler"
	"github.com/yoBruxo/PTbotKND/internal/api/middleware"
	"github.com/yoBruxo/PTbotKND/internal/dependencies/clock"
	"github.com/yoBruxo/PTbotKND/internal/metrics"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	PartyController *party.Controller
	AuthService     *auth.Service
	Clock           clock.Clock
}

// NewRouter creates the API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	partyHandler := handler.NewPartyHandler(cfg.PartyController, cfg.AuthService)
	statusHandler := handler.NewStatusHandler(cfg.PartyController, cfg.Clock)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	operatorMiddleware := middleware.OperatorAuth(cfg.AuthService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Liveness endpoints (no auth)
	api.HandleFunc("/health", statusHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/status", statusHandler.Status).Methods(http.MethodGet)

	// Party routes
	api.HandleFunc("/parties", partyHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/parties", partyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}", partyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}/join", partyHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/leave", partyHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/close", partyHandler.Close).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/views", partyHandler.SetViews).Methods(http.MethodPut)

	// Administrative routes (operator token required)
	admin := api.NewRoute().Subrouter()
	admin.Use(operatorMiddleware)
	admin.HandleFunc("/parties/{id}/members/{user_id}", partyHandler.Remove).Methods(http.MethodDelete)

	// Prometheus metrics outside the versioned API
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}
