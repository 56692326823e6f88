package handler

import (
	"net/http"
	"time"

	"github.com/yoBruxo/PTbotKND/internal/api/apierr"
	"github.com/yoBruxo/PTbotKND/internal/api/response"
	"github.com/yoBruxo/PTbotKND/internal/dependencies/clock"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
)

// StatusHandler serves the liveness endpoints hosting platforms poll
type StatusHandler struct {
	controller *party.Controller
	clock      clock.Clock
	startedAt  time.Time
}

// NewStatusHandler creates a StatusHandler
func NewStatusHandler(controller *party.Controller, clk clock.Clock) *StatusHandler {
	return &StatusHandler{
		controller: controller,
		clock:      clk,
		startedAt:  clk.Now(),
	}
}

// Health handles GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// Status handles GET /status: process status plus aggregate party counts,
// derived read-only from the registry
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	open, total, err := h.controller.Counts(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Status{
		Status:       "online",
		Uptime:       h.clock.Now().Sub(h.startedAt).String(),
		StartedAt:    h.startedAt,
		OpenParties:  open,
		TotalParties: total,
	})
}
