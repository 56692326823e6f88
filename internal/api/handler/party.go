package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yoBruxo/PTbotKND/internal/api/apierr"
	"github.com/yoBruxo/PTbotKND/internal/api/middleware"
	"github.com/yoBruxo/PTbotKND/internal/api/response"
	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
)

// PartyHandler serves the party endpoints
type PartyHandler struct {
	controller  *party.Controller
	authService *auth.Service
}

// NewPartyHandler creates a PartyHandler
func NewPartyHandler(controller *party.Controller, authService *auth.Service) *PartyHandler {
	return &PartyHandler{
		controller:  controller,
		authService: authService,
	}
}

type createPartyRequest struct {
	CreatorID string `json:"creator_id"`
}

// Create handles POST /parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CreatorID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("creator_id is required"))
		return
	}

	p, err := h.controller.CreateParty(r.Context(), model.UserID(req.CreatorID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PartyFromModel(p))
}

// List handles GET /parties
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	parties, err := h.controller.ListParties(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := response.PartyList{Parties: make([]response.Party, 0, len(parties))}
	for _, p := range parties {
		out.Parties = append(out.Parties, response.PartyFromModel(p))
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /parties/{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}

	p, err := h.controller.GetParty(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PartyFromModel(p))
}

type rosterRequest struct {
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
}

// Join handles POST /parties/{id}/join
func (h *PartyHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}

	var req rosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("actor_id and role are required"))
		return
	}
	role, ok := model.RoleFromString(req.Role)
	if !ok {
		apierr.WriteError(w, model.ErrUnknownRole)
		return
	}

	res, err := h.controller.RequestJoin(r.Context(), id, model.UserID(req.ActorID), role)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var snapshot *model.Party
	if res.Outcome == party.OutcomeApplied {
		snapshot, _ = h.controller.GetParty(r.Context(), id)
	}
	response.JSON(w, statusFor(res.Outcome), response.JoinOutcome(res, snapshot))
}

// Leave handles POST /parties/{id}/leave
func (h *PartyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}

	var req rosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("actor_id and role are required"))
		return
	}
	role, ok := model.RoleFromString(req.Role)
	if !ok {
		apierr.WriteError(w, model.ErrUnknownRole)
		return
	}

	outcome, err := h.controller.RequestLeave(r.Context(), id, model.UserID(req.ActorID), role)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OutcomeResponse{Outcome: string(outcome)})
}

type closeRequest struct {
	ActorID string `json:"actor_id"`
}

// Close handles POST /parties/{id}/close. A valid operator token elevates
// the actor to privileged for the close policy.
func (h *PartyHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}

	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("actor_id is required"))
		return
	}

	privileged := middleware.IsOperator(h.authService, r)
	outcome, err := h.controller.RequestClose(r.Context(), id, model.UserID(req.ActorID), privileged)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, statusFor(outcome), response.OutcomeResponse{Outcome: string(outcome)})
}

// Remove handles DELETE /parties/{id}/members/{user_id} (operator gated)
func (h *PartyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}
	userID := mux.Vars(r)["user_id"]

	res, err := h.controller.RemovePlayer(r.Context(), id, model.UserID(userID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, statusFor(res.Outcome), response.OutcomeResponse{
		Outcome: string(res.Outcome),
		Role:    string(res.Role),
	})
}

type viewsRequest struct {
	Canonical string   `json:"canonical,omitempty"`
	Listings  []string `json:"listings"`
}

// SetViews handles PUT /parties/{id}/views: registers the canonical view
// and/or replaces the listing views wholesale
func (h *PartyHandler) SetViews(w http.ResponseWriter, r *http.Request) {
	id, ok := partyID(w, r)
	if !ok {
		return
	}

	var req viewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest("malformed views payload"))
		return
	}

	if req.Canonical != "" {
		if err := h.controller.SetCanonicalView(r.Context(), id, model.ViewID(req.Canonical)); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}
	if req.Listings != nil {
		views := make([]model.ViewID, 0, len(req.Listings))
		for _, v := range req.Listings {
			views = append(views, model.ViewID(v))
		}
		if err := h.controller.ReplaceListingViews(r.Context(), id, views); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}
	response.NoContent(w)
}

func partyID(w http.ResponseWriter, r *http.Request) (model.PartyID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequest("invalid party id"))
		return 0, false
	}
	return model.PartyID(id), true
}

// statusFor maps request outcomes to HTTP statuses. Benign no-ops stay 200;
// capacity and lifecycle rejections are conflicts.
func statusFor(outcome party.Outcome) int {
	switch outcome {
	case party.OutcomeNotFound:
		return http.StatusNotFound
	case party.OutcomeUnauthorized:
		return http.StatusForbidden
	case party.OutcomeRoleFull, party.OutcomePartyFull, party.OutcomePartyClosed, party.OutcomeAlreadyClosed:
		return http.StatusConflict
	case party.OutcomeNotPresent:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
