package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
	}
}

type registerNomineeRequest struct {
	Ballot      domain.BallotImage `json:"ballot"`
	Description string             `json:"description"`
}

func (h *RegistrationHandler) RegisterNominee(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req registerNomineeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reg, err := h.service.RegisterNominee(r.Context(), ports.RegisterNomineeInput{
		EventID:     eventID,
		UserID:      actor.ID,
		Ballot:      req.Ballot,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

func (h *RegistrationHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	reg, err := h.service.RegisterVoter(r.Context(), eventID, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

func (h *RegistrationHandler) ApproveNominee(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	nomineeUserID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid nominee user id", http.StatusBadRequest)
		return
	}

	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	reg, err := h.service.ApproveNominee(r.Context(), actor, eventID, nomineeUserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reg)
}

func (h *RegistrationHandler) ListNominees(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	approved := true
	switch status := r.URL.Query().Get("status"); status {
	case "", "approved":
	case "pending":
		approved = false
	default:
		http.Error(w, "invalid nominee status filter", http.StatusBadRequest)
		return
	}

	nominees, err := h.service.ListNominees(r.Context(), eventID, approved)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"nominees": nominees,
		"count":    len(nominees),
	})
}

func (h *RegistrationHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	voters, err := h.service.ListVoters(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"voters": voters,
		"count":  len(voters),
	})
}

func (h *RegistrationHandler) Participation(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	participation, err := h.service.Participation(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, participation)
}

func (h *RegistrationHandler) MyStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	status, err := h.service.Status(r.Context(), eventID, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
