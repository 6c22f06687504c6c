package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

type createEventRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	ElectionType  string               `json:"election_type"`
	RegEndTime    time.Time            `json:"reg_end_time"`
	VoteStartTime time.Time            `json:"vote_start_time"`
	VoteEndTime   time.Time            `json:"vote_end_time"`
	Ballots       []domain.BallotImage `json:"ballots"`
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateEventInput{
		Title:         req.Title,
		Description:   req.Description,
		ElectionType:  req.ElectionType,
		RegEndTime:    req.RegEndTime,
		VoteStartTime: req.VoteStartTime,
		VoteEndTime:   req.VoteEndTime,
		Ballots:       req.Ballots,
	}

	event, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var phase domain.Phase
	if p := r.URL.Query().Get("phase"); p != "" {
		parsed, err := domain.ParsePhase(p)
		if err != nil {
			http.Error(w, "invalid phase filter", http.StatusBadRequest)
			return
		}
		phase = parsed
	}

	events, err := h.service.ListEvents(r.Context(), phase)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	filter := ports.BallotsAll
	switch state := r.URL.Query().Get("state"); state {
	case "", "all":
	case "available":
		filter = ports.BallotsAvailable
	case "used":
		filter = ports.BallotsUsed
	default:
		http.Error(w, "invalid ballot state filter", http.StatusBadRequest)
		return
	}

	ballots, err := h.service.ListBallots(r.Context(), eventID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ballots)
}
