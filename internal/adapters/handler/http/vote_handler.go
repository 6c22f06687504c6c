package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type VoteHandler struct {
	voteService  ports.VoteService
	tallyService ports.TallyService
}

func NewVoteHandler(voteService ports.VoteService, tallyService ports.TallyService) *VoteHandler {
	return &VoteHandler{
		voteService:  voteService,
		tallyService: tallyService,
	}
}

type castVoteRequest struct {
	ElectionType string                    `json:"election_type"`
	Selections   []domain.NomineeSelection `json:"selections"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
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

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	vote, err := h.voteService.CastVote(r.Context(), ports.CastVoteInput{
		EventID:      eventID,
		VoterID:      actor.ID,
		ElectionType: req.ElectionType,
		Selections:   req.Selections,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vote)
}

func (h *VoteHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	tally, err := h.tallyService.ComputeTally(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tally)
}

func (h *VoteHandler) MyHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	history, err := h.voteService.History(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}
