package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/votehub/api/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeError maps domain errors to HTTP status codes. Window
// violations come back 403 and conflicts 409, matching the behavior
// clients already depend on.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrInvalidSelectionCount),
		errors.Is(err, domain.ErrDataIntegrity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrNomineeNotFound),
		errors.Is(err, domain.ErrInvalidNominee),
		errors.Is(err, domain.ErrNotRegistered):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrAlreadyApproved),
		errors.Is(err, domain.ErrBallotUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrVotingClosed):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
