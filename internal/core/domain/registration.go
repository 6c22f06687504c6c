package domain

import (
	"time"

	"github.com/google/uuid"
)

// NomineeRegistration is a user's candidacy for one event. The
// (EventID, UserID) pair is unique. Approved flips false->true exactly
// once and is never reversed.
type NomineeRegistration struct {
	ID             uuid.UUID   `json:"id"`
	EventID        uuid.UUID   `json:"event_id"`
	UserID         uuid.UUID   `json:"user_id"`
	SelectedBallot BallotImage `json:"selected_ballot"`
	Approved       bool        `json:"approved"`
	Description    string      `json:"description,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// VoterRegistration enrolls a user to vote in one event. The
// (EventID, UserID) pair is unique. HasVoted flips false->true exactly
// once, when the vote is recorded.
type VoterRegistration struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	HasVoted  bool      `json:"has_voted"`
	CreatedAt time.Time `json:"created_at"`
}

// NomineeDetail is a nominee registration joined with the user's
// display metadata, for listing endpoints.
type NomineeDetail struct {
	UserID          uuid.UUID   `json:"user_id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	ProfileImageURL string      `json:"profile_image_url,omitempty"`
	SelectedBallot  BallotImage `json:"selected_ballot"`
	Approved        bool        `json:"approved"`
}

// VoterDetail is a voter registration joined with display metadata.
type VoterDetail struct {
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	HasVoted        bool      `json:"has_voted"`
}

// Participation summarizes voter turnout for one event. Rate is
// voted/(voted+notVoted)*100, zero when nobody registered.
type Participation struct {
	Voted    []VoterDetail `json:"voted"`
	NotVoted []VoterDetail `json:"not_voted"`
	Rate     float64       `json:"rate"`
}
