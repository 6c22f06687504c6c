package domain

import (
	"time"

	"github.com/google/uuid"
)

// NomineeSelection is one entry of a cast ballot. Rank is set only for
// Rank elections; lower is better. The engine does not require ranks
// to be unique or contiguous.
type NomineeSelection struct {
	NomineeID uuid.UUID `json:"nominee_id"`
	Rank      *int      `json:"rank,omitempty"`
}

// VoteRecord is an immutable record of one voter's cast ballot.
// ElectionType is copied from the event at cast time. Selections keep
// the caller-provided order. At most one record exists per
// (VoterID, EventID).
type VoteRecord struct {
	ID           uuid.UUID          `json:"id"`
	EventID      uuid.UUID          `json:"event_id"`
	VoterID      uuid.UUID          `json:"voter_id"`
	ElectionType ElectionType       `json:"election_type"`
	Selections   []NomineeSelection `json:"selections"`
	CreatedAt    time.Time          `json:"created_at"`
}

// VoteHistoryEntry is one past vote of a user, joined with event and
// nominee display data for the history endpoint.
type VoteHistoryEntry struct {
	VoteID       uuid.UUID          `json:"vote_id"`
	EventID      uuid.UUID          `json:"event_id"`
	EventTitle   string             `json:"event_title"`
	ElectionType ElectionType       `json:"election_type"`
	Selections   []SelectionDetail  `json:"selections"`
	CastAt       time.Time          `json:"cast_at"`
}

type SelectionDetail struct {
	NomineeID   uuid.UUID `json:"nominee_id"`
	NomineeName string    `json:"nominee_name"`
	Rank        *int      `json:"rank,omitempty"`
}
