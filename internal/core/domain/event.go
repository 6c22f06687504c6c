package domain

import (
	"time"

	"github.com/google/uuid"
)

// ElectionType determines the shape of a ballot: one nominee, several
// nominees, or ranked nominees.
type ElectionType string

const (
	ElectionSingle    ElectionType = "Single"
	ElectionRank      ElectionType = "Rank"
	ElectionMultiVote ElectionType = "MultiVote"
)

func ParseElectionType(s string) (ElectionType, error) {
	switch ElectionType(s) {
	case ElectionSingle, ElectionRank, ElectionMultiVote:
		return ElectionType(s), nil
	}
	return "", ErrInvalidRequest
}

// BallotImage identifies an image held by the external object store.
// The core never sees the bytes, only this pair.
type BallotImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type VoteEvent struct {
	ID               uuid.UUID     `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	ElectionType     ElectionType  `json:"election_type"`
	RegEndTime       time.Time     `json:"reg_end_time"`
	VoteStartTime    time.Time     `json:"vote_start_time"`
	VoteEndTime      time.Time     `json:"vote_end_time"`
	AvailableBallots []BallotImage `json:"available_ballots"`
	UsedBallots      []BallotImage `json:"used_ballots"`
	CreatedBy        uuid.UUID     `json:"created_by"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ValidateSchedule enforces RegEndTime < VoteStartTime <= VoteEndTime.
func (e *VoteEvent) ValidateSchedule() error {
	if !e.RegEndTime.Before(e.VoteStartTime) {
		return ErrInvalidRequest
	}
	if e.VoteEndTime.Before(e.VoteStartTime) {
		return ErrInvalidRequest
	}
	return nil
}

// RegistrationOpenAt reports whether nominee/voter registration is
// still accepted at the given instant. The deadline itself is open.
func (e *VoteEvent) RegistrationOpenAt(now time.Time) bool {
	return !now.After(e.RegEndTime)
}

// VotingOpenAt reports whether votes are accepted at the given
// instant. Both window endpoints are inclusive.
func (e *VoteEvent) VotingOpenAt(now time.Time) bool {
	return !now.Before(e.VoteStartTime) && !now.After(e.VoteEndTime)
}
