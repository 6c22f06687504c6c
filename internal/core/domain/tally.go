package domain

import "github.com/google/uuid"

// VoteTotal is one nominee's total for Single/MultiVote elections,
// sorted descending by TotalVotes.
type VoteTotal struct {
	NomineeID   uuid.UUID `json:"nominee_id"`
	NomineeName string    `json:"nominee_name"`
	TotalVotes  int64     `json:"total_votes"`
}

// RankTotal is one nominee's summed rank score for Rank elections,
// sorted ascending (lower is better).
type RankTotal struct {
	NomineeID      uuid.UUID `json:"nominee_id"`
	NomineeName    string    `json:"nominee_name"`
	TotalRankScore int64     `json:"total_rank_score"`
}

// EventTally carries both result lists. Both are always computed
// regardless of the event's declared election type; the list that
// does not apply simply comes back empty.
type EventTally struct {
	SingleMulti []VoteTotal `json:"single_multi"`
	Rank        []RankTotal `json:"rank"`
}
