package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type VoteRepository interface {
	// CastVote flips the voter registration's has_voted flag and
	// inserts the record with its ordered selections in one
	// transaction. Returns domain.ErrAlreadyVoted when the flag was
	// already set.
	CastVote(ctx context.Context, vote *domain.VoteRecord) error

	HistoryByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.VoteHistoryEntry, error)
}

type CastVoteInput struct {
	EventID      uuid.UUID
	VoterID      uuid.UUID
	ElectionType string
	Selections   []domain.NomineeSelection
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*domain.VoteRecord, error)
	History(ctx context.Context, voterID uuid.UUID) ([]domain.VoteHistoryEntry, error)
}
