package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type TallyRepository interface {
	// SingleMultiTotals aggregates Single and MultiVote records:
	// selections flattened, grouped by nominee, counted, sorted
	// descending, display names joined ("Unknown" fallback).
	SingleMultiTotals(ctx context.Context, eventID uuid.UUID) ([]domain.VoteTotal, error)

	// RankTotals aggregates Rank records: rank values summed per
	// nominee, sorted ascending (lower is better).
	RankTotals(ctx context.Context, eventID uuid.UUID) ([]domain.RankTotal, error)
}

type TallyService interface {
	ComputeTally(ctx context.Context, eventID uuid.UUID) (*domain.EventTally, error)
}
