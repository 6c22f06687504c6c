package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

// BallotFilter selects which side of the event's ballot inventory a
// listing returns.
type BallotFilter string

const (
	BallotsAll       BallotFilter = "all"
	BallotsAvailable BallotFilter = "available"
	BallotsUsed      BallotFilter = "used"
)

type EventRepository interface {
	Save(ctx context.Context, event *domain.VoteEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VoteEvent, error)

	// GetAll returns every event, newest first.
	GetAll(ctx context.Context) ([]*domain.VoteEvent, error)

	// FinalizeBallot moves a ballot to the used set. Idempotent: a
	// ballot already used is left alone.
	FinalizeBallot(ctx context.Context, eventID uuid.UUID, publicID string) error

	ListBallots(ctx context.Context, eventID uuid.UUID, filter BallotFilter) ([]domain.BallotImage, error)
}

type CreateEventInput struct {
	Title         string
	Description   string
	ElectionType  string
	RegEndTime    time.Time
	VoteStartTime time.Time
	VoteEndTime   time.Time
	Ballots       []domain.BallotImage
}

// Actor is the resolved caller identity attached by the auth
// middleware.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type EventService interface {
	Create(ctx context.Context, actor Actor, input CreateEventInput) (*domain.VoteEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.VoteEvent, error)
	// ListEvents returns all events, newest first, each with its phase
	// resolved at call time; phase filters the result when non-empty.
	ListEvents(ctx context.Context, phase domain.Phase) ([]*EventWithPhase, error)
	ListBallots(ctx context.Context, eventID uuid.UUID, filter BallotFilter) ([]domain.BallotImage, error)
}

type EventWithPhase struct {
	*domain.VoteEvent
	Phase domain.Phase `json:"phase"`
}
