package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type RegistrationRepository interface {
	// CreateNominee inserts the registration and claims its selected
	// ballot in one transaction. Returns domain.ErrAlreadyRegistered
	// when the (event, user) pair exists and
	// domain.ErrBallotUnavailable when the ballot is not claimable.
	CreateNominee(ctx context.Context, reg *domain.NomineeRegistration) error

	// GetNominee returns (nil, nil) when no registration exists.
	GetNominee(ctx context.Context, eventID, userID uuid.UUID) (*domain.NomineeRegistration, error)

	// Approve flips Approved false->true. Returns
	// domain.ErrAlreadyApproved when the flag was already set.
	Approve(ctx context.Context, eventID, userID uuid.UUID) error

	ListNominees(ctx context.Context, eventID uuid.UUID, approved bool) ([]domain.NomineeDetail, error)

	// CreateVoter inserts the registration; insert-if-absent on the
	// (event, user) unique pair.
	CreateVoter(ctx context.Context, reg *domain.VoterRegistration) error

	// GetVoter returns (nil, nil) when no registration exists.
	GetVoter(ctx context.Context, eventID, userID uuid.UUID) (*domain.VoterRegistration, error)

	ListVoters(ctx context.Context, eventID uuid.UUID) ([]domain.VoterDetail, error)
	Participation(ctx context.Context, eventID uuid.UUID) (*domain.Participation, error)
}

type RegisterNomineeInput struct {
	EventID     uuid.UUID
	UserID      uuid.UUID
	Ballot      domain.BallotImage
	Description string
}

// EventStatus is the caller's own standing for one event.
type EventStatus struct {
	VoterRegistered   bool `json:"voter_registered"`
	HasVoted          bool `json:"has_voted"`
	NomineeRegistered bool `json:"nominee_registered"`
	NomineeApproved   bool `json:"nominee_approved"`
}

type RegistrationService interface {
	RegisterNominee(ctx context.Context, input RegisterNomineeInput) (*domain.NomineeRegistration, error)
	RegisterVoter(ctx context.Context, eventID, userID uuid.UUID) (*domain.VoterRegistration, error)
	ApproveNominee(ctx context.Context, actor Actor, eventID, nomineeUserID uuid.UUID) (*domain.NomineeRegistration, error)
	ListNominees(ctx context.Context, eventID uuid.UUID, approved bool) ([]domain.NomineeDetail, error)
	ListVoters(ctx context.Context, eventID uuid.UUID) ([]domain.VoterDetail, error)
	Participation(ctx context.Context, eventID uuid.UUID) (*domain.Participation, error)
	Status(ctx context.Context, eventID, userID uuid.UUID) (*EventStatus, error)
}
