package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type registrationService struct {
	eventRepo ports.EventRepository
	regRepo   ports.RegistrationRepository
}

func NewRegistrationService(eventRepo ports.EventRepository, regRepo ports.RegistrationRepository) ports.RegistrationService {
	return &registrationService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
	}
}

func (s *registrationService) RegisterNominee(ctx context.Context, input ports.RegisterNomineeInput) (*domain.NomineeRegistration, error) {
	if input.EventID == uuid.Nil || input.UserID == uuid.Nil {
		return nil, domain.ErrInvalidRequest
	}
	if input.Ballot.URL == "" || input.Ballot.PublicID == "" {
		return nil, domain.ErrInvalidRequest
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.regRepo.GetNominee(ctx, input.EventID, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	if !event.RegistrationOpenAt(time.Now()) {
		return nil, domain.ErrRegistrationClosed
	}

	if !ballotAvailable(event, input.Ballot.PublicID) {
		return nil, domain.ErrBallotUnavailable
	}

	reg := &domain.NomineeRegistration{
		ID:             uuid.New(),
		EventID:        input.EventID,
		UserID:         input.UserID,
		SelectedBallot: input.Ballot,
		Description:    input.Description,
		CreatedAt:      time.Now(),
	}

	// The repository claims the ballot and inserts the registration
	// atomically; a race on either uniqueness surfaces as the same
	// conflict errors the pre-checks produce.
	if err := s.regRepo.CreateNominee(ctx, reg); err != nil {
		return nil, err
	}

	return reg, nil
}

func (s *registrationService) RegisterVoter(ctx context.Context, eventID, userID uuid.UUID) (*domain.VoterRegistration, error) {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return nil, domain.ErrInvalidRequest
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.regRepo.GetVoter(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	if !event.RegistrationOpenAt(time.Now()) {
		return nil, domain.ErrRegistrationClosed
	}

	reg := &domain.VoterRegistration{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.regRepo.CreateVoter(ctx, reg); err != nil {
		return nil, err
	}

	return reg, nil
}

func (s *registrationService) ApproveNominee(ctx context.Context, actor ports.Actor, eventID, nomineeUserID uuid.UUID) (*domain.NomineeRegistration, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	reg, err := s.regRepo.GetNominee(ctx, eventID, nomineeUserID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNomineeNotFound
	}
	if reg.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	if reg.SelectedBallot.URL == "" || reg.SelectedBallot.PublicID == "" {
		return nil, domain.ErrDataIntegrity
	}

	if err := s.regRepo.Approve(ctx, eventID, nomineeUserID); err != nil {
		return nil, err
	}

	// The ballot was already moved to the used set at claim time;
	// finalizing is a no-op then, but covers registrations created
	// before the claim became part of the same transaction. The
	// approval has committed by now, so a finalize failure is logged
	// rather than returned; the idempotent update can be re-run.
	if err := s.eventRepo.FinalizeBallot(ctx, eventID, reg.SelectedBallot.PublicID); err != nil {
		slog.Warn("ballot finalize after approval failed",
			"event_id", eventID, "public_id", reg.SelectedBallot.PublicID, "error", err)
	}

	reg.Approved = true
	return reg, nil
}

func (s *registrationService) ListNominees(ctx context.Context, eventID uuid.UUID, approved bool) ([]domain.NomineeDetail, error) {
	return s.regRepo.ListNominees(ctx, eventID, approved)
}

func (s *registrationService) ListVoters(ctx context.Context, eventID uuid.UUID) ([]domain.VoterDetail, error) {
	return s.regRepo.ListVoters(ctx, eventID)
}

func (s *registrationService) Participation(ctx context.Context, eventID uuid.UUID) (*domain.Participation, error) {
	return s.regRepo.Participation(ctx, eventID)
}

func (s *registrationService) Status(ctx context.Context, eventID, userID uuid.UUID) (*ports.EventStatus, error) {
	voterReg, err := s.regRepo.GetVoter(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	nomineeReg, err := s.regRepo.GetNominee(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	status := &ports.EventStatus{}
	if voterReg != nil {
		status.VoterRegistered = true
		status.HasVoted = voterReg.HasVoted
	}
	if nomineeReg != nil {
		status.NomineeRegistered = true
		status.NomineeApproved = nomineeReg.Approved
	}
	return status, nil
}

func ballotAvailable(event *domain.VoteEvent, publicID string) bool {
	for _, b := range event.UsedBallots {
		if b.PublicID == publicID {
			return false
		}
	}
	for _, b := range event.AvailableBallots {
		if b.PublicID == publicID {
			return true
		}
	}
	return false
}
