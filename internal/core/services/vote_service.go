package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type voteService struct {
	eventRepo ports.EventRepository
	regRepo   ports.RegistrationRepository
	voteRepo  ports.VoteRepository
	notifier  ports.Notifier
}

func NewVoteService(eventRepo ports.EventRepository, regRepo ports.RegistrationRepository, voteRepo ports.VoteRepository, notifier ports.Notifier) ports.VoteService {
	return &voteService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		voteRepo:  voteRepo,
		notifier:  notifier,
	}
}

// CastVote records a voter's one-time ballot. A nominee is a valid
// target as soon as its registration exists; approval is NOT required.
// That matches the product's current policy of letting votes land on
// pending nominees.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.VoteRecord, error) {
	if input.EventID == uuid.Nil || input.VoterID == uuid.Nil || input.ElectionType == "" || input.Selections == nil {
		return nil, domain.ErrInvalidRequest
	}

	electionType, err := domain.ParseElectionType(input.ElectionType)
	if err != nil {
		return nil, err
	}

	if len(input.Selections) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if electionType == domain.ElectionSingle && len(input.Selections) != 1 {
		return nil, domain.ErrInvalidSelectionCount
	}
	for _, sel := range input.Selections {
		if sel.NomineeID == uuid.Nil {
			return nil, domain.ErrInvalidRequest
		}
		if electionType == domain.ElectionRank && sel.Rank == nil {
			return nil, domain.ErrInvalidRequest
		}
		if electionType != domain.ElectionRank && sel.Rank != nil {
			return nil, domain.ErrInvalidRequest
		}
	}

	voterReg, err := s.regRepo.GetVoter(ctx, input.EventID, input.VoterID)
	if err != nil {
		return nil, err
	}
	if voterReg == nil {
		return nil, domain.ErrNotRegistered
	}

	for _, sel := range input.Selections {
		nominee, err := s.regRepo.GetNominee(ctx, input.EventID, sel.NomineeID)
		if err != nil {
			return nil, err
		}
		if nominee == nil {
			return nil, domain.ErrInvalidNominee
		}
	}

	if voterReg.HasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	if !event.VotingOpenAt(time.Now()) {
		return nil, domain.ErrVotingClosed
	}

	vote := &domain.VoteRecord{
		ID:           uuid.New(),
		EventID:      input.EventID,
		VoterID:      input.VoterID,
		ElectionType: electionType,
		Selections:   input.Selections,
		CreatedAt:    time.Now(),
	}

	// The repository flips has_voted and inserts the record in one
	// transaction, so a concurrent double cast loses with
	// ErrAlreadyVoted instead of producing a second record.
	if err := s.voteRepo.CastVote(ctx, vote); err != nil {
		return nil, err
	}

	if err := s.notifier.VoteRecorded(vote.EventID); err != nil {
		slog.Warn("vote-recorded notification dropped", "event_id", vote.EventID, "error", err)
	}

	return vote, nil
}

func (s *voteService) History(ctx context.Context, voterID uuid.UUID) ([]domain.VoteHistoryEntry, error) {
	return s.voteRepo.HistoryByVoter(ctx, voterID)
}
