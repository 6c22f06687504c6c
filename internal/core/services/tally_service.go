package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type tallyService struct {
	eventRepo ports.EventRepository
	tallyRepo ports.TallyRepository
	notifier  ports.Notifier
}

func NewTallyService(eventRepo ports.EventRepository, tallyRepo ports.TallyRepository, notifier ports.Notifier) ports.TallyService {
	return &tallyService{
		eventRepo: eventRepo,
		tallyRepo: tallyRepo,
		notifier:  notifier,
	}
}

// ComputeTally aggregates current results for an event. Both lists
// are computed no matter which election type the event declares; the
// inapplicable one comes back empty.
func (s *tallyService) ComputeTally(ctx context.Context, eventID uuid.UUID) (*domain.EventTally, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	singleMulti, err := s.tallyRepo.SingleMultiTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rank, err := s.tallyRepo.RankTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}

	tally := &domain.EventTally{
		SingleMulti: singleMulti,
		Rank:        rank,
	}

	if err := s.notifier.TallyChanged(eventID, tally); err != nil {
		slog.Warn("tally-changed notification dropped", "event_id", eventID, "error", err)
	}

	return tally, nil
}
