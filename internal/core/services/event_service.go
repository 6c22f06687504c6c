package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type eventService struct {
	repo     ports.EventRepository
	notifier ports.Notifier
}

func NewEventService(repo ports.EventRepository, notifier ports.Notifier) ports.EventService {
	return &eventService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *eventService) Create(ctx context.Context, actor ports.Actor, input ports.CreateEventInput) (*domain.VoteEvent, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, domain.ErrInvalidRequest
	}
	if input.RegEndTime.IsZero() || input.VoteStartTime.IsZero() || input.VoteEndTime.IsZero() {
		return nil, domain.ErrInvalidRequest
	}

	electionType, err := domain.ParseElectionType(input.ElectionType)
	if err != nil {
		return nil, err
	}

	if len(input.Ballots) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	seen := make(map[string]struct{}, len(input.Ballots))
	for _, b := range input.Ballots {
		if b.URL == "" || b.PublicID == "" {
			return nil, domain.ErrInvalidRequest
		}
		if _, dup := seen[b.PublicID]; dup {
			return nil, domain.ErrInvalidRequest
		}
		seen[b.PublicID] = struct{}{}
	}

	event := &domain.VoteEvent{
		ID:               uuid.New(),
		Title:            input.Title,
		Description:      input.Description,
		ElectionType:     electionType,
		RegEndTime:       input.RegEndTime,
		VoteStartTime:    input.VoteStartTime,
		VoteEndTime:      input.VoteEndTime,
		AvailableBallots: input.Ballots,
		CreatedBy:        actor.ID,
		CreatedAt:        time.Now(),
	}

	if err := event.ValidateSchedule(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	if err := s.notifier.EventCreated(event.ID, event.Title); err != nil {
		slog.Warn("event-created notification dropped", "event_id", event.ID, "error", err)
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*domain.VoteEvent, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, phase domain.Phase) ([]*ports.EventWithPhase, error) {
	events, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// GetAll returns newest first; filtering preserves that order.
	now := time.Now()
	result := make([]*ports.EventWithPhase, 0, len(events))
	for _, event := range events {
		p := event.PhaseAt(now)
		if phase != "" && p != phase {
			continue
		}
		result = append(result, &ports.EventWithPhase{VoteEvent: event, Phase: p})
	}

	return result, nil
}

func (s *eventService) ListBallots(ctx context.Context, eventID uuid.UUID, filter ports.BallotFilter) ([]domain.BallotImage, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListBallots(ctx, eventID, filter)
}
