package ports

import (
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

// Notifier is the live-notification sink. Delivery is best-effort:
// callers attempt the emit and discard any error, so a sink failure
// never fails the operation that triggered it.
type Notifier interface {
	EventCreated(eventID uuid.UUID, title string) error
	VoteRecorded(eventID uuid.UUID) error
	TallyChanged(eventID uuid.UUID, tally *domain.EventTally) error
}

// NoopNotifier drops every notification.
type NoopNotifier struct{}

func (NoopNotifier) EventCreated(uuid.UUID, string) error { return nil }

func (NoopNotifier) VoteRecorded(uuid.UUID) error { return nil }

func (NoopNotifier) TallyChanged(uuid.UUID, *domain.EventTally) error { return nil }
