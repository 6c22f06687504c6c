package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

func validCreateInput() ports.CreateEventInput {
	now := time.Now()
	return ports.CreateEventInput{
		Title:         "Student Council 2026",
		Description:   "Annual council election",
		ElectionType:  "Single",
		RegEndTime:    now.Add(24 * time.Hour),
		VoteStartTime: now.Add(48 * time.Hour),
		VoteEndTime:   now.Add(72 * time.Hour),
		Ballots: []domain.BallotImage{
			{URL: "https://cdn.example/b1.png", PublicID: "ballots/b1"},
			{URL: "https://cdn.example/b2.png", PublicID: "ballots/b2"},
		},
	}
}

func newEventService(store *memStore, notifier ports.Notifier) ports.EventService {
	return NewEventService(&fakeEventRepo{store: store}, notifier)
}

func TestCreateEvent(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	svc := newEventService(store, notifier)
	admin := ports.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	event, err := svc.Create(context.Background(), admin, validCreateInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, domain.ElectionSingle, event.ElectionType)
	assert.Equal(t, admin.ID, event.CreatedBy)
	assert.Len(t, event.AvailableBallots, 2)
	assert.Empty(t, event.UsedBallots)
	assert.Equal(t, 1, notifier.eventsCreated)

	saved, err := svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Title, saved.Title)
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	svc := newEventService(newMemStore(), &recordingNotifier{})
	voter := ports.Actor{ID: uuid.New(), Role: domain.RoleVoter}

	_, err := svc.Create(context.Background(), voter, validCreateInput())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateEventValidation(t *testing.T) {
	svc := newEventService(newMemStore(), &recordingNotifier{})
	admin := ports.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name   string
		mutate func(*ports.CreateEventInput)
	}{
		{"missing title", func(in *ports.CreateEventInput) { in.Title = "" }},
		{"unknown election type", func(in *ports.CreateEventInput) { in.ElectionType = "Plurality" }},
		{"no ballots", func(in *ports.CreateEventInput) { in.Ballots = nil }},
		{"ballot missing url", func(in *ports.CreateEventInput) { in.Ballots[0].URL = "" }},
		{"duplicate ballot public id", func(in *ports.CreateEventInput) { in.Ballots[1].PublicID = in.Ballots[0].PublicID }},
		{"zero timestamp", func(in *ports.CreateEventInput) { in.VoteEndTime = time.Time{} }},
		{"registration past voting start", func(in *ports.CreateEventInput) { in.RegEndTime = in.VoteStartTime.Add(time.Hour) }},
		{"voting ends before it starts", func(in *ports.CreateEventInput) { in.VoteEndTime = in.VoteStartTime.Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), admin, input)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestCreateEventNotifierFailureIsSwallowed(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("hub down")}
	svc := newEventService(newMemStore(), notifier)
	admin := ports.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	event, err := svc.Create(context.Background(), admin, validCreateInput())
	require.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, 1, notifier.eventsCreated)
}

func TestListEventsFilterKeepsNewestFirst(t *testing.T) {
	store := newMemStore()
	svc := newEventService(store, &recordingNotifier{})
	now := time.Now()

	older := scheduled(now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	older.CreatedAt = now.Add(-2 * time.Hour)
	newer := scheduled(now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	newer.CreatedAt = now.Add(-time.Hour)
	finished := scheduled(now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour))
	finished.CreatedAt = now

	for _, e := range []*domain.VoteEvent{older, newer, finished} {
		store.events[e.ID] = e
	}

	all, err := svc.ListEvents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, finished.ID, all[0].ID)
	assert.Equal(t, newer.ID, all[1].ID)
	assert.Equal(t, older.ID, all[2].ID)
	assert.Equal(t, domain.PhaseFinished, all[0].Phase)
	assert.Equal(t, domain.PhaseRegistration, all[1].Phase)

	open, err := svc.ListEvents(context.Background(), domain.PhaseRegistration)
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, e := range open {
		assert.Equal(t, domain.PhaseRegistration, e.Phase)
	}
}

func TestListBallotsUnknownEvent(t *testing.T) {
	svc := newEventService(newMemStore(), &recordingNotifier{})

	_, err := svc.ListBallots(context.Background(), uuid.New(), ports.BallotsAll)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

// scheduled builds a stored event with one available ballot per slot.
func scheduled(regEnd, voteStart, voteEnd time.Time) *domain.VoteEvent {
	return &domain.VoteEvent{
		ID:            uuid.New(),
		Title:         "event",
		ElectionType:  domain.ElectionSingle,
		RegEndTime:    regEnd,
		VoteStartTime: voteStart,
		VoteEndTime:   voteEnd,
		AvailableBallots: []domain.BallotImage{
			{URL: "https://cdn.example/a.png", PublicID: "ballots/a"},
			{URL: "https://cdn.example/b.png", PublicID: "ballots/b"},
		},
		CreatedBy: uuid.New(),
		CreatedAt: time.Now(),
	}
}
