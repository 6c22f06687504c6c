package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

// In-memory doubles for the repository and notifier ports. They honor
// the same conflict semantics the postgres adapters do so the
// services can be exercised without a database.

type memStore struct {
	events   map[uuid.UUID]*domain.VoteEvent
	nominees map[string]*domain.NomineeRegistration
	voters   map[string]*domain.VoterRegistration
	votes    []*domain.VoteRecord
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[uuid.UUID]*domain.VoteEvent),
		nominees: make(map[string]*domain.NomineeRegistration),
		voters:   make(map[string]*domain.VoterRegistration),
	}
}

func regKey(eventID, userID uuid.UUID) string {
	return eventID.String() + "/" + userID.String()
}

type fakeEventRepo struct {
	store *memStore
}

func (r *fakeEventRepo) Save(_ context.Context, event *domain.VoteEvent) error {
	r.store.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.VoteEvent, error) {
	event, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*domain.VoteEvent, error) {
	events := make([]*domain.VoteEvent, 0, len(r.store.events))
	for _, event := range r.store.events {
		events = append(events, event)
	}
	// Newest first, like the postgres adapter.
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *fakeEventRepo) FinalizeBallot(_ context.Context, eventID uuid.UUID, publicID string) error {
	event, ok := r.store.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	for i, b := range event.AvailableBallots {
		if b.PublicID == publicID {
			event.AvailableBallots = append(event.AvailableBallots[:i], event.AvailableBallots[i+1:]...)
			event.UsedBallots = append(event.UsedBallots, b)
			return nil
		}
	}
	return nil
}

func (r *fakeEventRepo) ListBallots(_ context.Context, eventID uuid.UUID, filter ports.BallotFilter) ([]domain.BallotImage, error) {
	event, ok := r.store.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	switch filter {
	case ports.BallotsAvailable:
		return append([]domain.BallotImage{}, event.AvailableBallots...), nil
	case ports.BallotsUsed:
		return append([]domain.BallotImage{}, event.UsedBallots...), nil
	}
	all := append([]domain.BallotImage{}, event.AvailableBallots...)
	return append(all, event.UsedBallots...), nil
}

type fakeRegistrationRepo struct {
	store *memStore
}

func (r *fakeRegistrationRepo) CreateNominee(ctx context.Context, reg *domain.NomineeRegistration) error {
	event, ok := r.store.events[reg.EventID]
	if !ok {
		return domain.ErrEventNotFound
	}

	claimed := false
	for i, b := range event.AvailableBallots {
		if b.PublicID == reg.SelectedBallot.PublicID {
			event.AvailableBallots = append(event.AvailableBallots[:i], event.AvailableBallots[i+1:]...)
			event.UsedBallots = append(event.UsedBallots, b)
			claimed = true
			break
		}
	}
	if !claimed {
		return domain.ErrBallotUnavailable
	}

	key := regKey(reg.EventID, reg.UserID)
	if _, exists := r.store.nominees[key]; exists {
		return domain.ErrAlreadyRegistered
	}
	r.store.nominees[key] = reg
	return nil
}

func (r *fakeRegistrationRepo) GetNominee(_ context.Context, eventID, userID uuid.UUID) (*domain.NomineeRegistration, error) {
	return r.store.nominees[regKey(eventID, userID)], nil
}

func (r *fakeRegistrationRepo) Approve(_ context.Context, eventID, userID uuid.UUID) error {
	reg, ok := r.store.nominees[regKey(eventID, userID)]
	if !ok || reg.Approved {
		return domain.ErrAlreadyApproved
	}
	reg.Approved = true
	return nil
}

func (r *fakeRegistrationRepo) ListNominees(_ context.Context, eventID uuid.UUID, approved bool) ([]domain.NomineeDetail, error) {
	details := []domain.NomineeDetail{}
	for _, reg := range r.store.nominees {
		if reg.EventID == eventID && reg.Approved == approved {
			details = append(details, domain.NomineeDetail{
				UserID:         reg.UserID,
				SelectedBallot: reg.SelectedBallot,
				Approved:       reg.Approved,
			})
		}
	}
	return details, nil
}

func (r *fakeRegistrationRepo) CreateVoter(_ context.Context, reg *domain.VoterRegistration) error {
	key := regKey(reg.EventID, reg.UserID)
	if _, exists := r.store.voters[key]; exists {
		return domain.ErrAlreadyRegistered
	}
	r.store.voters[key] = reg
	return nil
}

func (r *fakeRegistrationRepo) GetVoter(_ context.Context, eventID, userID uuid.UUID) (*domain.VoterRegistration, error) {
	return r.store.voters[regKey(eventID, userID)], nil
}

func (r *fakeRegistrationRepo) ListVoters(_ context.Context, eventID uuid.UUID) ([]domain.VoterDetail, error) {
	details := []domain.VoterDetail{}
	for _, reg := range r.store.voters {
		if reg.EventID == eventID {
			details = append(details, domain.VoterDetail{UserID: reg.UserID, HasVoted: reg.HasVoted})
		}
	}
	return details, nil
}

func (r *fakeRegistrationRepo) Participation(ctx context.Context, eventID uuid.UUID) (*domain.Participation, error) {
	voters, _ := r.ListVoters(ctx, eventID)
	p := &domain.Participation{Voted: []domain.VoterDetail{}, NotVoted: []domain.VoterDetail{}}
	for _, v := range voters {
		if v.HasVoted {
			p.Voted = append(p.Voted, v)
		} else {
			p.NotVoted = append(p.NotVoted, v)
		}
	}
	if total := len(p.Voted) + len(p.NotVoted); total > 0 {
		p.Rate = float64(len(p.Voted)) / float64(total) * 100
	}
	return p, nil
}

type fakeVoteRepo struct {
	store *memStore
}

func (r *fakeVoteRepo) CastVote(_ context.Context, vote *domain.VoteRecord) error {
	reg, ok := r.store.voters[regKey(vote.EventID, vote.VoterID)]
	if !ok || reg.HasVoted {
		return domain.ErrAlreadyVoted
	}
	reg.HasVoted = true
	r.store.votes = append(r.store.votes, vote)
	return nil
}

func (r *fakeVoteRepo) HistoryByVoter(_ context.Context, voterID uuid.UUID) ([]domain.VoteHistoryEntry, error) {
	entries := []domain.VoteHistoryEntry{}
	for _, vote := range r.store.votes {
		if vote.VoterID != voterID {
			continue
		}
		entry := domain.VoteHistoryEntry{
			VoteID:       vote.ID,
			EventID:      vote.EventID,
			ElectionType: vote.ElectionType,
			CastAt:       vote.CreatedAt,
		}
		for _, sel := range vote.Selections {
			entry.Selections = append(entry.Selections, domain.SelectionDetail{NomineeID: sel.NomineeID, Rank: sel.Rank})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type fakeTallyRepo struct {
	singleMulti []domain.VoteTotal
	rank        []domain.RankTotal
}

func (r *fakeTallyRepo) SingleMultiTotals(context.Context, uuid.UUID) ([]domain.VoteTotal, error) {
	return r.singleMulti, nil
}

func (r *fakeTallyRepo) RankTotals(context.Context, uuid.UUID) ([]domain.RankTotal, error) {
	return r.rank, nil
}

// recordingNotifier counts emissions and can be made to fail every
// call.
type recordingNotifier struct {
	err           error
	eventsCreated int
	votesRecorded int
	talliesPushed int
}

func (n *recordingNotifier) EventCreated(uuid.UUID, string) error {
	n.eventsCreated++
	return n.err
}

func (n *recordingNotifier) VoteRecorded(uuid.UUID) error {
	n.votesRecorded++
	return n.err
}

func (n *recordingNotifier) TallyChanged(uuid.UUID, *domain.EventTally) error {
	n.talliesPushed++
	return n.err
}
