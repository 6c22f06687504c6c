package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) ports.EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Save(ctx context.Context, event *domain.VoteEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryEvent := `
		INSERT INTO events (id, title, description, election_type, reg_end_time, vote_start_time, vote_end_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, queryEvent,
		event.ID, event.Title, event.Description, event.ElectionType,
		event.RegEndTime, event.VoteStartTime, event.VoteEndTime, event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	queryBallot := `
		INSERT INTO event_ballots (event_id, public_id, url)
		VALUES ($1, $2, $3)
	`
	stmt, err := tx.PrepareContext(ctx, queryBallot)
	if err != nil {
		return fmt.Errorf("failed to prepare ballot statement: %w", err)
	}
	defer stmt.Close()

	for _, ballot := range event.AvailableBallots {
		_, err = stmt.ExecContext(ctx, event.ID, ballot.PublicID, ballot.URL)
		if err != nil {
			return fmt.Errorf("failed to insert ballot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VoteEvent, error) {
	queryEvent := `
		SELECT id, title, description, election_type, reg_end_time, vote_start_time, vote_end_time, created_by, created_at
		FROM events
		WHERE id = $1
	`

	var event domain.VoteEvent
	err := r.db.QueryRowContext(ctx, queryEvent, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.ElectionType,
		&event.RegEndTime, &event.VoteStartTime, &event.VoteEndTime,
		&event.CreatedBy, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if err := r.fetchBallots(ctx, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*domain.VoteEvent, error) {
	query := `
		SELECT id, title, description, election_type, reg_end_time, vote_start_time, vote_end_time, created_by, created_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	defer rows.Close()

	var events []*domain.VoteEvent
	for rows.Next() {
		var event domain.VoteEvent
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.ElectionType,
			&event.RegEndTime, &event.VoteStartTime, &event.VoteEndTime,
			&event.CreatedBy, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	for _, event := range events {
		if err := r.fetchBallots(ctx, event); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// FinalizeBallot moves a ballot to the used set. The conditional
// update makes it idempotent: a ballot already used matches zero rows
// and that is fine.
func (r *eventRepository) FinalizeBallot(ctx context.Context, eventID uuid.UUID, publicID string) error {
	query := `
		UPDATE event_ballots SET used = TRUE
		WHERE event_id = $1 AND public_id = $2 AND used = FALSE
	`
	_, err := r.db.ExecContext(ctx, query, eventID, publicID)
	if err != nil {
		return fmt.Errorf("failed to finalize ballot: %w", err)
	}
	return nil
}

func (r *eventRepository) ListBallots(ctx context.Context, eventID uuid.UUID, filter ports.BallotFilter) ([]domain.BallotImage, error) {
	query := `
		SELECT url, public_id
		FROM event_ballots
		WHERE event_id = $1
	`
	switch filter {
	case ports.BallotsAvailable:
		query += ` AND used = FALSE`
	case ports.BallotsUsed:
		query += ` AND used = TRUE`
	}
	query += ` ORDER BY public_id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	defer rows.Close()

	ballots := []domain.BallotImage{}
	for rows.Next() {
		var b domain.BallotImage
		if err := rows.Scan(&b.URL, &b.PublicID); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}
	return ballots, nil
}

func (r *eventRepository) fetchBallots(ctx context.Context, event *domain.VoteEvent) error {
	query := `
		SELECT url, public_id, used
		FROM event_ballots
		WHERE event_id = $1
		ORDER BY public_id
	`
	rows, err := r.db.QueryContext(ctx, query, event.ID)
	if err != nil {
		return fmt.Errorf("failed to get event ballots: %w", err)
	}
	defer rows.Close()

	event.AvailableBallots = nil
	event.UsedBallots = nil
	for rows.Next() {
		var b domain.BallotImage
		var used bool
		if err := rows.Scan(&b.URL, &b.PublicID, &used); err != nil {
			return fmt.Errorf("failed to scan ballot: %w", err)
		}
		if used {
			event.UsedBallots = append(event.UsedBallots, b)
		} else {
			event.AvailableBallots = append(event.AvailableBallots, b)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating ballots: %w", err)
	}
	return nil
}
