package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

const uniqueViolation = "23505"

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) ports.RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// CreateNominee claims the selected ballot and inserts the
// registration in one transaction. The conditional ballot update and
// the (event_id, user_id) unique constraint carry the concurrency
// guarantees; two racing claims of the same ballot cannot both see a
// row with used = FALSE.
func (r *registrationRepository) CreateNominee(ctx context.Context, reg *domain.NomineeRegistration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	claimQuery := `
		UPDATE event_ballots SET used = TRUE
		WHERE event_id = $1 AND public_id = $2 AND used = FALSE
	`
	res, err := tx.ExecContext(ctx, claimQuery, reg.EventID, reg.SelectedBallot.PublicID)
	if err != nil {
		return fmt.Errorf("failed to claim ballot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read claim result: %w", err)
	}
	if affected == 0 {
		return domain.ErrBallotUnavailable
	}

	insertQuery := `
		INSERT INTO nominee_registrations (id, event_id, user_id, ballot_url, ballot_public_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		reg.ID, reg.EventID, reg.UserID,
		reg.SelectedBallot.URL, reg.SelectedBallot.PublicID, reg.Description,
	).Scan(&reg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to insert nominee registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetNominee(ctx context.Context, eventID, userID uuid.UUID) (*domain.NomineeRegistration, error) {
	query := `
		SELECT id, event_id, user_id, ballot_url, ballot_public_id, approved, description, created_at
		FROM nominee_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.NomineeRegistration{}
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&reg.ID, &reg.EventID, &reg.UserID,
		&reg.SelectedBallot.URL, &reg.SelectedBallot.PublicID,
		&reg.Approved, &reg.Description, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nominee registration: %w", err)
	}
	return reg, nil
}

func (r *registrationRepository) Approve(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `
		UPDATE nominee_registrations SET approved = TRUE
		WHERE event_id = $1 AND user_id = $2 AND approved = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to approve nominee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read approval result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyApproved
	}
	return nil
}

func (r *registrationRepository) ListNominees(ctx context.Context, eventID uuid.UUID, approved bool) ([]domain.NomineeDetail, error) {
	query := `
		SELECT n.user_id, u.name, u.email, COALESCE(u.profile_image_url, ''), n.ballot_url, n.ballot_public_id, n.approved
		FROM nominee_registrations n
		JOIN users u ON u.id = n.user_id
		WHERE n.event_id = $1 AND n.approved = $2
		ORDER BY n.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, eventID, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list nominees: %w", err)
	}
	defer rows.Close()

	nominees := []domain.NomineeDetail{}
	for rows.Next() {
		var n domain.NomineeDetail
		if err := rows.Scan(
			&n.UserID, &n.Name, &n.Email, &n.ProfileImageURL,
			&n.SelectedBallot.URL, &n.SelectedBallot.PublicID, &n.Approved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nominee: %w", err)
		}
		nominees = append(nominees, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nominees: %w", err)
	}
	return nominees, nil
}

func (r *registrationRepository) CreateVoter(ctx context.Context, reg *domain.VoterRegistration) error {
	query := `
		INSERT INTO voter_registrations (id, event_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, reg.ID, reg.EventID, reg.UserID).Scan(&reg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to insert voter registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetVoter(ctx context.Context, eventID, userID uuid.UUID) (*domain.VoterRegistration, error) {
	query := `
		SELECT id, event_id, user_id, has_voted, created_at
		FROM voter_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.VoterRegistration{}
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.HasVoted, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get voter registration: %w", err)
	}
	return reg, nil
}

func (r *registrationRepository) ListVoters(ctx context.Context, eventID uuid.UUID) ([]domain.VoterDetail, error) {
	return r.listVoters(ctx, eventID, nil)
}

func (r *registrationRepository) Participation(ctx context.Context, eventID uuid.UUID) (*domain.Participation, error) {
	voted := true
	notVoted := false

	votedList, err := r.listVoters(ctx, eventID, &voted)
	if err != nil {
		return nil, err
	}
	notVotedList, err := r.listVoters(ctx, eventID, &notVoted)
	if err != nil {
		return nil, err
	}

	participation := &domain.Participation{
		Voted:    votedList,
		NotVoted: notVotedList,
	}
	total := len(votedList) + len(notVotedList)
	if total > 0 {
		participation.Rate = float64(len(votedList)) / float64(total) * 100
	}
	return participation, nil
}

func (r *registrationRepository) listVoters(ctx context.Context, eventID uuid.UUID, hasVoted *bool) ([]domain.VoterDetail, error) {
	query := `
		SELECT v.user_id, u.name, u.email, COALESCE(u.profile_image_url, ''), v.has_voted
		FROM voter_registrations v
		JOIN users u ON u.id = v.user_id
		WHERE v.event_id = $1
	`
	args := []any{eventID}
	if hasVoted != nil {
		query += ` AND v.has_voted = $2`
		args = append(args, *hasVoted)
	}
	query += ` ORDER BY v.created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	voters := []domain.VoterDetail{}
	for rows.Next() {
		var v domain.VoterDetail
		if err := rows.Scan(&v.UserID, &v.Name, &v.Email, &v.ProfileImageURL, &v.HasVoted); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}
