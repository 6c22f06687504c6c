package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// CastVote flips the voter's has_voted flag and inserts the record
// with its selections in one transaction. The conditional update is
// the at-most-once guard: of two concurrent casts, exactly one
// matches the has_voted = FALSE row.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.VoteRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	markQuery := `
		UPDATE voter_registrations SET has_voted = TRUE
		WHERE event_id = $1 AND user_id = $2 AND has_voted = FALSE
	`
	res, err := tx.ExecContext(ctx, markQuery, vote.EventID, vote.VoterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read mark result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyVoted
	}

	voteQuery := `
		INSERT INTO votes (id, event_id, voter_id, election_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, voteQuery, vote.ID, vote.EventID, vote.VoterID, vote.ElectionType).Scan(&vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	selectionQuery := `
		INSERT INTO vote_selections (vote_id, position, nominee_id, rank)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, selectionQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare selection statement: %w", err)
	}
	defer stmt.Close()

	for i, sel := range vote.Selections {
		var rank sql.NullInt64
		if sel.Rank != nil {
			rank = sql.NullInt64{Int64: int64(*sel.Rank), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, vote.ID, i, sel.NomineeID, rank); err != nil {
			return fmt.Errorf("failed to insert selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *voteRepository) HistoryByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.VoteHistoryEntry, error) {
	query := `
		SELECT v.id, v.event_id, e.title, v.election_type, v.created_at,
		       s.nominee_id, COALESCE(u.name, 'Unknown'), s.rank
		FROM votes v
		JOIN events e ON e.id = v.event_id
		JOIN vote_selections s ON s.vote_id = v.id
		LEFT JOIN users u ON u.id = s.nominee_id
		WHERE v.voter_id = $1
		ORDER BY v.created_at DESC, s.position
	`
	rows, err := r.db.QueryContext(ctx, query, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote history: %w", err)
	}
	defer rows.Close()

	entries := []domain.VoteHistoryEntry{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			entry domain.VoteHistoryEntry
			sel   domain.SelectionDetail
			rank  sql.NullInt64
		)
		if err := rows.Scan(
			&entry.VoteID, &entry.EventID, &entry.EventTitle, &entry.ElectionType, &entry.CastAt,
			&sel.NomineeID, &sel.NomineeName, &rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote history: %w", err)
		}
		if rank.Valid {
			v := int(rank.Int64)
			sel.Rank = &v
		}

		i, ok := index[entry.VoteID]
		if !ok {
			index[entry.VoteID] = len(entries)
			entry.Selections = []domain.SelectionDetail{sel}
			entries = append(entries, entry)
			continue
		}
		entries[i].Selections = append(entries[i].Selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote history: %w", err)
	}
	return entries, nil
}
