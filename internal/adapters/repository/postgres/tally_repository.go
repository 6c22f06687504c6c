package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
)

type tallyRepository struct {
	db *sql.DB
}

func NewTallyRepository(db *sql.DB) ports.TallyRepository {
	return &tallyRepository{
		db: db,
	}
}

func (r *tallyRepository) SingleMultiTotals(ctx context.Context, eventID uuid.UUID) ([]domain.VoteTotal, error) {
	query := `
		SELECT s.nominee_id, COALESCE(u.name, 'Unknown'), COUNT(*)
		FROM votes v
		JOIN vote_selections s ON s.vote_id = v.id
		LEFT JOIN users u ON u.id = s.nominee_id
		WHERE v.event_id = $1 AND v.election_type IN ('Single', 'MultiVote')
		GROUP BY s.nominee_id, u.name
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vote totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.VoteTotal{}
	for rows.Next() {
		var t domain.VoteTotal
		if err := rows.Scan(&t.NomineeID, &t.NomineeName, &t.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan vote total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote totals: %w", err)
	}
	return totals, nil
}

func (r *tallyRepository) RankTotals(ctx context.Context, eventID uuid.UUID) ([]domain.RankTotal, error) {
	query := `
		SELECT s.nominee_id, COALESCE(u.name, 'Unknown'), COALESCE(SUM(s.rank), 0)
		FROM votes v
		JOIN vote_selections s ON s.vote_id = v.id
		LEFT JOIN users u ON u.id = s.nominee_id
		WHERE v.event_id = $1 AND v.election_type = 'Rank'
		GROUP BY s.nominee_id, u.name
		ORDER BY COALESCE(SUM(s.rank), 0) ASC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rank totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.RankTotal{}
	for rows.Next() {
		var t domain.RankTotal
		if err := rows.Scan(&t.NomineeID, &t.NomineeName, &t.TotalRankScore); err != nil {
			return nil, fmt.Errorf("failed to scan rank total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rank totals: %w", err)
	}
	return totals, nil
}
