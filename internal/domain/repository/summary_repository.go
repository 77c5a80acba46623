package repository

import (
	"context"
	"database/sql"
	"fmt"

	"leettrack/internal/domain/model"
)

type SummaryRepository interface {
	// Upsert writes a summary for its (user, date) key, replacing any prior
	// counts for that key. The write is a single statement, atomic per key.
	Upsert(ctx context.Context, summary *model.DailySummary) error
	// AggregateRange sums summaries per user over an inclusive date-label
	// range and joins user identity, sorted by summed total descending.
	// Empty fromDate/toDate leave that side of the range unbounded.
	AggregateRange(ctx context.Context, fromDate, toDate string) ([]model.RankingEntry, error)
}

type pgSummaryRepository struct {
	db *sql.DB
}

func NewPgSummaryRepository(db *sql.DB) SummaryRepository {
	return &pgSummaryRepository{db: db}
}

func (r *pgSummaryRepository) Upsert(ctx context.Context, summary *model.DailySummary) error {
	query := `INSERT INTO daily_summaries (user_id, date, total_count, easy, medium, hard)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id, date) DO UPDATE SET
	            total_count = EXCLUDED.total_count,
	            easy = EXCLUDED.easy,
	            medium = EXCLUDED.medium,
	            hard = EXCLUDED.hard`
	_, err := r.db.ExecContext(ctx, query,
		summary.UserID, summary.Date, summary.TotalCount, summary.Easy, summary.Medium, summary.Hard,
	)
	if err != nil {
		return fmt.Errorf("pgSummaryRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgSummaryRepository) AggregateRange(ctx context.Context, fromDate, toDate string) ([]model.RankingEntry, error) {
	query := `SELECT u.id, u.username, u.name,
	            SUM(s.total_count), SUM(s.easy), SUM(s.medium), SUM(s.hard)
	          FROM daily_summaries s
	          JOIN users u ON u.id = s.user_id
	          WHERE ($1 = '' OR s.date >= $1)
	            AND ($2 = '' OR s.date <= $2)
	          GROUP BY u.id, u.username, u.name
	          ORDER BY SUM(s.total_count) DESC`
	rows, err := r.db.QueryContext(ctx, query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("pgSummaryRepository.AggregateRange: %w", err)
	}
	defer rows.Close()

	var entries []model.RankingEntry
	for rows.Next() {
		var e model.RankingEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Name, &e.TotalCount, &e.Easy, &e.Medium, &e.Hard); err != nil {
			return nil, fmt.Errorf("pgSummaryRepository.AggregateRange scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
