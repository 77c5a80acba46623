package repository

import (
	"context"
	"database/sql"
	"fmt"

	"leettrack/internal/domain/model"
)

type TotalStatsRepository interface {
	// Upsert fully overwrites the user's lifetime counters.
	Upsert(ctx context.Context, stats *model.TotalStats) error
	// Leaderboard lists all stats joined with user identity, sorted by
	// total solved descending.
	Leaderboard(ctx context.Context) ([]model.TotalStandings, error)
}

type pgTotalStatsRepository struct {
	db *sql.DB
}

func NewPgTotalStatsRepository(db *sql.DB) TotalStatsRepository {
	return &pgTotalStatsRepository{db: db}
}

func (r *pgTotalStatsRepository) Upsert(ctx context.Context, stats *model.TotalStats) error {
	query := `INSERT INTO total_stats (user_id, easy, medium, hard, total_solved, refreshed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id) DO UPDATE SET
	            easy = EXCLUDED.easy,
	            medium = EXCLUDED.medium,
	            hard = EXCLUDED.hard,
	            total_solved = EXCLUDED.total_solved,
	            refreshed_at = EXCLUDED.refreshed_at`
	_, err := r.db.ExecContext(ctx, query,
		stats.UserID, stats.Easy, stats.Medium, stats.Hard, stats.TotalSolved, stats.RefreshedAt,
	)
	if err != nil {
		return fmt.Errorf("pgTotalStatsRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgTotalStatsRepository) Leaderboard(ctx context.Context) ([]model.TotalStandings, error) {
	query := `SELECT u.id, u.username, u.name,
	            t.easy, t.medium, t.hard, t.total_solved, t.refreshed_at
	          FROM total_stats t
	          JOIN users u ON u.id = t.user_id
	          ORDER BY t.total_solved DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTotalStatsRepository.Leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []model.TotalStandings
	for rows.Next() {
		var s model.TotalStandings
		if err := rows.Scan(&s.UserID, &s.Username, &s.Name, &s.Easy, &s.Medium, &s.Hard, &s.TotalSolved, &s.RefreshedAt); err != nil {
			return nil, fmt.Errorf("pgTotalStatsRepository.Leaderboard scan: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
