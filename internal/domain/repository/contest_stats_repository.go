package repository

import (
	"context"
	"database/sql"
	"fmt"

	"leettrack/internal/domain/model"
)

type ContestStatsRepository interface {
	Upsert(ctx context.Context, stats *model.ContestStats) error
	// Leaderboard lists contest snapshots joined with user identity, sorted
	// by rating descending.
	Leaderboard(ctx context.Context) ([]model.ContestStandings, error)
}

type pgContestStatsRepository struct {
	db *sql.DB
}

func NewPgContestStatsRepository(db *sql.DB) ContestStatsRepository {
	return &pgContestStatsRepository{db: db}
}

func (r *pgContestStatsRepository) Upsert(ctx context.Context, stats *model.ContestStats) error {
	query := `INSERT INTO contest_stats
	            (user_id, attended, rating, global_ranking, total_participants, top_percentage, badge, refreshed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id) DO UPDATE SET
	            attended = EXCLUDED.attended,
	            rating = EXCLUDED.rating,
	            global_ranking = EXCLUDED.global_ranking,
	            total_participants = EXCLUDED.total_participants,
	            top_percentage = EXCLUDED.top_percentage,
	            badge = EXCLUDED.badge,
	            refreshed_at = EXCLUDED.refreshed_at`
	_, err := r.db.ExecContext(ctx, query,
		stats.UserID, stats.Attended, stats.Rating, stats.GlobalRanking,
		stats.TotalParticipants, stats.TopPercentage, stats.Badge, stats.RefreshedAt,
	)
	if err != nil {
		return fmt.Errorf("pgContestStatsRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgContestStatsRepository) Leaderboard(ctx context.Context) ([]model.ContestStandings, error) {
	query := `SELECT u.id, u.username, u.name,
	            c.attended, c.rating, c.global_ranking, c.total_participants, c.top_percentage, c.badge
	          FROM contest_stats c
	          JOIN users u ON u.id = c.user_id
	          ORDER BY c.rating DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgContestStatsRepository.Leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []model.ContestStandings
	for rows.Next() {
		var s model.ContestStandings
		if err := rows.Scan(&s.UserID, &s.Username, &s.Name, &s.Attended, &s.Rating, &s.GlobalRanking, &s.TotalParticipants, &s.TopPercentage, &s.Badge); err != nil {
			return nil, fmt.Errorf("pgContestStatsRepository.Leaderboard scan: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
