package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"leettrack/internal/domain/model"
	"leettrack/internal/domain/repository"
	"leettrack/internal/leetcode"

	"github.com/jonboulle/clockwork"
)

// StatsService refreshes per-user lifetime counters and contest snapshots
// from the external API. Both refreshes mirror the upstream values: the
// stored record is overwritten wholesale, never accumulated locally.
type StatsService struct {
	userRepo    repository.UserRepository
	totalsRepo  repository.TotalStatsRepository
	contestRepo repository.ContestStatsRepository
	lc          leetcode.Client
	clock       clockwork.Clock
}

func NewStatsService(
	userRepo repository.UserRepository,
	totalsRepo repository.TotalStatsRepository,
	contestRepo repository.ContestStatsRepository,
	lc leetcode.Client,
	clock clockwork.Clock,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		totalsRepo:  totalsRepo,
		contestRepo: contestRepo,
		lc:          lc,
		clock:       clock,
	}
}

// RefreshResult is the outcome of one user's refresh.
type RefreshResult struct {
	User        string `json:"user"`
	TotalSolved int    `json:"total_solved,omitempty"`
	Error       bool   `json:"error,omitempty"`
}

// RefreshTotals overwrites every tracked user's lifetime counters. Per-user
// failures are recorded and the batch continues.
func (s *StatsService) RefreshTotals(ctx context.Context) ([]RefreshResult, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh totals: list users: %w", err)
	}

	results := make([]RefreshResult, 0, len(users))
	for _, user := range users {
		profile, err := s.lc.FetchUserProfile(ctx, user.Username)
		if err != nil || !profile.Matched {
			log.Printf("ERROR: refreshing totals for %s: %v", user.Username, err)
			results = append(results, RefreshResult{User: user.Username, Error: true})
			continue
		}

		easy, medium, hard := extractAcceptedBuckets(profile.AcceptedByDifficulty)
		stats := &model.TotalStats{
			UserID:      user.ID,
			Easy:        easy,
			Medium:      medium,
			Hard:        hard,
			TotalSolved: easy + medium + hard,
			RefreshedAt: s.clock.Now(),
		}
		if err := s.totalsRepo.Upsert(ctx, stats); err != nil {
			log.Printf("ERROR: upserting totals for %s: %v", user.Username, err)
			results = append(results, RefreshResult{User: user.Username, Error: true})
			continue
		}
		results = append(results, RefreshResult{User: user.Username, TotalSolved: stats.TotalSolved})
	}
	return results, nil
}

// RefreshContests overwrites every tracked user's contest snapshot. Users
// without a contest section count as per-user failures.
func (s *StatsService) RefreshContests(ctx context.Context) ([]RefreshResult, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh contests: list users: %w", err)
	}

	results := make([]RefreshResult, 0, len(users))
	for _, user := range users {
		profile, err := s.lc.FetchUserProfile(ctx, user.Username)
		if err != nil || !profile.Matched || profile.ContestRanking == nil {
			log.Printf("ERROR: refreshing contest stats for %s: %v", user.Username, err)
			results = append(results, RefreshResult{User: user.Username, Error: true})
			continue
		}

		cr := profile.ContestRanking
		stats := &model.ContestStats{
			UserID:            user.ID,
			Attended:          cr.AttendedContestsCount,
			Rating:            cr.Rating,
			GlobalRanking:     cr.GlobalRanking,
			TotalParticipants: cr.TotalParticipants,
			TopPercentage:     cr.TopPercentage,
			Badge:             cr.BadgeName,
			RefreshedAt:       s.clock.Now(),
		}
		if err := s.contestRepo.Upsert(ctx, stats); err != nil {
			log.Printf("ERROR: upserting contest stats for %s: %v", user.Username, err)
			results = append(results, RefreshResult{User: user.Username, Error: true})
			continue
		}
		results = append(results, RefreshResult{User: user.Username})
	}
	return results, nil
}

func (s *StatsService) TotalLeaderboard(ctx context.Context) ([]model.TotalStandings, error) {
	standings, err := s.totalsRepo.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("total leaderboard: %w", err)
	}
	return standings, nil
}

func (s *StatsService) ContestLeaderboard(ctx context.Context) ([]model.ContestStandings, error) {
	standings, err := s.contestRepo.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("contest leaderboard: %w", err)
	}
	return standings, nil
}

// extractAcceptedBuckets pulls the easy/medium/hard counts out of the
// lifetime accepted buckets, matching labels case-insensitively. A missing
// bucket counts as zero; the "All" bucket is ignored.
func extractAcceptedBuckets(buckets []leetcode.AcceptedCount) (easy, medium, hard int) {
	for _, b := range buckets {
		switch {
		case strings.EqualFold(b.Difficulty, "easy"):
			easy = b.Count
		case strings.EqualFold(b.Difficulty, "medium"):
			medium = b.Count
		case strings.EqualFold(b.Difficulty, "hard"):
			hard = b.Count
		}
	}
	return easy, medium, hard
}
