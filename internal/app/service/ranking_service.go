package service

import (
	"context"
	"fmt"
	"time"

	"leettrack/internal/common"
	"leettrack/internal/domain/model"
	"leettrack/internal/domain/repository"

	"github.com/jonboulle/clockwork"
)

const (
	PeriodToday     = "today"
	PeriodThisWeek  = "this_week"
	PeriodThisMonth = "this_month"
	PeriodTotal     = "total"
)

// RankingService answers leaderboard queries over stored daily summaries.
// All period boundaries are calendar-date labels in the tracking timezone.
type RankingService struct {
	summaryRepo repository.SummaryRepository
	clock       clockwork.Clock
	loc         *time.Location
}

func NewRankingService(summaryRepo repository.SummaryRepository, clock clockwork.Clock, loc *time.Location) *RankingService {
	return &RankingService{summaryRepo: summaryRepo, clock: clock, loc: loc}
}

// Ranking resolves the period selector to a date-label range and returns the
// per-user sums, sorted by total descending. An unknown selector is rejected
// before any query runs.
//
// "today" spans yesterday's and today's labels. Summaries from a run shortly
// after midnight can carry the previous day's key while counting today's
// solves; narrowing this to a single day would drop them.
func (s *RankingService) Ranking(ctx context.Context, period string) ([]model.RankingEntry, error) {
	today := s.clock.Now().In(s.loc)

	var fromDate, toDate string
	switch period {
	case PeriodToday:
		fromDate = today.AddDate(0, 0, -1).Format("2006-01-02")
		toDate = today.Format("2006-01-02")
	case PeriodThisWeek:
		fromDate = today.AddDate(0, 0, -6).Format("2006-01-02")
	case PeriodThisMonth:
		fromDate = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc).Format("2006-01-02")
	case PeriodTotal:
		// no date filter
	default:
		return nil, fmt.Errorf("invalid ranking type %q: %w", period, common.ErrValidation)
	}

	entries, err := s.summaryRepo.AggregateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	return entries, nil
}
