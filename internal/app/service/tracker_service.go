package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"leettrack/internal/domain/model"
	"leettrack/internal/domain/repository"
	"leettrack/internal/leetcode"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// TrackerService runs the daily aggregation: for every tracked user it pulls
// the recent submission feed, counts accepted problems inside a rolling 24h
// window and upserts one summary per user under the current calendar-day
// label of the configured timezone. The window is absolute time; the label
// deliberately is not. Ranking queries rely on that label format.
type TrackerService struct {
	userRepo    repository.UserRepository
	summaryRepo repository.SummaryRepository
	lc          leetcode.Client
	clock       clockwork.Clock
	loc         *time.Location
	fanout      int
}

func NewTrackerService(
	userRepo repository.UserRepository,
	summaryRepo repository.SummaryRepository,
	lc leetcode.Client,
	clock clockwork.Clock,
	loc *time.Location,
	fanout int,
) *TrackerService {
	if fanout < 1 {
		fanout = 1
	}
	return &TrackerService{
		userRepo:    userRepo,
		summaryRepo: summaryRepo,
		lc:          lc,
		clock:       clock,
		loc:         loc,
		fanout:      fanout,
	}
}

// TrackResult is the outcome for one user. Error is set when any step of
// that user's iteration failed; counts are zero in that case.
type TrackResult struct {
	User       string `json:"user"`
	TotalCount int    `json:"total_count"`
	Easy       int    `json:"easy"`
	Medium     int    `json:"medium"`
	Hard       int    `json:"hard"`
	Error      bool   `json:"error,omitempty"`
}

// TrackReport describes one aggregation run. Results carry no ordering
// guarantee.
type TrackReport struct {
	WindowStart time.Time     `json:"window_start"`
	WindowEnd   time.Time     `json:"window_end"`
	DateKey     string        `json:"date_key"`
	Results     []TrackResult `json:"results"`
}

// Track aggregates all tracked users. A user whose fetch or upsert fails is
// recorded with the error flag and the run continues; only a failure to list
// the users aborts the run.
func (s *TrackerService) Track(ctx context.Context) (*TrackReport, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracker: list users: %w", err)
	}

	now := s.clock.Now()
	windowStart := now.Add(-24 * time.Hour)
	dateKey := now.In(s.loc).Format("2006-01-02")

	results := make([]TrackResult, len(users))
	g := new(errgroup.Group)
	g.SetLimit(s.fanout)
	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			results[i] = s.trackUser(ctx, user, windowStart, now, dateKey)
			return nil
		})
	}
	g.Wait()

	return &TrackReport{
		WindowStart: windowStart,
		WindowEnd:   now,
		DateKey:     dateKey,
		Results:     results,
	}, nil
}

func (s *TrackerService) trackUser(ctx context.Context, user model.TrackedUser, windowStart, windowEnd time.Time, dateKey string) TrackResult {
	profile, err := s.lc.FetchUserProfile(ctx, user.Username)
	if err != nil {
		log.Printf("ERROR: tracking %s: %v", user.Username, err)
		return TrackResult{User: user.Username, Error: true}
	}

	accepted := filterAcceptedInWindow(profile.RecentSubmissions, windowStart, windowEnd)
	accepted = dedupeBySlug(accepted)

	var easy, medium, hard int
	for _, sub := range accepted {
		difficulty := sub.Difficulty
		if difficulty == "" {
			d, err := s.lc.FetchProblemDifficulty(ctx, sub.TitleSlug)
			if err != nil {
				log.Printf("WARN: difficulty lookup for %s failed: %v", sub.TitleSlug, err)
				difficulty = "Unknown"
			} else {
				difficulty = d
			}
		}
		switch strings.ToLower(difficulty) {
		case "easy":
			easy++
		case "medium":
			medium++
		case "hard":
			hard++
		}
	}

	total := easy + medium + hard
	if total > 0 {
		summary := &model.DailySummary{
			UserID:     user.ID,
			Date:       dateKey,
			TotalCount: total,
			Easy:       easy,
			Medium:     medium,
			Hard:       hard,
		}
		if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
			log.Printf("ERROR: upserting summary for %s: %v", user.Username, err)
			return TrackResult{User: user.Username, Error: true}
		}
	}

	return TrackResult{User: user.Username, TotalCount: total, Easy: easy, Medium: medium, Hard: hard}
}

// filterAcceptedInWindow keeps submissions with an exact "Accepted" status
// whose timestamp falls in [windowStart, windowEnd). Timestamps are epoch
// seconds; comparison happens in milliseconds.
func filterAcceptedInWindow(subs []leetcode.RecentSubmission, windowStart, windowEnd time.Time) []leetcode.RecentSubmission {
	startMs := windowStart.UnixMilli()
	endMs := windowEnd.UnixMilli()

	var kept []leetcode.RecentSubmission
	for _, sub := range subs {
		tsMs := sub.Timestamp * 1000
		if sub.StatusDisplay == "Accepted" && tsMs >= startMs && tsMs < endMs {
			kept = append(kept, sub)
		}
	}
	return kept
}

// dedupeBySlug keeps the first occurrence per problem slug, preserving order,
// and drops entries without a slug.
func dedupeBySlug(subs []leetcode.RecentSubmission) []leetcode.RecentSubmission {
	seen := make(map[string]bool, len(subs))
	var kept []leetcode.RecentSubmission
	for _, sub := range subs {
		if sub.TitleSlug == "" || seen[sub.TitleSlug] {
			continue
		}
		seen[sub.TitleSlug] = true
		kept = append(kept, sub)
	}
	return kept
}
