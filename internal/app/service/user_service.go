package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"leettrack/internal/common"
	"leettrack/internal/domain/model"
	"leettrack/internal/domain/repository"
	"leettrack/internal/leetcode"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// UserService admits users into the tracked set and serves live passthrough
// lookups against the external API.
type UserService struct {
	userRepo repository.UserRepository
	lc       leetcode.Client
	clock    clockwork.Clock
	loc      *time.Location
}

func NewUserService(userRepo repository.UserRepository, lc leetcode.Client, clock clockwork.Clock, loc *time.Location) *UserService {
	return &UserService{userRepo: userRepo, lc: lc, clock: clock, loc: loc}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Register validates a candidate username against the external API and only
// then persists it. The tracked set must never contain an identity that was
// not verified externally, so the order of these steps is fixed.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.TrackedUser, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required: %w", common.ErrValidation)
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("user %q already exists: %w", req.Username, common.ErrBadRequest)
	}

	profile, err := s.lc.FetchUserProfile(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("validate %q: %w", req.Username, err)
	}
	// A usable account must both match and expose a recent-submission list
	// structure. The list may be empty, but the field itself must be there.
	if !profile.Matched || !profile.HasRecentSubmissions {
		return nil, fmt.Errorf("username %q not found on LeetCode: %w", req.Username, common.ErrNotFound)
	}

	user := &model.TrackedUser{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: s.clock.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.TrackedUser, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// LiveTotals is the result of a passthrough lifetime-counts lookup. Nothing
// is persisted.
type LiveTotals struct {
	Username    string `json:"username"`
	Easy        int    `json:"easy"`
	Medium      int    `json:"medium"`
	Hard        int    `json:"hard"`
	TotalSolved int    `json:"total_solved"`
}

func (s *UserService) FetchLiveTotals(ctx context.Context, username string) (*LiveTotals, error) {
	profile, err := s.lc.FetchUserProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("live totals for %q: %w", username, err)
	}
	if !profile.Matched {
		return nil, fmt.Errorf("username %q not found on LeetCode: %w", username, common.ErrNotFound)
	}

	easy, medium, hard := extractAcceptedBuckets(profile.AcceptedByDifficulty)
	return &LiveTotals{
		Username:    username,
		Easy:        easy,
		Medium:      medium,
		Hard:        hard,
		TotalSolved: easy + medium + hard,
	}, nil
}

// EnrichedSubmission is one recent submission with its difficulty resolved
// and the timestamp rendered in the tracking timezone.
type EnrichedSubmission struct {
	No         int    `json:"no"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Difficulty string `json:"difficulty"`
	Time       string `json:"time"`
}

// FetchRecentSubmissions returns the user's recent submission feed with a
// per-slug difficulty lookup. A failed lookup degrades that entry to
// "Unknown" rather than failing the request.
func (s *UserService) FetchRecentSubmissions(ctx context.Context, username string) ([]EnrichedSubmission, error) {
	profile, err := s.lc.FetchUserProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("recent submissions for %q: %w", username, err)
	}
	if !profile.Matched || len(profile.RecentSubmissions) == 0 {
		return nil, fmt.Errorf("no submissions found for %q: %w", username, common.ErrNotFound)
	}

	enriched := make([]EnrichedSubmission, 0, len(profile.RecentSubmissions))
	for i, sub := range profile.RecentSubmissions {
		difficulty := sub.Difficulty
		if difficulty == "" && sub.TitleSlug != "" {
			d, err := s.lc.FetchProblemDifficulty(ctx, sub.TitleSlug)
			if err != nil {
				log.Printf("WARN: difficulty lookup for %s failed: %v", sub.TitleSlug, err)
				difficulty = "Unknown"
			} else {
				difficulty = d
			}
		}
		enriched = append(enriched, EnrichedSubmission{
			No:         i + 1,
			Title:      sub.Title,
			Status:     sub.StatusDisplay,
			Difficulty: difficulty,
			Time:       time.Unix(sub.Timestamp, 0).In(s.loc).Format("2006-01-02 15:04:05"),
		})
	}
	return enriched, nil
}
