package service_test

import (
	"context"
	"sync"

	"leettrack/internal/common"
	"leettrack/internal/domain/model"
	"leettrack/internal/leetcode"
)

type fakeUserRepo struct {
	mu         sync.Mutex
	users      []model.TrackedUser
	created    []*model.TrackedUser
	findAllErr error
	createErr  error
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.TrackedUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.TrackedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.TrackedUser, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return f.users, nil
}

type fakeSummaryRepo struct {
	mu        sync.Mutex
	upserts   []model.DailySummary
	upsertErr error

	aggregateCalls int
	lastFromDate   string
	lastToDate     string
	entries        []model.RankingEntry
}

func (f *fakeSummaryRepo) Upsert(_ context.Context, summary *model.DailySummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, *summary)
	return nil
}

func (f *fakeSummaryRepo) AggregateRange(_ context.Context, fromDate, toDate string) ([]model.RankingEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregateCalls++
	f.lastFromDate = fromDate
	f.lastToDate = toDate
	return f.entries, nil
}

type fakeTotalStatsRepo struct {
	upserts   []model.TotalStats
	upsertErr error
	standings []model.TotalStandings
}

func (f *fakeTotalStatsRepo) Upsert(_ context.Context, stats *model.TotalStats) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, *stats)
	return nil
}

func (f *fakeTotalStatsRepo) Leaderboard(_ context.Context) ([]model.TotalStandings, error) {
	return f.standings, nil
}

type fakeContestStatsRepo struct {
	upserts   []model.ContestStats
	standings []model.ContestStandings
}

func (f *fakeContestStatsRepo) Upsert(_ context.Context, stats *model.ContestStats) error {
	f.upserts = append(f.upserts, *stats)
	return nil
}

func (f *fakeContestStatsRepo) Leaderboard(_ context.Context) ([]model.ContestStandings, error) {
	return f.standings, nil
}

type fakeLeetCodeClient struct {
	mu              sync.Mutex
	profiles        map[string]*leetcode.UserProfile
	profileErrs     map[string]error
	difficulties    map[string]string
	difficultyErrs  map[string]error
	difficultyCalls []string
}

func (f *fakeLeetCodeClient) FetchUserProfile(_ context.Context, username string) (*leetcode.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.profileErrs[username]; ok {
		return nil, err
	}
	if profile, ok := f.profiles[username]; ok {
		return profile, nil
	}
	return &leetcode.UserProfile{}, nil
}

func (f *fakeLeetCodeClient) FetchProblemDifficulty(_ context.Context, slug string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.difficultyCalls = append(f.difficultyCalls, slug)
	if err, ok := f.difficultyErrs[slug]; ok {
		return "", err
	}
	if d, ok := f.difficulties[slug]; ok {
		return d, nil
	}
	return "", common.ErrNotFound
}
