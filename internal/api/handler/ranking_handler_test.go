package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leettrack/internal/api/handler"
	"leettrack/internal/app/service"
	"leettrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummaryRepo struct {
	aggregateCalls int
	entries        []model.RankingEntry
}

func (s *stubSummaryRepo) Upsert(context.Context, *model.DailySummary) error {
	return nil
}

func (s *stubSummaryRepo) AggregateRange(context.Context, string, string) ([]model.RankingEntry, error) {
	s.aggregateCalls++
	return s.entries, nil
}

func TestRankingEndpointRejectsInvalidType(t *testing.T) {
	t.Parallel()

	summaries := &stubSummaryRepo{}
	loc := time.FixedZone("IST", 5*3600+1800)
	rankingService := service.NewRankingService(summaries, clockwork.NewRealClock(), loc)

	r := chi.NewRouter()
	handler.NewRankingHandler(rankingService, nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/ranking?type=foo", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Rejected before any query ran.
	assert.Zero(t, summaries.aggregateCalls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "invalid ranking type")
}

func TestRankingEndpointReturnsEntries(t *testing.T) {
	t.Parallel()

	summaries := &stubSummaryRepo{entries: []model.RankingEntry{
		{UserID: "u1", Username: "alice", TotalCount: 5, Easy: 2, Medium: 2, Hard: 1},
	}}
	loc := time.FixedZone("IST", 5*3600+1800)
	rankingService := service.NewRankingService(summaries, clockwork.NewRealClock(), loc)

	r := chi.NewRouter()
	handler.NewRankingHandler(rankingService, nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/ranking?type=total", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.RankingEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 5, entries[0].TotalCount)
}
