package leetcode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leettrack/internal/common"
	"leettrack/internal/leetcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveGraphQL(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Query)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchUserProfileDecodesFullProfile(t *testing.T) {
	t.Parallel()

	server := serveGraphQL(t, `{
		"data": {
			"matchedUser": {
				"username": "alice",
				"submitStatsGlobal": {
					"acSubmissionNum": [
						{"difficulty": "All", "count": 42},
						{"difficulty": "Easy", "count": 20},
						{"difficulty": "Medium", "count": 15},
						{"difficulty": "Hard", "count": 7}
					]
				}
			},
			"recentSubmissionList": [
				{"title": "Two Sum", "titleSlug": "two-sum", "timestamp": "1767954600", "statusDisplay": "Accepted"}
			],
			"userContestRanking": {
				"attendedContestsCount": 9,
				"rating": 1842.5,
				"globalRanking": 12345,
				"totalParticipants": 500000,
				"topPercentage": 2.5,
				"badge": {"name": "Knight"}
			}
		}
	}`)

	client := leetcode.NewClient(server.URL)
	profile, err := client.FetchUserProfile(context.Background(), "alice")
	require.NoError(t, err)

	assert.True(t, profile.Matched)
	assert.Equal(t, "alice", profile.Username)
	require.Len(t, profile.AcceptedByDifficulty, 4)

	require.True(t, profile.HasRecentSubmissions)
	require.Len(t, profile.RecentSubmissions, 1)
	sub := profile.RecentSubmissions[0]
	assert.Equal(t, "two-sum", sub.TitleSlug)
	// Upstream serializes timestamps as strings.
	assert.Equal(t, int64(1767954600), sub.Timestamp)
	assert.Equal(t, "Accepted", sub.StatusDisplay)

	require.NotNil(t, profile.ContestRanking)
	assert.Equal(t, "Knight", profile.ContestRanking.BadgeName)
	assert.InDelta(t, 1842.5, profile.ContestRanking.Rating, 0.001)
}

func TestFetchUserProfileUnmatchedUser(t *testing.T) {
	t.Parallel()

	server := serveGraphQL(t, `{
		"data": {
			"matchedUser": null,
			"recentSubmissionList": null,
			"userContestRanking": null
		}
	}`)

	client := leetcode.NewClient(server.URL)
	profile, err := client.FetchUserProfile(context.Background(), "ghost")
	require.NoError(t, err)

	assert.False(t, profile.Matched)
	assert.False(t, profile.HasRecentSubmissions)
	assert.Nil(t, profile.ContestRanking)
}

func TestFetchUserProfileEmptyListIsPresent(t *testing.T) {
	t.Parallel()

	server := serveGraphQL(t, `{
		"data": {
			"matchedUser": {"username": "newbie", "submitStatsGlobal": {"acSubmissionNum": []}},
			"recentSubmissionList": []
		}
	}`)

	client := leetcode.NewClient(server.URL)
	profile, err := client.FetchUserProfile(context.Background(), "newbie")
	require.NoError(t, err)

	assert.True(t, profile.Matched)
	// Present-but-empty list differs from an absent one; registration
	// accepts the former and rejects the latter.
	assert.True(t, profile.HasRecentSubmissions)
	assert.Empty(t, profile.RecentSubmissions)
}

func TestFetchUserProfileUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := leetcode.NewClient(server.URL)
	_, err := client.FetchUserProfile(context.Background(), "alice")
	require.ErrorIs(t, err, common.ErrUpstream)
}

func TestFetchProblemDifficulty(t *testing.T) {
	t.Parallel()

	server := serveGraphQL(t, `{"data": {"question": {"difficulty": "Medium"}}}`)

	client := leetcode.NewClient(server.URL)
	difficulty, err := client.FetchProblemDifficulty(context.Background(), "3sum")
	require.NoError(t, err)
	assert.Equal(t, "Medium", difficulty)
}

func TestFetchProblemDifficultyUnknownSlug(t *testing.T) {
	t.Parallel()

	server := serveGraphQL(t, `{"data": {"question": null}}`)

	client := leetcode.NewClient(server.URL)
	_, err := client.FetchProblemDifficulty(context.Background(), "no-such-problem")
	require.ErrorIs(t, err, common.ErrNotFound)
}
