package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leettrack/internal/common"
)

// Client wraps the calls this service needs from the LeetCode GraphQL API.
type Client interface {
	// FetchUserProfile returns the profile for a username: match flag,
	// recent submission feed, lifetime accepted counts and contest section.
	FetchUserProfile(ctx context.Context, username string) (*UserProfile, error)
	// FetchProblemDifficulty looks up a single problem's difficulty by slug.
	FetchProblemDifficulty(ctx context.Context, slug string) (string, error)
}

const userProfileQuery = `
query userProfile($username: String!) {
  matchedUser(username: $username) {
    username
    submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
  }
  recentSubmissionList(username: $username, limit: 50) {
    title
    titleSlug
    timestamp
    statusDisplay
  }
  userContestRanking(username: $username) {
    attendedContestsCount
    rating
    globalRanking
    totalParticipants
    topPercentage
    badge { name }
  }
}`

const questionDifficultyQuery = `
query questionDifficulty($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    difficulty
  }
}`

type graphQLClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client talking to the given GraphQL endpoint.
func NewClient(endpoint string) Client {
	return &graphQLClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (c *graphQLClient) post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("leetcode: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leetcode: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leetcode: %v: %w", err, common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leetcode: unexpected status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leetcode: decode response: %w", err)
	}
	return nil
}

func (c *graphQLClient) FetchUserProfile(ctx context.Context, username string) (*UserProfile, error) {
	var wire struct {
		Data struct {
			MatchedUser *struct {
				Username          string `json:"username"`
				SubmitStatsGlobal struct {
					AcSubmissionNum []AcceptedCount `json:"acSubmissionNum"`
				} `json:"submitStatsGlobal"`
			} `json:"matchedUser"`
			// Raw so an absent/null list can be told apart from an
			// empty one; registration depends on the difference.
			RecentSubmissionList json.RawMessage `json:"recentSubmissionList"`
			UserContestRanking   *struct {
				AttendedContestsCount int     `json:"attendedContestsCount"`
				Rating                float64 `json:"rating"`
				GlobalRanking         int     `json:"globalRanking"`
				TotalParticipants     int     `json:"totalParticipants"`
				TopPercentage         float64 `json:"topPercentage"`
				Badge                 *struct {
					Name string `json:"name"`
				} `json:"badge"`
			} `json:"userContestRanking"`
		} `json:"data"`
	}

	if err := c.post(ctx, userProfileQuery, map[string]any{"username": username}, &wire); err != nil {
		return nil, err
	}

	profile := &UserProfile{}
	if wire.Data.MatchedUser != nil {
		profile.Matched = true
		profile.Username = wire.Data.MatchedUser.Username
		profile.AcceptedByDifficulty = wire.Data.MatchedUser.SubmitStatsGlobal.AcSubmissionNum
	}

	if raw := wire.Data.RecentSubmissionList; len(raw) > 0 && string(raw) != "null" {
		var entries []struct {
			Title         string       `json:"title"`
			TitleSlug     string       `json:"titleSlug"`
			Timestamp     epochSeconds `json:"timestamp"`
			StatusDisplay string       `json:"statusDisplay"`
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("leetcode: decode recent submissions: %w", err)
		}
		profile.HasRecentSubmissions = true
		profile.RecentSubmissions = make([]RecentSubmission, 0, len(entries))
		for _, e := range entries {
			profile.RecentSubmissions = append(profile.RecentSubmissions, RecentSubmission{
				Title:         e.Title,
				TitleSlug:     e.TitleSlug,
				Timestamp:     int64(e.Timestamp),
				StatusDisplay: e.StatusDisplay,
			})
		}
	}

	if cr := wire.Data.UserContestRanking; cr != nil {
		ranking := &ContestRanking{
			AttendedContestsCount: cr.AttendedContestsCount,
			Rating:                cr.Rating,
			GlobalRanking:         cr.GlobalRanking,
			TotalParticipants:     cr.TotalParticipants,
			TopPercentage:         cr.TopPercentage,
		}
		if cr.Badge != nil {
			ranking.BadgeName = cr.Badge.Name
		}
		profile.ContestRanking = ranking
	}

	return profile, nil
}

func (c *graphQLClient) FetchProblemDifficulty(ctx context.Context, slug string) (string, error) {
	var wire struct {
		Data struct {
			Question *struct {
				Difficulty string `json:"difficulty"`
			} `json:"question"`
		} `json:"data"`
	}

	if err := c.post(ctx, questionDifficultyQuery, map[string]any{"titleSlug": slug}, &wire); err != nil {
		return "", err
	}
	if wire.Data.Question == nil {
		return "", fmt.Errorf("leetcode: no question for slug %q: %w", slug, common.ErrNotFound)
	}
	return wire.Data.Question.Difficulty, nil
}
