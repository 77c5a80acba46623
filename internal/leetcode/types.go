package leetcode

import (
	"bytes"
	"strconv"
)

// RecentSubmission is one entry of a user's recent submission feed. It is
// consumed during aggregation and never persisted.
type RecentSubmission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	StatusDisplay string `json:"statusDisplay"`
	Timestamp     int64  `json:"timestamp"` // epoch seconds
	Difficulty    string `json:"difficulty,omitempty"`
}

// AcceptedCount is a lifetime accepted-submission bucket, e.g.
// {Difficulty: "Easy", Count: 120}. The API also reports an "All" bucket.
type AcceptedCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// ContestRanking is the contest section of a user profile. Nil on profiles
// of users who never attended a contest.
type ContestRanking struct {
	AttendedContestsCount int     `json:"attendedContestsCount"`
	Rating                float64 `json:"rating"`
	GlobalRanking         int     `json:"globalRanking"`
	TotalParticipants     int     `json:"totalParticipants"`
	TopPercentage         float64 `json:"topPercentage"`
	BadgeName             string  `json:"badgeName,omitempty"`
}

// UserProfile is the decoded result of a profile fetch. Matched reports
// whether the username resolved to an account; HasRecentSubmissions reports
// whether the recent-submission list field was present at all (an empty but
// present list still counts as present).
type UserProfile struct {
	Matched              bool
	Username             string
	RecentSubmissions    []RecentSubmission
	HasRecentSubmissions bool
	AcceptedByDifficulty []AcceptedCount
	ContestRanking       *ContestRanking
}

// epochSeconds tolerates both quoted and bare numbers; the upstream API
// serializes submission timestamps as strings.
type epochSeconds int64

func (e *epochSeconds) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" || len(data) == 0 {
		*e = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*e = epochSeconds(v)
	return nil
}
