package model

import "time"

// TotalStats mirrors the external API's lifetime accepted counters for one
// user. It is fully overwritten on every refresh, never incremented.
type TotalStats struct {
	UserID      string    `json:"user_id"`
	Easy        int       `json:"easy"`
	Medium      int       `json:"medium"`
	Hard        int       `json:"hard"`
	TotalSolved int       `json:"total_solved"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// TotalStandings is a TotalStats row joined with user identity for the
// all-time leaderboard.
type TotalStandings struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name,omitempty"`
	Easy        int       `json:"easy"`
	Medium      int       `json:"medium"`
	Hard        int       `json:"hard"`
	TotalSolved int       `json:"total_solved"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// ContestStats is a snapshot of one user's LeetCode contest ranking, fully
// overwritten on every refresh.
type ContestStats struct {
	UserID            string    `json:"user_id"`
	Attended          int       `json:"attended"`
	Rating            float64   `json:"rating"`
	GlobalRanking     int       `json:"global_ranking"`
	TotalParticipants int       `json:"total_participants"`
	TopPercentage     float64   `json:"top_percentage"`
	Badge             string    `json:"badge,omitempty"`
	RefreshedAt       time.Time `json:"refreshed_at"`
}

// ContestStandings is a ContestStats row joined with user identity.
type ContestStandings struct {
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	Name              string  `json:"name,omitempty"`
	Attended          int     `json:"attended"`
	Rating            float64 `json:"rating"`
	GlobalRanking     int     `json:"global_ranking"`
	TotalParticipants int     `json:"total_participants"`
	TopPercentage     float64 `json:"top_percentage"`
	Badge             string  `json:"badge,omitempty"`
}
