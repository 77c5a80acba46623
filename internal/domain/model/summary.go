package model

// DailySummary is one aggregate per (user, calendar date). Date is a
// YYYY-MM-DD label rendered in the configured tracking timezone. A summary
// is only ever written with TotalCount > 0.
type DailySummary struct {
	UserID     string `json:"user_id"`
	Date       string `json:"date"`
	TotalCount int    `json:"total_count"`
	Easy       int    `json:"easy"`
	Medium     int    `json:"medium"`
	Hard       int    `json:"hard"`
}

// RankingEntry is a row of the ranking query: summaries grouped by user over
// a date range, joined with the user's identity.
type RankingEntry struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name,omitempty"`
	TotalCount int    `json:"total_count"`
	Easy       int    `json:"easy"`
	Medium     int    `json:"medium"`
	Hard       int    `json:"hard"`
}
