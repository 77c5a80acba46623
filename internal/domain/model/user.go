package model

import (
	"time"
)

// TrackedUser is an identity admitted into the tracked set. The username is
// the immutable LeetCode handle it was validated against.
type TrackedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
