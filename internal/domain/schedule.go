package domain

import "time"

// Schedule is a calendar entry owned by one user.
// Start is always before End.
type Schedule struct {
	ID        string
	UserID    string
	Title     string
	Start     time.Time
	End       time.Time
	Memo      string
	CreatedAt time.Time
}
