package domain

import "time"

// AllowedUser is an e-mail address admitted by an administrator.
// Uniqueness is enforced by the database.
type AllowedUser struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is what the hosted auth service tells us about the caller.
type Session struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// ViewMode selects whose records are shown or synced.
type ViewMode string

const (
	ViewPersonal ViewMode = "personal"
	ViewTeam     ViewMode = "team"
)

func (m ViewMode) Valid() bool { return m == ViewPersonal || m == ViewTeam }

// ParseViewMode defaults to personal for empty input.
func ParseViewMode(s string) (ViewMode, bool) {
	if s == "" {
		return ViewPersonal, true
	}
	m := ViewMode(s)
	return m, m.Valid()
}
