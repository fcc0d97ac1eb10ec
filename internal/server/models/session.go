package models

import "time"

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ActiveAt reports whether the session is still usable at t.
// A session is expired from the instant t reaches ExpiresAt.
func (s *Session) ActiveAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}
