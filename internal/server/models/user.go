package models

import "time"

// User is an identity record. PasswordHash is the opaque encoding produced by
// an auth.Hasher and embeds everything needed to verify it.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
