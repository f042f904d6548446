package models

import "time"

// User is a stored account record. PasswordHash is the self-describing
// encoding produced by the password hasher; the plaintext is never kept.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
