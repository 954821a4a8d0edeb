package models

import "time"

// User represents a registered account. Rows are create-once, read-many:
// no profile edits or deletions happen in this service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
}
