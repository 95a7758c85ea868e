package domain

import "time"

// User is a registered visitor who can own restaurants and post reviews.
// Slug is derived from Name at creation and never changes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Slug         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
