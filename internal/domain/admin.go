package domain

import "time"

// Admin models an operator account. Admins have no public profile, hence no slug.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
