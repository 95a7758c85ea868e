package domain

import "time"

// Review is a user's write-up. Author is populated on listing.
type Review struct {
	ID          string
	Title       string
	Description string
	AuthorID    string
	Author      *User
	CreatedAt   time.Time
}
