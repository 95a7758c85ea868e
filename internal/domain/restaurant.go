package domain

import "time"

// Restaurant represents a directory listing.
type Restaurant struct {
	ID        string
	Name      string
	Slug      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identifier is the public path segment: the slug, or the record ID when no slug was resolved.
func (r *Restaurant) Identifier() string {
	if r.Slug != "" {
		return r.Slug
	}
	return r.ID
}
