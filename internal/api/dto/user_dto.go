package dto

import (
	"time"

	"github.com/foodiez/directory/internal/domain"
)

// RegisterRequest payload for new users and admins. Code is only read on
// admin registration.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Code     string `json:"code" form:"code"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalResponse describes an authenticated user or admin.
type PrincipalResponse struct {
	ID    string             `json:"id"`
	Kind  domain.SubjectType `json:"kind"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Slug  string             `json:"slug,omitempty"`
}

// ProfileResponse is the public view of a user.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPrincipalResponse maps a principal for output.
func NewPrincipalResponse(p *domain.Principal) PrincipalResponse {
	resp := PrincipalResponse{ID: p.ID(), Kind: p.Kind, Name: p.Name()}
	switch {
	case p.User != nil:
		resp.Email = p.User.Email
		resp.Slug = p.User.Slug
	case p.Admin != nil:
		resp.Email = p.Admin.Email
	}
	return resp
}

// NewProfileResponse maps a user to its public profile.
func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Name: u.Name, Slug: u.Slug, CreatedAt: u.CreatedAt}
}
