package dto

import (
	"time"

	"github.com/foodiez/directory/internal/domain"
)

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// ReviewResponse representation.
type ReviewResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Author      *ProfileResponse `json:"author,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewReviewResponse maps a review for output.
func NewReviewResponse(r *domain.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
	if r.Author != nil {
		author := NewProfileResponse(r.Author)
		resp.Author = &author
	}
	return resp
}
