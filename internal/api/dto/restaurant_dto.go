package dto

import (
	"time"

	"github.com/foodiez/directory/internal/domain"
)

// CreateRestaurantRequest payload.
type CreateRestaurantRequest struct {
	Name string `json:"name" form:"name"`
}

// SearchRequest payload for POST /search.
type SearchRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
}

// RestaurantResponse representation.
type RestaurantResponse struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRestaurantResponse maps a restaurant for output.
func NewRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:         r.ID,
		Identifier: r.Identifier(),
		Name:       r.Name,
		Slug:       r.Slug,
		OwnerID:    r.OwnerID,
		CreatedAt:  r.CreatedAt,
	}
}

// NewRestaurantList maps a slice, never returning nil.
func NewRestaurantList(items []domain.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, 0, len(items))
	for i := range items {
		out = append(out, NewRestaurantResponse(&items[i]))
	}
	return out
}
