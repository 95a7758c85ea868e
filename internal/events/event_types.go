package events

import (
	"time"

	"github.com/foodiez/directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventAdminRegistered   EventType = "admin_registered"
	EventRestaurantCreated EventType = "restaurant_created"
	EventReviewPosted      EventType = "review_posted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type domain.SubjectType `json:"type"`
	ID   string             `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RegisteredPayload accompanies user and admin registration. Email is
// included for the welcome notification; credentials never are.
type RegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Slug  string `json:"slug,omitempty"`
}

// RestaurantCreatedPayload payload.
type RestaurantCreatedPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ReviewPostedPayload payload.
type ReviewPostedPayload struct {
	Title string `json:"title"`
}
