package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/api/dto"
	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/service"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// ReviewsHandler serves review posting and listing.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviews}
}

// Create handles POST /reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.Post(c.UserContext(), principal.User.ID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// List handles GET /reviews.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
