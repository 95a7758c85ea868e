package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/api/dto"
	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/service"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// RestaurantsHandler serves restaurant listing, lookup, search and creation.
type RestaurantsHandler struct {
	service *service.RestaurantService
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurants *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{service: restaurants}
}

// List handles GET / and GET /restaurants.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantList(items)})
}

// Get handles GET /restaurants/:identifier.
func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	restaurant, err := h.service.Get(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantResponse(restaurant)})
}

// Create handles POST /restaurants.
func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.service.Create(c.UserContext(), principal.User.ID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRestaurantResponse(restaurant)})
}

// SearchQuery handles GET /search?keyword=.
func (h *RestaurantsHandler) SearchQuery(c *fiber.Ctx) error {
	return h.search(c, c.Query("keyword"))
}

// SearchForm handles POST /search.
func (h *RestaurantsHandler) SearchForm(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return h.search(c, req.Keyword)
}

func (h *RestaurantsHandler) search(c *fiber.Ctx, keyword string) error {
	items, err := h.service.Search(c.UserContext(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantList(items), "keyword": keyword})
}
