package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/api/dto"
	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/service"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and profile endpoints for users.
type UsersHandler struct {
	registration *service.RegistrationService
	authn        *service.AuthenticationService
	profiles     *service.ProfileService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(registration *service.RegistrationService, authn *service.AuthenticationService, profiles *service.ProfileService) *UsersHandler {
	return &UsersHandler{registration: registration, authn: authn, profiles: profiles}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.registration.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	principal := &domain.Principal{Kind: domain.SubjectTypeUser, User: user}
	token, exp, err := h.authn.IssueToken(principal)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewPrincipalResponse(principal),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	return login(c, h.authn, domain.SubjectTypeUser)
}

// Profile handles GET /profile/:slug.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, err := h.profiles.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(user)})
}

// Me handles GET /me for any authenticated principal.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewPrincipalResponse(principal)})
}

func login(c *fiber.Ctx, authn *service.AuthenticationService, kind domain.SubjectType) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	principal, err := authn.Login(c.UserContext(), kind, req.Email, req.Password)
	if err != nil {
		return err
	}
	token, exp, err := authn.IssueToken(principal)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			kindKey(kind): dto.NewPrincipalResponse(principal),
			"auth":        dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func kindKey(kind domain.SubjectType) string {
	if kind == domain.SubjectTypeAdmin {
		return "admin"
	}
	return "user"
}
