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

// AdminsHandler exposes code-gated admin registration and admin login.
type AdminsHandler struct {
	registration *service.RegistrationService
	authn        *service.AuthenticationService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(registration *service.RegistrationService, authn *service.AuthenticationService) *AdminsHandler {
	return &AdminsHandler{registration: registration, authn: authn}
}

// Register handles POST /admin/register.
func (h *AdminsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.registration.RegisterAdmin(c.UserContext(), req.Name, req.Email, req.Password, req.Code)
	if err != nil {
		return err
	}
	principal := &domain.Principal{Kind: domain.SubjectTypeAdmin, Admin: admin}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"admin": dto.NewPrincipalResponse(principal)},
	})
}

// Login handles POST /admin/login.
func (h *AdminsHandler) Login(c *fiber.Ctx) error {
	return login(c, h.authn, domain.SubjectTypeAdmin)
}

// Me handles GET /admin/me.
func (h *AdminsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.IsAdmin() {
		return apperrors.NewForbidden("admin required")
	}
	return c.JSON(fiber.Map{"data": dto.NewPrincipalResponse(principal)})
}
