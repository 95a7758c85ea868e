package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/domain"
)

// RequireUser ensures a regular user is authenticated.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Kind != domain.SubjectTypeUser || principal.User == nil {
			return fiber.NewError(http.StatusForbidden, "user required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures an admin is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin() {
			return fiber.NewError(http.StatusForbidden, "admin required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated (user or admin).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
