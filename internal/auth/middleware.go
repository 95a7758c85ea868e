package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/domain"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// PrincipalFinder resolves a token subject into a principal. It returns
// nil, nil when the subject no longer exists.
type PrincipalFinder interface {
	FindByID(ctx context.Context, kind domain.SubjectType, id string) (*domain.Principal, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	principals PrincipalFinder
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, principals PrincipalFinder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, principals: principals}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if !claims.Kind.Valid() || claims.Subject == "" {
		return apperrors.NewUnauthorized("unknown subject")
	}

	principal, err := m.principals.FindByID(c.UserContext(), claims.Kind, claims.Subject)
	if err != nil {
		return err
	}
	if principal == nil {
		return apperrors.NewUnauthorized("principal not found")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
