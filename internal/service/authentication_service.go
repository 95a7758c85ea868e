package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/domain"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// AuthenticationService verifies credentials for users and admins.
type AuthenticationService struct {
	identities *IdentityStore
	vault      CredentialVault
	tokens     *auth.TokenManager
	// decoyHash is verified against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	decoyHash string
	logger    *zap.Logger
}

// AuthenticationDependencies bundles collaborators for AuthenticationService.
type AuthenticationDependencies struct {
	Identities *IdentityStore
	Vault      CredentialVault
	Tokens     *auth.TokenManager
	Logger     *zap.Logger
}

// NewAuthenticationService builds the service.
func NewAuthenticationService(deps AuthenticationDependencies) (*AuthenticationService, error) {
	decoy, err := deps.Vault.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthenticationService{
		identities: deps.Identities,
		vault:      deps.Vault,
		tokens:     deps.Tokens,
		decoyHash:  decoy,
		logger:     logger,
	}, nil
}

// Login returns the principal of the given kind whose email and password match.
// Unknown emails fail with ErrEmailNotFound, wrong passwords with
// ErrInvalidPassword; both render identically to clients.
func (s *AuthenticationService) Login(ctx context.Context, kind domain.SubjectType, email, password string) (*domain.Principal, error) {
	if !kind.Valid() {
		return nil, apperrors.NewMalformedInput("kind")
	}
	if normalizeEmail(email) == "" {
		return nil, apperrors.NewMalformedInput("email")
	}

	principal, err := s.identities.FindByEmail(ctx, kind, email)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		s.vault.Verify(password, s.decoyHash)
		s.logger.Debug("login failed", zap.String("kind", string(kind)), zap.String("reason", "email_not_found"))
		return nil, apperrors.ErrEmailNotFound
	}
	if !s.vault.Verify(password, principal.PasswordHash()) {
		s.logger.Debug("login failed", zap.String("kind", string(kind)), zap.String("reason", "invalid_password"))
		return nil, apperrors.ErrInvalidPassword
	}
	return principal, nil
}

// IssueToken signs an access token for principal.
func (s *AuthenticationService) IssueToken(principal *domain.Principal) (string, time.Time, error) {
	return s.tokens.GenerateToken(principal.ID(), principal.Kind)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthenticationService) TokenManager() *auth.TokenManager {
	return s.tokens
}
