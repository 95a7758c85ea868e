package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/events"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// RegistrationService creates users and gate-checked admins.
type RegistrationService struct {
	identities      *IdentityStore
	vault           CredentialVault
	adminCodeDigest [sha256.Size]byte
	dispatcher      events.Dispatcher
	logger          *zap.Logger
}

// RegistrationDependencies bundles collaborators for RegistrationService.
type RegistrationDependencies struct {
	Identities *IdentityStore
	Vault      CredentialVault
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewRegistrationService builds the service. Only a digest of adminCode is kept.
func NewRegistrationService(adminCode string, deps RegistrationDependencies) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		identities:      deps.Identities,
		vault:           deps.Vault,
		adminCodeDigest: sha256.Sum256([]byte(adminCode)),
		dispatcher:      deps.Dispatcher,
		logger:          logger,
	}
}

// RegisterUser hashes the password and persists a new user.
func (s *RegistrationService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if password == "" {
		return nil, apperrors.NewMalformedInput("password")
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.identities.CreateUser(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Actor:     events.Actor{Type: domain.SubjectTypeUser, ID: user.ID},
		Payload:   events.RegisteredPayload{Name: user.Name, Email: user.Email, Slug: user.Slug},
	})
	return user, nil
}

// RegisterAdmin rejects a wrong code before any hashing or persistence.
func (s *RegistrationService) RegisterAdmin(ctx context.Context, name, email, password, code string) (*domain.Admin, error) {
	if !s.adminCodeMatches(code) {
		s.logger.Info("admin registration rejected", zap.String("reason", "invalid_code"))
		return nil, apperrors.ErrInvalidAdminCode
	}
	if password == "" {
		return nil, apperrors.NewMalformedInput("password")
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin, err := s.identities.CreateAdmin(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventAdminRegistered,
		SubjectID: admin.ID,
		Actor:     events.Actor{Type: domain.SubjectTypeAdmin, ID: admin.ID},
		Payload:   events.RegisteredPayload{Name: admin.Name, Email: admin.Email},
	})
	return admin, nil
}

// hashPassword treats a secret the vault refuses as bad input.
func (s *RegistrationService) hashPassword(password string) (string, error) {
	hash, err := s.vault.Hash(password)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, auth.ErrSecretTooLong):
		return "", apperrors.NewMalformedField("password", "password must be at most 72 bytes")
	default:
		return "", apperrors.NewInternalError(err)
	}
}

// adminCodeMatches compares fixed-size digests so neither content nor
// length of the supplied code affects timing.
func (s *RegistrationService) adminCodeMatches(code string) bool {
	supplied := sha256.Sum256([]byte(code))
	return subtle.ConstantTimeCompare(supplied[:], s.adminCodeDigest[:]) == 1
}

func (s *RegistrationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
