package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/repository"
	"github.com/foodiez/directory/internal/slug"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

const defaultMaxSlugAttempts = 10

// CredentialVault hashes secrets and verifies them against stored hashes.
// Verify must report false, never fail, on malformed hashes.
type CredentialVault interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// IdentityStore owns creation and lookup of users, admins and restaurants.
// Uniqueness is enforced by the repositories; the existence checks made here
// only avoid doomed inserts.
type IdentityStore struct {
	users           repository.UserRepository
	admins          repository.AdminRepository
	restaurants     repository.RestaurantRepository
	maxSlugAttempts int
	logger          *zap.Logger
}

// IdentityDependencies encapsulates repo requirements for the identity store.
type IdentityDependencies struct {
	UserRepo       repository.UserRepository
	AdminRepo      repository.AdminRepository
	RestaurantRepo repository.RestaurantRepository
	Logger         *zap.Logger
}

// NewIdentityStore builds the store.
func NewIdentityStore(cfg config.IdentityConfig, deps IdentityDependencies) *IdentityStore {
	attempts := cfg.MaxSlugAttempts
	if attempts <= 0 {
		attempts = defaultMaxSlugAttempts
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityStore{
		users:           deps.UserRepo,
		admins:          deps.AdminRepo,
		restaurants:     deps.RestaurantRepo,
		maxSlugAttempts: attempts,
		logger:          logger,
	}
}

// CreateUser persists a user under the first free slug derived from name.
func (s *IdentityStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := requireFields(map[string]string{"name": name, "email": email, "password": passwordHash}); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeUnavailable(err)
	}

	var created *domain.User
	err := s.allocateSlug(ctx, slug.Derive(name), s.users.SlugExists, func(candidate string) error {
		user := &domain.User{
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			Slug:         candidate,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateAdmin persists an admin. Admins carry no slug.
func (s *IdentityStore) CreateAdmin(ctx context.Context, name, email, passwordHash string) (*domain.Admin, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := requireFields(map[string]string{"name": name, "email": email, "password": passwordHash}); err != nil {
		return nil, err
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeUnavailable(err)
	}

	admin := &domain.Admin{Name: name, Email: email, PasswordHash: passwordHash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, storeUnavailable(err)
	}
	return admin, nil
}

// CreateRestaurant persists a restaurant owned by ownerID under a unique slug.
func (s *IdentityStore) CreateRestaurant(ctx context.Context, name, ownerID string) (*domain.Restaurant, error) {
	name = strings.TrimSpace(name)
	if err := requireFields(map[string]string{"name": name, "owner": ownerID}); err != nil {
		return nil, err
	}

	var created *domain.Restaurant
	err := s.allocateSlug(ctx, slug.Derive(name), s.restaurants.SlugExists, func(candidate string) error {
		restaurant := &domain.Restaurant{Name: name, Slug: candidate, OwnerID: ownerID}
		if err := s.restaurants.Create(ctx, restaurant); err != nil {
			return err
		}
		created = restaurant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindUserBySlug returns nil, nil when no user has the slug.
func (s *IdentityStore) FindUserBySlug(ctx context.Context, userSlug string) (*domain.User, error) {
	user, err := s.users.GetBySlug(ctx, userSlug)
	if err != nil {
		return nil, absentOrUnavailable(err)
	}
	return user, nil
}

// FindByEmail looks up a principal of the given kind. It returns nil, nil when absent.
func (s *IdentityStore) FindByEmail(ctx context.Context, kind domain.SubjectType, email string) (*domain.Principal, error) {
	email = normalizeEmail(email)
	switch kind {
	case domain.SubjectTypeUser:
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, absentOrUnavailable(err)
		}
		return &domain.Principal{Kind: kind, User: user}, nil
	case domain.SubjectTypeAdmin:
		admin, err := s.admins.GetByEmail(ctx, email)
		if err != nil {
			return nil, absentOrUnavailable(err)
		}
		return &domain.Principal{Kind: kind, Admin: admin}, nil
	default:
		return nil, apperrors.NewMalformedInput("kind")
	}
}

// FindByID resolves a principal from a token subject. It returns nil, nil when absent.
func (s *IdentityStore) FindByID(ctx context.Context, kind domain.SubjectType, id string) (*domain.Principal, error) {
	switch kind {
	case domain.SubjectTypeUser:
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, absentOrUnavailable(err)
		}
		return &domain.Principal{Kind: kind, User: user}, nil
	case domain.SubjectTypeAdmin:
		admin, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return nil, absentOrUnavailable(err)
		}
		return &domain.Principal{Kind: kind, Admin: admin}, nil
	default:
		return nil, apperrors.NewMalformedInput("kind")
	}
}

// FindRestaurant resolves identifier as a slug first, then as a record ID.
func (s *IdentityStore) FindRestaurant(ctx context.Context, identifier string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetBySlug(ctx, identifier)
	if err == nil {
		return restaurant, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeUnavailable(err)
	}
	restaurant, err = s.restaurants.GetByID(ctx, identifier)
	if err != nil {
		return nil, absentOrUnavailable(err)
	}
	return restaurant, nil
}

// allocateSlug tries base, base-2, base-3... until insert succeeds. A unique
// violation on the slug reported by insert moves on to the next candidate.
func (s *IdentityStore) allocateSlug(
	ctx context.Context,
	base string,
	exists func(context.Context, string) (bool, error),
	insert func(candidate string) error,
) error {
	for attempt := 1; attempt <= s.maxSlugAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		taken, err := exists(ctx, candidate)
		if err != nil {
			return storeUnavailable(err)
		}
		if taken {
			continue
		}

		err = insert(candidate)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrDuplicateSlug):
			s.logger.Debug("slug claimed concurrently", zap.String("slug", candidate))
			continue
		case errors.Is(err, repository.ErrDuplicateEmail):
			return apperrors.ErrDuplicateEmail
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFound("owner", nil)
		default:
			return storeUnavailable(err)
		}
	}

	s.logger.Warn("slug candidates exhausted",
		zap.String("base", base),
		zap.Int("attempts", s.maxSlugAttempts))
	return apperrors.ErrSlugExhausted
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func requireFields(fields map[string]string) error {
	for _, name := range []string{"name", "email", "password", "owner"} {
		if value, ok := fields[name]; ok && value == "" {
			return apperrors.NewMalformedInput(name)
		}
	}
	return nil
}

func absentOrUnavailable(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return storeUnavailable(err)
}

func storeUnavailable(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.ErrStoreUnavailable.Wrap(err)
}
