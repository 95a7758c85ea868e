package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/domain"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// ProfileCache is a read-through cache for public profiles.
type ProfileCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// cachedProfile is the public subset of a user kept in the cache.
type cachedProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileService serves /profile/:slug lookups.
type ProfileService struct {
	identities *IdentityStore
	cache      ProfileCache
	logger     *zap.Logger
}

// NewProfileService builds the service. cache may be nil.
func NewProfileService(identities *IdentityStore, cache ProfileCache, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{identities: identities, cache: cache, logger: logger}
}

// GetBySlug returns the public view of a user. The returned user never
// carries an email or password hash.
func (s *ProfileService) GetBySlug(ctx context.Context, userSlug string) (*domain.User, error) {
	if s.cache != nil {
		var cached cachedProfile
		hit, err := s.cache.Get(ctx, userSlug, &cached)
		if err != nil {
			s.logger.Warn("profile cache read failed", zap.String("slug", userSlug), zap.Error(err))
		} else if hit {
			return &domain.User{ID: cached.ID, Name: cached.Name, Slug: cached.Slug, CreatedAt: cached.CreatedAt}, nil
		}
	}

	user, err := s.identities.FindUserBySlug(ctx, userSlug)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"slug": userSlug})
	}

	profile := cachedProfile{ID: user.ID, Name: user.Name, Slug: user.Slug, CreatedAt: user.CreatedAt}
	if s.cache != nil {
		if err := s.cache.Set(ctx, userSlug, profile); err != nil {
			s.logger.Warn("profile cache write failed", zap.String("slug", userSlug), zap.Error(err))
		}
	}
	return &domain.User{ID: profile.ID, Name: profile.Name, Slug: profile.Slug, CreatedAt: profile.CreatedAt}, nil
}
