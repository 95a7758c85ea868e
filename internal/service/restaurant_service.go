package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/events"
	"github.com/foodiez/directory/internal/repository"
	"github.com/foodiez/directory/internal/search"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

// RestaurantService handles listing, search and creation of restaurants.
type RestaurantService struct {
	identities  *IdentityStore
	restaurants repository.RestaurantRepository
	dispatcher  events.Dispatcher
	limit       int
	logger      *zap.Logger
}

// RestaurantDependencies bundles collaborators for RestaurantService.
type RestaurantDependencies struct {
	Identities     *IdentityStore
	RestaurantRepo repository.RestaurantRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewRestaurantService builds the service.
func NewRestaurantService(cfg config.SearchConfig, deps RestaurantDependencies) *RestaurantService {
	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestaurantService{
		identities:  deps.Identities,
		restaurants: deps.RestaurantRepo,
		dispatcher:  deps.Dispatcher,
		limit:       limit,
		logger:      logger,
	}
}

// Create registers a restaurant owned by ownerID.
func (s *RestaurantService) Create(ctx context.Context, ownerID, name string) (*domain.Restaurant, error) {
	restaurant, err := s.identities.CreateRestaurant(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRestaurantCreated,
			SubjectID: restaurant.ID,
			Actor:     events.Actor{Type: domain.SubjectTypeUser, ID: ownerID},
			Timestamp: time.Now().UTC(),
			Payload:   events.RestaurantCreatedPayload{Name: restaurant.Name, Slug: restaurant.Slug},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return restaurant, nil
}

// Get resolves a restaurant by slug, falling back to its ID.
func (s *RestaurantService) Get(ctx context.Context, identifier string) (*domain.Restaurant, error) {
	restaurant, err := s.identities.FindRestaurant(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFound("restaurant", map[string]any{"identifier": identifier})
	}
	return restaurant, nil
}

// List returns the first page of restaurants.
func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	items, err := s.restaurants.List(ctx, s.limit)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return items, nil
}

// Search returns up to the configured limit of restaurants whose name
// contains keyword, ignoring case.
func (s *RestaurantService) Search(ctx context.Context, keyword string) ([]domain.Restaurant, error) {
	pred := search.BuildPredicate(keyword)
	if pred.MatchesAll() {
		return s.List(ctx)
	}
	items, err := s.restaurants.Search(ctx, pred, s.limit)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return items, nil
}
