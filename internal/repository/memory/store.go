// Package memory provides in-process repositories that enforce the same
// unique constraints as the Postgres schema. They back local development
// when no DSN is configured and serve as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/repository"
	"github.com/foodiez/directory/internal/search"
)

// Store holds every collection behind one lock.
type Store struct {
	mu          sync.RWMutex
	users       map[string]domain.User
	admins      map[string]domain.Admin
	restaurants map[string]domain.Restaurant
	reviews     []domain.Review
	now         func() time.Time

	writes int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]domain.User),
		admins:      make(map[string]domain.Admin),
		restaurants: make(map[string]domain.Restaurant),
		now:         time.Now,
	}
}

// Writes reports how many inserts succeeded.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Admins returns the admin repository view.
func (s *Store) Admins() repository.AdminRepository { return adminRepo{s} }

// Restaurants returns the restaurant repository view.
func (s *Store) Restaurants() repository.RestaurantRepository { return restaurantRepo{s} }

// Reviews returns the review repository view.
func (s *Store) Reviews() repository.ReviewRepository { return reviewRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	for _, u := range s.users {
		if u.Slug == user.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	s.writes++
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r userRepo) GetBySlug(ctx context.Context, slug string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Slug == slug })
}

func (r userRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	switch err {
	case nil:
		return true, nil
	case repository.ErrNotFound:
		return false, nil
	}
	return false, err
}

func (r userRepo) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

type adminRepo struct{ s *Store }

func (r adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	admin.ID = uuid.NewString()
	admin.CreatedAt = s.now()
	admin.UpdatedAt = admin.CreatedAt
	s.admins[admin.ID] = *admin
	s.writes++
	return nil
}

func (r adminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.find(ctx, func(a domain.Admin) bool { return a.ID == id })
}

func (r adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.find(ctx, func(a domain.Admin) bool { return a.Email == email })
}

func (r adminRepo) find(ctx context.Context, match func(domain.Admin) bool) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.admins {
		if match(a) {
			found := a
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

type restaurantRepo struct{ s *Store }

func (r restaurantRepo) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[restaurant.OwnerID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range s.restaurants {
		if existing.Slug == restaurant.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	restaurant.ID = uuid.NewString()
	restaurant.CreatedAt = s.now()
	restaurant.UpdatedAt = restaurant.CreatedAt
	s.restaurants[restaurant.ID] = *restaurant
	s.writes++
	return nil
}

func (r restaurantRepo) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return r.find(ctx, func(x domain.Restaurant) bool { return x.ID == id })
}

func (r restaurantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return r.find(ctx, func(x domain.Restaurant) bool { return x.Slug == slug })
}

func (r restaurantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	switch err {
	case nil:
		return true, nil
	case repository.ErrNotFound:
		return false, nil
	}
	return false, err
}

func (r restaurantRepo) List(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	return r.filter(ctx, func(domain.Restaurant) bool { return true }, limit)
}

func (r restaurantRepo) Search(ctx context.Context, pred search.Predicate, limit int) ([]domain.Restaurant, error) {
	return r.filter(ctx, func(x domain.Restaurant) bool { return pred.Matches(x.Name) }, limit)
}

func (r restaurantRepo) find(ctx context.Context, match func(domain.Restaurant) bool) (*domain.Restaurant, error) {
	items, err := r.filter(ctx, match, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (r restaurantRepo) filter(ctx context.Context, match func(domain.Restaurant) bool, limit int) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	all := make([]domain.Restaurant, 0, len(r.s.restaurants))
	for _, x := range r.s.restaurants {
		all = append(all, x)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Slug < all[j].Slug
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	var result []domain.Restaurant
	for _, x := range all {
		if limit > 0 && len(result) >= limit {
			break
		}
		if match(x) {
			result = append(result, x)
		}
	}
	return result, nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[review.AuthorID]; !ok {
		return repository.ErrNotFound
	}
	review.ID = uuid.NewString()
	review.CreatedAt = s.now()
	stored := *review
	stored.Author = nil
	s.reviews = append(s.reviews, stored)
	s.writes++
	return nil
}

func (r reviewRepo) ListWithAuthors(ctx context.Context, limit int) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []domain.Review
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		review := r.s.reviews[i]
		if author, ok := r.s.users[review.AuthorID]; ok {
			author.PasswordHash = ""
			review.Author = &author
		}
		result = append(result, review)
	}
	return result, nil
}
