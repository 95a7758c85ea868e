package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/search"
)

// RestaurantRepository manages restaurant persistence.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, limit int) ([]domain.Restaurant, error)
	Search(ctx context.Context, pred search.Predicate, limit int) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository builds the repository.
func NewRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &restaurantRepository{pool: pool}
}

const restaurantColumns = `id, name, slug, owner_id, created_at, updated_at`

func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        INSERT INTO restaurants (name, slug, owner_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Slug,
		restaurant.OwnerID,
	).Scan(&restaurant.ID, &restaurant.CreatedAt, &restaurant.UpdatedAt)
	return mapPgError(err)
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	// id::text keeps non-UUID identifiers a plain miss rather than a cast error.
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id::text=$1`, id)
}

func (r *restaurantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE slug=$1`, slug)
}

func (r *restaurantRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM restaurants WHERE slug=$1)`, slug).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *restaurantRepository) List(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	const query = `
        SELECT ` + restaurantColumns + `
        FROM restaurants ORDER BY created_at ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, mapPgError(err)
	}
	return scanRestaurants(rows)
}

// Search applies pred with Postgres' case-insensitive regex operator.
func (r *restaurantRepository) Search(ctx context.Context, pred search.Predicate, limit int) ([]domain.Restaurant, error) {
	const query = `
        SELECT ` + restaurantColumns + `
        FROM restaurants WHERE name ~* $1
        ORDER BY created_at ASC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, pred.Pattern, limit)
	if err != nil {
		return nil, mapPgError(err)
	}
	return scanRestaurants(rows)
}

func (r *restaurantRepository) getOne(ctx context.Context, query string, arg any) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Slug,
		&restaurant.OwnerID,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &restaurant, nil
}

func scanRestaurants(rows pgx.Rows) ([]domain.Restaurant, error) {
	defer rows.Close()

	var result []domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Slug,
			&restaurant.OwnerID,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, restaurant)
	}
	return result, rows.Err()
}
