package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foodiez/directory/internal/domain"
)

// ReviewRepository manages reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListWithAuthors(ctx context.Context, limit int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (title, description, author_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		review.Title,
		review.Description,
		review.AuthorID,
	).Scan(&review.ID, &review.CreatedAt)
	return mapPgError(err)
}

func (r *reviewRepository) ListWithAuthors(ctx context.Context, limit int) ([]domain.Review, error) {
	const query = `
        SELECT r.id, r.title, r.description, r.author_id, r.created_at,
               u.id, u.name, u.slug, u.created_at
        FROM reviews r JOIN users u ON u.id = r.author_id
        ORDER BY r.created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		var author domain.User
		if err := rows.Scan(
			&review.ID,
			&review.Title,
			&review.Description,
			&review.AuthorID,
			&review.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Slug,
			&author.CreatedAt,
		); err != nil {
			return nil, err
		}
		review.Author = &author
		result = append(result, review)
	}
	return result, rows.Err()
}
