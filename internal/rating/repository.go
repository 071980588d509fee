package rating

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no review exists for an id.
var ErrNotFound = errors.New("review not found")

// ErrDuplicate is returned when a user already reviewed the product.
var ErrDuplicate = errors.New("review already exists for this product")

// Repository defines the database operations for reviews.
type Repository interface {
	Create(ctx context.Context, review *Review) error
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	Update(ctx context.Context, reviewID string, mark int, body string) error
	Delete(ctx context.Context, reviewID string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a review. The unique constraint on (user_id, product_id)
// turns a second review from the same user into ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, review *Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, user_id, product_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.ID, review.UserID, review.ProductID, review.Mark, review.Body, review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListByProduct returns the reviews for a product, newest first.
func (r *PostgresRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, product_id, rating, body, created_at
		FROM reviews WHERE product_id = $1 ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		if err := rows.Scan(&review.ID, &review.UserID, &review.ProductID,
			&review.Mark, &review.Body, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// Update replaces the mark and body of a review.
func (r *PostgresRepository) Update(ctx context.Context, reviewID string, mark int, body string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews SET rating = $1, body = $2 WHERE id = $3
	`, mark, body, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review.
func (r *PostgresRepository) Delete(ctx context.Context, reviewID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
