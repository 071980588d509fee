package promo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no promo exists for an id.
var ErrNotFound = errors.New("promo not found")

// Repository defines the database operations for promos.
type Repository interface {
	Create(ctx context.Context, promo *Promo) error
	List(ctx context.Context) ([]Promo, error)
	Update(ctx context.Context, promoID, imageURL, body string) error
	Delete(ctx context.Context, promoID string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a promo.
func (r *PostgresRepository) Create(ctx context.Context, promo *Promo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promos (id, user_id, image_url, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, promo.ID, promo.UserID, promo.ImageURL, promo.Body, promo.CreatedAt)
	return err
}

// List returns every promo, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Promo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, image_url, body, created_at
		FROM promos ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []Promo
	for rows.Next() {
		var promo Promo
		if err := rows.Scan(&promo.ID, &promo.UserID, &promo.ImageURL,
			&promo.Body, &promo.CreatedAt); err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}

// Update replaces a promo's image and body.
func (r *PostgresRepository) Update(ctx context.Context, promoID, imageURL, body string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE promos SET image_url = $1, body = $2 WHERE id = $3
	`, imageURL, body, promoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a promo.
func (r *PostgresRepository) Delete(ctx context.Context, promoID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promos WHERE id = $1`, promoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
