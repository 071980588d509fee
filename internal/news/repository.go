package news

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no news item exists for an id.
var ErrNotFound = errors.New("news item not found")

// Repository defines the database operations for news items.
type Repository interface {
	// CreateIfNew inserts the item unless one with the same title exists.
	// Returns true when a row was inserted.
	CreateIfNew(ctx context.Context, item *Item) (bool, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// CreateIfNew inserts a news item, skipping duplicates by title.
func (r *PostgresRepository) CreateIfNew(ctx context.Context, item *Item) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO news (id, title, image_url, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (title) DO NOTHING
	`, item.ID, item.Title, item.ImageURL, item.Body, item.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// List returns every news item, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, image_url, body, created_at
		FROM news ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Title, &item.ImageURL,
			&item.Body, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes a news item.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
