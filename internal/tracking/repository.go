package tracking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no page view exists for an id.
var ErrNotFound = errors.New("page view not found")

// Repository defines the database operations for page views.
type Repository interface {
	Create(ctx context.Context, view *PageView) error
	List(ctx context.Context) ([]PageView, error)
	Delete(ctx context.Context, id int64) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a page view.
func (r *PostgresRepository) Create(ctx context.Context, view *PageView) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO page_views (page, ip_address, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, view.Page, view.IPAddress, view.CreatedAt).Scan(&view.ID)
}

// List returns every page view, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]PageView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, page, ip_address, created_at
		FROM page_views ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []PageView
	for rows.Next() {
		var view PageView
		if err := rows.Scan(&view.ID, &view.Page, &view.IPAddress, &view.CreatedAt); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// Delete removes a page view.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM page_views WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
