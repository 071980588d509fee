package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no category exists for a slug.
var ErrNotFound = errors.New("category not found")

// Repository defines the database operations for categories.
type Repository interface {
	Create(ctx context.Context, category *Category) error
	Get(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, slug string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a category.
func (r *PostgresRepository) Create(ctx context.Context, category *Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (slug, name, parent_slug)
		VALUES ($1, $2, $3)
	`, category.Slug, category.Name, category.ParentSlug)
	return err
}

// Get fetches a category and its direct children.
func (r *PostgresRepository) Get(ctx context.Context, slug string) (*Category, error) {
	var category Category
	err := r.db.QueryRow(ctx, `
		SELECT slug, name, parent_slug FROM categories WHERE slug = $1
	`, slug).Scan(&category.Slug, &category.Name, &category.ParentSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT slug, name, parent_slug FROM categories WHERE parent_slug = $1 ORDER BY name
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var child Category
		if err := rows.Scan(&child.Slug, &child.Name, &child.ParentSlug); err != nil {
			return nil, err
		}
		category.Children = append(category.Children, child)
	}
	return &category, rows.Err()
}

// List returns every category ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slug, name, parent_slug FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Slug, &category.Name, &category.ParentSlug); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update renames a category or moves it in the tree.
func (r *PostgresRepository) Update(ctx context.Context, category *Category) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $1, parent_slug = $2 WHERE slug = $3
	`, category.Name, category.ParentSlug, category.Slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. Children are detached, not deleted.
func (r *PostgresRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
