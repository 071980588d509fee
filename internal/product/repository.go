package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no product exists for an id.
var ErrNotFound = errors.New("product not found")

// Repository defines the database operations for the catalog.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, categorySlug string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	SetLike(ctx context.Context, userID, productID string, liked bool) error
	SetFavorite(ctx context.Context, userID, productID string, favorite bool) error
	ListFavorites(ctx context.Context, userID string) ([]FavoriteItem, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, owner_id, title, description, category_slug,
	price, quantity, preview_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CategorySlug,
		&p.Price, &p.Quantity, &p.PreviewURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a product.
func (r *PostgresRepository) Create(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, owner_id, title, description, category_slug,
			price, quantity, preview_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, product.ID, product.OwnerID, product.Title, product.Description,
		product.CategorySlug, product.Price, product.Quantity, product.PreviewURL,
		product.CreatedAt, product.UpdatedAt)
	return err
}

// Get fetches a product by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// List returns products, optionally narrowed to one category.
func (r *PostgresRepository) List(ctx context.Context, categorySlug string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	args := []any{}
	if categorySlug != "" {
		query = `SELECT ` + productColumns + ` FROM products WHERE category_slug = $1 ORDER BY created_at DESC`
		args = append(args, categorySlug)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Update rewrites the mutable catalog fields.
func (r *PostgresRepository) Update(ctx context.Context, product *Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET title = $1, description = $2, category_slug = $3, price = $4,
			quantity = $5, preview_url = $6, updated_at = NOW()
		WHERE id = $7
	`, product.Title, product.Description, product.CategorySlug, product.Price,
		product.Quantity, product.PreviewURL, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLike upserts the user's like flag for a product.
func (r *PostgresRepository) SetLike(ctx context.Context, userID, productID string, liked bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_likes (user_id, product_id, is_liked)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET is_liked = $3
	`, userID, productID, liked)
	return err
}

// SetFavorite upserts the user's favorite flag for a product.
func (r *PostgresRepository) SetFavorite(ctx context.Context, userID, productID string, favorite bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_favorites (user_id, product_id, favorite)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET favorite = $3
	`, userID, productID, favorite)
	return err
}

// ListFavorites returns the user's currently favorited products.
func (r *PostgresRepository) ListFavorites(ctx context.Context, userID string) ([]FavoriteItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.product_id, p.title, f.favorite
		FROM product_favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND f.favorite
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []FavoriteItem
	for rows.Next() {
		var item FavoriteItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Favorite); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
