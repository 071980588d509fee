package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// Tx is the transaction handle placement mutations run under.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Repository defines the database operations for order placement and
// listing. Stock mutation lives here too: the decrement must share a
// transaction with order creation.
type Repository interface {
	// GetProduct resolves a product reference for validation and pricing.
	GetProduct(ctx context.Context, productID string) (*CatalogProduct, error)

	BeginTx(ctx context.Context) (Tx, error)

	// DecrementStock atomically subtracts quantity where enough stock
	// remains. It reports false, without error, when stock is insufficient.
	DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error)

	CreateOrder(ctx context.Context, tx Tx, order *Order) error
	CreateItems(ctx context.Context, tx Tx, items []Item) error

	Get(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgresRepository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

// PostgresTx wraps pgx.Tx behind the Tx interface.
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// BeginTx starts a new transaction.
func (r *PostgresRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetProduct resolves a product reference.
func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (*CatalogProduct, error) {
	var p CatalogProduct
	err := r.db.QueryRow(ctx, `
		SELECT id, title, price, quantity FROM products WHERE id = $1
	`, productID).Scan(&p.ID, &p.Title, &p.Price, &p.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ProductID: productID}
		}
		return nil, err
	}
	return &p, nil
}

// DecrementStock performs the conditional decrement. The quantity guard in
// the WHERE clause is what closes the check-then-act race: two competing
// placements cannot both pass it for the same remaining stock.
func (r *PostgresRepository) DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error) {
	pgTx := tx.(*PostgresTx).tx

	tag, err := pgTx.Exec(ctx, `
		UPDATE products
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateOrder inserts the order row.
func (r *PostgresRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, user_id, address, number, status, total_sum, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, order.ID, order.UserID, order.Address, order.Number, order.Status,
		order.TotalSum, order.CreatedAt, order.UpdatedAt)
	return err
}

// CreateItems inserts the order lines.
func (r *PostgresRepository) CreateItems(ctx context.Context, tx Tx, items []Item) error {
	pgTx := tx.(*PostgresTx).tx

	for _, item := range items {
		_, err := pgTx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)
		`, item.ID, item.OrderID, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `o.id, o.user_id, u.email, o.address, o.number, o.status,
	o.total_sum, o.created_at, o.updated_at`

const orderFrom = ` FROM orders o JOIN users u ON u.id = o.user_id`

func (r *PostgresRepository) scanOrders(ctx context.Context, rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.Address, &o.Number,
			&o.Status, &o.TotalSum, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	grouped, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = grouped[orders[i].ID]
	}
	return orders, nil
}

// itemsByOrder fetches the lines for a batch of orders in one query.
func (r *PostgresRepository) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.quantity, p.title
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.ProductTitle); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupItemsByOrder(items), nil
}

func groupItemsByOrder(items []Item) map[string][]Item {
	grouped := make(map[string][]Item, len(items))
	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped
}

// Get fetches one order with its lines.
func (r *PostgresRepository) Get(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx, `SELECT `+orderColumns+orderFrom+` WHERE o.id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.UserEmail, &o.Address, &o.Number, &o.Status,
			&o.TotalSum, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	grouped, err := r.itemsByOrder(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = grouped[orderID]
	return &o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+orderFrom+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(ctx, rows)
}

// ListAll returns every order, newest first. Staff only.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+orderFrom+` ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(ctx, rows)
}
