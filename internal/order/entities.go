package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Placement always creates orders open; the other states
// are reached by back-office transitions.
const (
	StatusOpen      = "open"
	StatusInProcess = "in_process"
	StatusClosed    = "closed"
)

// Order is a placed order. TotalSum is computed once at placement from the
// catalog prices in effect at that moment; items do not snapshot a unit
// price, so the stored total is authoritative. The owner is presented by
// email; the internal id stays off the wire.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	UserEmail string          `json:"user"`
	Address   string          `json:"address"`
	Number    string          `json:"number"`
	Status    string          `json:"status"`
	TotalSum  decimal.Decimal `json:"total_sum"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []Item          `json:"products,omitempty"`
}

// Item is one product line inside an order.
type Item struct {
	ID           string `json:"-"`
	OrderID      string `json:"-"`
	ProductID    string `json:"product"`
	Quantity     int    `json:"quantity"`
	ProductTitle string `json:"product_title"`
}

// NewOrder creates an open order for the given user.
func NewOrder(userID, userEmail, address, number string, totalSum decimal.Decimal) *Order {
	now := time.Now()
	return &Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserEmail: userEmail,
		Address:   address,
		Number:    number,
		Status:    StatusOpen,
		TotalSum:  totalSum,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CatalogProduct is the catalog's view of a product as the placement path
// needs it: identity, title, unit price, live stock.
type CatalogProduct struct {
	ID       string
	Title    string
	Price    decimal.Decimal
	Quantity int
}

// NotFoundError reports a line referencing a product that does not exist.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError reports a line asking for more than is available,
// naming the product and its current stock.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d of %q in stock", e.Available, e.Title)
}
