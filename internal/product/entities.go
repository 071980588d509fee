package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Quantity is live stock and never goes
// negative; the order placement path is the only out-of-catalog writer.
type Product struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	CategorySlug string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	PreviewURL   string          `json:"preview"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewProduct creates a catalog entry owned by the given user.
func NewProduct(ownerID, title, description, categorySlug, previewURL string, price decimal.Decimal, quantity int) *Product {
	now := time.Now()
	return &Product{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		CategorySlug: categorySlug,
		Price:        price,
		Quantity:     quantity,
		PreviewURL:   previewURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FavoriteItem is one favorites listing entry.
type FavoriteItem struct {
	ProductID string `json:"product"`
	Title     string `json:"product_title"`
	Favorite  bool   `json:"favorite"`
}
