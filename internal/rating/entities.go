package rating

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single user's mark for a product. One review per
// (user, product) pair.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	ProductID string    `json:"product"`
	Mark      int       `json:"mark"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview creates a review with a fresh id.
func NewReview(userID, productID string, mark int, body string) *Review {
	return &Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Mark:      mark,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
