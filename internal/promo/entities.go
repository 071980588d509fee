package promo

import (
	"time"

	"github.com/google/uuid"
)

// Promo is a promotional post shown on the public listing.
type Promo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	ImageURL  string    `json:"image"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPromo creates a promo with a fresh id.
func NewPromo(userID, imageURL, body string) *Promo {
	return &Promo{
		ID:        uuid.New().String(),
		UserID:    userID,
		ImageURL:  imageURL,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
