package news

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single news entry. Titles are unique: the scraper relies on
// that to skip entries it has already stored.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItem creates a news item with a fresh id.
func NewItem(title, imageURL, body string) *Item {
	return &Item{
		ID:        uuid.New().String(),
		Title:     title,
		ImageURL:  imageURL,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
