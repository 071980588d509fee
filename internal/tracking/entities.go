package tracking

import "time"

// PageView is a single recorded visit to an API page.
type PageView struct {
	ID        int64     `json:"id"`
	Page      string    `json:"page"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}
