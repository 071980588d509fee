package account

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered customer or staff member. New accounts are inactive
// until the emailed activation code is used.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	AvatarURL      string    `json:"avatar"`
	PasswordHash   string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsStaff        bool      `json:"is_staff"`
	ActivationCode string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates an inactive user with a fresh activation code.
func NewUser(email, username, firstName, lastName, avatarURL, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:             uuid.New().String(),
		Email:          email,
		Username:       username,
		FirstName:      firstName,
		LastName:       lastName,
		AvatarURL:      avatarURL,
		PasswordHash:   passwordHash,
		IsActive:       false,
		ActivationCode: uuid.New().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
