package account

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

var (
	// ErrInvalidCredentials is returned when login credentials are wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInactiveAccount is returned when the account is not activated yet.
	ErrInactiveAccount = errors.New("account is not activated")
	// ErrInvalidActivation is returned for unknown or spent activation codes.
	ErrInvalidActivation = errors.New("invalid link or link expired")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email is already registered")
)

// Notifier queues the activation email. Delivery is best effort.
type Notifier interface {
	SendActivation(publicHost, email, code string)
}

// TokenPair is an issued access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// UseCase contains the account business logic.
type UseCase struct {
	repository Repository
	hasher     *auth.PasswordHasher
	jwt        *auth.JWTManager
	notifier   Notifier
	publicHost string
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository, hasher *auth.PasswordHasher, jwt *auth.JWTManager, notifier Notifier, publicHost string) *UseCase {
	return &UseCase{
		repository: repository,
		hasher:     hasher,
		jwt:        jwt,
		notifier:   notifier,
		publicHost: publicHost,
	}
}

// Register creates an inactive account and queues the activation email.
// Email trouble does not undo the registration.
func (uc *UseCase) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if _, err := uc.repository.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := NewUser(req.Email, req.Username, req.FirstName, req.LastName, req.Avatar, hash)
	if err := uc.repository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.notifier.SendActivation(uc.publicHost, user.Email, user.ActivationCode)
	return user, nil
}

// Activate flips the account active for a valid activation code.
func (uc *UseCase) Activate(ctx context.Context, code string) error {
	user, err := uc.repository.GetByActivationCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidActivation
		}
		return fmt.Errorf("failed to look up activation code: %w", err)
	}
	if err := uc.repository.SetActive(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	log.Printf("[account] user activated: %s", user.Email)
	return nil
}

// Login verifies credentials and issues a token pair. Inactive accounts
// cannot log in.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := uc.repository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}
	return uc.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := uc.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := uc.repository.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}
	return uc.issueTokens(user)
}

// ChangePassword swaps the stored password after checking the old one.
func (uc *UseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := uc.repository.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !uc.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return uc.repository.SetPasswordHash(ctx, user.ID, hash)
}

// List returns all users.
func (uc *UseCase) List(ctx context.Context) ([]User, error) {
	return uc.repository.List(ctx)
}

// UpdateProfile updates the acting user's own profile fields.
func (uc *UseCase) UpdateProfile(ctx context.Context, user *User) error {
	return uc.repository.UpdateProfile(ctx, user)
}

func (uc *UseCase) issueTokens(user *User) (*TokenPair, error) {
	access, err := uc.jwt.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := uc.jwt.GenerateRefreshToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
