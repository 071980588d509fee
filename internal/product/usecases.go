package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotOwner is returned when a non-owner tries to mutate a product.
var ErrNotOwner = errors.New("only the owner can modify this product")

// UseCase contains the catalog business logic.
type UseCase struct {
	repository Repository
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create adds a product to the catalog.
func (uc *UseCase) Create(ctx context.Context, ownerID, title, description, categorySlug, previewURL string, price decimal.Decimal, quantity int) (*Product, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	product := NewProduct(ownerID, title, description, categorySlug, previewURL, price.Round(2), quantity)
	if err := uc.repository.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Get returns one product.
func (uc *UseCase) Get(ctx context.Context, id string) (*Product, error) {
	return uc.repository.Get(ctx, id)
}

// List returns products, optionally narrowed to a category.
func (uc *UseCase) List(ctx context.Context, categorySlug string) ([]Product, error) {
	return uc.repository.List(ctx, categorySlug)
}

// Update rewrites a product. Only the owner or staff may do this.
func (uc *UseCase) Update(ctx context.Context, actorID string, actorIsStaff bool, product *Product) error {
	current, err := uc.repository.Get(ctx, product.ID)
	if err != nil {
		return err
	}
	if current.OwnerID != actorID && !actorIsStaff {
		return ErrNotOwner
	}
	product.OwnerID = current.OwnerID
	product.Price = product.Price.Round(2)
	if err := uc.repository.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product. Only the owner or staff may do this.
func (uc *UseCase) Delete(ctx context.Context, actorID string, actorIsStaff bool, id string) error {
	current, err := uc.repository.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID != actorID && !actorIsStaff {
		return ErrNotOwner
	}
	return uc.repository.Delete(ctx, id)
}

// ToggleLike flips the like flag for the acting user.
func (uc *UseCase) ToggleLike(ctx context.Context, userID, productID string, liked bool) error {
	if _, err := uc.repository.Get(ctx, productID); err != nil {
		return err
	}
	return uc.repository.SetLike(ctx, userID, productID, liked)
}

// ToggleFavorite flips the favorite flag for the acting user.
func (uc *UseCase) ToggleFavorite(ctx context.Context, userID, productID string, favorite bool) error {
	if _, err := uc.repository.Get(ctx, productID); err != nil {
		return err
	}
	return uc.repository.SetFavorite(ctx, userID, productID, favorite)
}

// ListFavorites returns the acting user's favorites.
func (uc *UseCase) ListFavorites(ctx context.Context, userID string) ([]FavoriteItem, error) {
	return uc.repository.ListFavorites(ctx, userID)
}
