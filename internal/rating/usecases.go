package rating

import (
	"context"
	"fmt"
)

// ErrInvalidMark is returned when a mark falls outside 1..5.
var ErrInvalidMark = fmt.Errorf("mark must be between 1 and 5")

// UseCase contains the business logic for reviews.
type UseCase struct {
	repository Repository
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create stores a new review for the acting user.
func (uc *UseCase) Create(ctx context.Context, userID, productID string, mark int, body string) (*Review, error) {
	if mark < 1 || mark > 5 {
		return nil, ErrInvalidMark
	}
	review := NewReview(userID, productID, mark, body)
	if err := uc.repository.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct returns all reviews for a product.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	return uc.repository.ListByProduct(ctx, productID)
}

// Update replaces a review's mark and body. Staff only, enforced at the
// routing layer.
func (uc *UseCase) Update(ctx context.Context, reviewID string, mark int, body string) error {
	if mark < 1 || mark > 5 {
		return ErrInvalidMark
	}
	return uc.repository.Update(ctx, reviewID, mark, body)
}

// Delete removes a review. Staff only, enforced at the routing layer.
func (uc *UseCase) Delete(ctx context.Context, reviewID string) error {
	return uc.repository.Delete(ctx, reviewID)
}
