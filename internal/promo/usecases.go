package promo

import "context"

// UseCase contains the business logic for promos. Mutations are staff
// only, enforced at the routing layer.
type UseCase struct {
	repository Repository
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create stores a new promo authored by the acting user.
func (uc *UseCase) Create(ctx context.Context, userID, imageURL, body string) (*Promo, error) {
	promo := NewPromo(userID, imageURL, body)
	if err := uc.repository.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// List returns every promo.
func (uc *UseCase) List(ctx context.Context) ([]Promo, error) {
	return uc.repository.List(ctx)
}

// Update replaces a promo's image and body.
func (uc *UseCase) Update(ctx context.Context, promoID, imageURL, body string) error {
	return uc.repository.Update(ctx, promoID, imageURL, body)
}

// Delete removes a promo.
func (uc *UseCase) Delete(ctx context.Context, promoID string) error {
	return uc.repository.Delete(ctx, promoID)
}
