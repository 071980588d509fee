package category

import (
	"context"
	"fmt"
)

// UseCase contains the category business logic.
type UseCase struct {
	repository Repository
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create stores a category, generating the slug from the name when the
// caller did not supply one.
func (uc *UseCase) Create(ctx context.Context, category *Category) (*Category, error) {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if category.Slug == "" {
		return nil, fmt.Errorf("category name %q produces an empty slug", category.Name)
	}

	if err := uc.repository.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Get returns one category with its direct children.
func (uc *UseCase) Get(ctx context.Context, slug string) (*Category, error) {
	return uc.repository.Get(ctx, slug)
}

// List returns all categories.
func (uc *UseCase) List(ctx context.Context) ([]Category, error) {
	return uc.repository.List(ctx)
}

// Update renames or reparents a category.
func (uc *UseCase) Update(ctx context.Context, category *Category) error {
	if err := uc.repository.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category.
func (uc *UseCase) Delete(ctx context.Context, slug string) error {
	return uc.repository.Delete(ctx, slug)
}
