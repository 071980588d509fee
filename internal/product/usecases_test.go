package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify double for the catalog repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, categorySlug string) ([]Product, error) {
	args := m.Called(ctx, categorySlug)
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetLike(ctx context.Context, userID, productID string, liked bool) error {
	args := m.Called(ctx, userID, productID, liked)
	return args.Error(0)
}

func (m *MockRepository) SetFavorite(ctx context.Context, userID, productID string, favorite bool) error {
	args := m.Called(ctx, userID, productID, favorite)
	return args.Error(0)
}

func (m *MockRepository) ListFavorites(ctx context.Context, userID string) ([]FavoriteItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]FavoriteItem), args.Error(1)
}

func TestCreate_RoundsPriceToTwoPlaces(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUseCase(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*product.Product")).Return(nil)

	product, err := uc.Create(ctx, "owner-1", "Lamp", "", "home", "",
		decimal.RequireFromString("19.999"), 3)
	assert.NoError(t, err)
	assert.Equal(t, "20", product.Price.String())
	assert.Equal(t, 3, product.Quantity)
}

func TestCreate_RejectsNegativeInputs(t *testing.T) {
	uc := NewUseCase(new(MockRepository))
	ctx := context.Background()

	_, err := uc.Create(ctx, "owner-1", "Lamp", "", "home", "",
		decimal.RequireFromString("-1.00"), 3)
	assert.Error(t, err)

	_, err = uc.Create(ctx, "owner-1", "Lamp", "", "home", "",
		decimal.RequireFromString("1.00"), -1)
	assert.Error(t, err)
}

func TestUpdate_OnlyOwnerOrStaff(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUseCase(repo)
	ctx := context.Background()

	current := &Product{ID: "p-1", OwnerID: "owner-1"}
	repo.On("Get", ctx, "p-1").Return(current, nil)

	err := uc.Update(ctx, "someone-else", false, &Product{ID: "p-1", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update")

	repo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil)
	assert.NoError(t, uc.Update(ctx, "someone-else", true, &Product{ID: "p-1", Price: decimal.Zero}))
	assert.NoError(t, uc.Update(ctx, "owner-1", false, &Product{ID: "p-1", Price: decimal.Zero}))
}

func TestToggleFavorite_UnknownProduct(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUseCase(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "missing").Return(nil, ErrNotFound)

	err := uc.ToggleFavorite(ctx, "user-1", "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "SetFavorite")
}
