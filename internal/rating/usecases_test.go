package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, review *Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, reviewID string, mark int, body string) error {
	args := m.Called(ctx, reviewID, mark, body)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func TestCreate_StoresReview(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *Review) bool {
		return r.UserID == "user-1" && r.ProductID == "prod-1" && r.Mark == 4 && r.ID != ""
	})).Return(nil)

	uc := NewUseCase(repo)
	review, err := uc.Create(context.Background(), "user-1", "prod-1", 4, "solid")

	assert.NoError(t, err)
	assert.Equal(t, 4, review.Mark)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsMarkOutOfRange(t *testing.T) {
	uc := NewUseCase(new(MockRepository))

	for _, mark := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), "user-1", "prod-1", mark, "")
		assert.ErrorIs(t, err, ErrInvalidMark)
	}
}

func TestCreate_SecondReviewConflicts(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicate)

	uc := NewUseCase(repo)
	_, err := uc.Create(context.Background(), "user-1", "prod-1", 5, "")

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdate_ValidatesMark(t *testing.T) {
	uc := NewUseCase(new(MockRepository))

	err := uc.Update(context.Background(), "rev-1", 9, "")
	assert.ErrorIs(t, err, ErrInvalidMark)
}

func TestUpdate_UnknownReview(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, "rev-1", 3, "ok").Return(ErrNotFound)

	uc := NewUseCase(repo)
	err := uc.Update(context.Background(), "rev-1", 3, "ok")

	assert.ErrorIs(t, err, ErrNotFound)
}
