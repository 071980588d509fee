package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fakeRepository models the placement storage contract in memory: the
// conditional decrement is atomic under a lock, and mutations buffered in a
// transaction only become visible on commit.
type fakeRepository struct {
	mu       sync.Mutex
	products map[string]*CatalogProduct
	orders   []Order
	items    []Item

	failCreateOrder bool
	failCreateItems bool
}

func newFakeRepository(products ...*CatalogProduct) *fakeRepository {
	repo := &fakeRepository{products: map[string]*CatalogProduct{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

type fakeTx struct {
	repo        *fakeRepository
	decremented map[string]int
	orders      []*Order
	items       []Item
	finished    bool
}

func (r *fakeRepository) BeginTx(context.Context) (Tx, error) {
	return &fakeTx{repo: r, decremented: map[string]int{}}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if t.finished {
		return errors.New("transaction already finished")
	}
	t.finished = true
	for _, o := range t.orders {
		t.repo.orders = append(t.repo.orders, *o)
	}
	t.repo.items = append(t.repo.items, t.items...)
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if t.finished {
		return nil
	}
	t.finished = true
	for id, qty := range t.decremented {
		t.repo.products[id].Quantity += qty
	}
	return nil
}

func (r *fakeRepository) GetProduct(_ context.Context, productID string) (*CatalogProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, &NotFoundError{ProductID: productID}
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) DecrementStock(_ context.Context, tx Tx, productID string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return false, errors.New("unknown product")
	}
	if p.Quantity < quantity {
		return false, nil
	}
	p.Quantity -= quantity
	tx.(*fakeTx).decremented[productID] += quantity
	return true, nil
}

func (r *fakeRepository) CreateOrder(_ context.Context, tx Tx, order *Order) error {
	if r.failCreateOrder {
		return errors.New("storage fault")
	}
	ft := tx.(*fakeTx)
	ft.orders = append(ft.orders, order)
	return nil
}

func (r *fakeRepository) CreateItems(_ context.Context, tx Tx, items []Item) error {
	if r.failCreateItems {
		return errors.New("storage fault")
	}
	ft := tx.(*fakeTx)
	ft.items = append(ft.items, items...)
	return nil
}

func (r *fakeRepository) Get(_ context.Context, orderID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			copied := o
			return &copied, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListAll(context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *fakeRepository) stock(productID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Quantity
}

func (r *fakeRepository) orderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *fakeNotifier) SendOrderCreated(email, orderID, totalSum string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, email+"|"+orderID+"|"+totalSum)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPlace_Success(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier)

	order, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 3}})

	assert.NoError(t, err)
	assert.Equal(t, StatusOpen, order.Status)
	assert.Equal(t, "user@example.com", order.UserEmail)
	assert.Equal(t, "30.00", order.TotalSum.StringFixed(2))
	assert.Equal(t, 2, repo.stock("prod-a"))
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Lamp", order.Items[0].ProductTitle)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, []string{"user@example.com|" + order.ID + "|30.00"}, notifier.calls)
}

func TestPlace_InsufficientStock(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 2})
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier)

	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 3}})

	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Lamp", insufficient.Title)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 2, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.orderCount())
	assert.Equal(t, 0, notifier.count())
}

func TestPlace_UnknownProduct(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})

	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 1}, {ProductID: "missing", Quantity: 1}})

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ProductID)
	assert.Equal(t, 5, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlace_EmptyRequest(t *testing.T) {
	uc := NewUseCase(newFakeRepository(), &fakeNotifier{})

	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1", nil)
	assert.Error(t, err)
}

func TestPlace_QuantityDefaultsToOne(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})

	order, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a"}})

	assert.NoError(t, err)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 4, repo.stock("prod-a"))
}

func TestPlace_StorageFaultRollsBackStock(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	repo.failCreateOrder = true
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier)

	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 3}})

	assert.Error(t, err)
	assert.Equal(t, 5, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.orderCount())
	assert.Equal(t, 0, notifier.count())
}

func TestPlace_ItemFaultRollsBackEverything(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	repo.failCreateItems = true
	uc := NewUseCase(repo, &fakeNotifier{})

	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 3}})

	assert.Error(t, err)
	assert.Equal(t, 5, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlace_DuplicateLinesCheckedSequentially(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})

	// 3 + 3 exceeds the 5 in stock; the second line fails against the
	// stock remaining after the first, and the whole request rolls back.
	_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 3}, {ProductID: "prod-a", Quantity: 3}})

	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlace_DuplicateLinesWithinStock(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})

	order, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 2}, {ProductID: "prod-a", Quantity: 3}})

	assert.NoError(t, err)
	assert.Equal(t, "50.00", order.TotalSum.StringFixed(2))
	assert.Equal(t, 0, repo.stock("prod-a"))
}

func TestPlace_MultipleProductsTotal(t *testing.T) {
	repo := newFakeRepository(
		&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5},
		&CatalogProduct{ID: "prod-b", Title: "Chair", Price: price("24.50"), Quantity: 2},
	)
	uc := NewUseCase(repo, &fakeNotifier{})

	order, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 2}, {ProductID: "prod-b", Quantity: 2}})

	assert.NoError(t, err)
	assert.Equal(t, "69.00", order.TotalSum.StringFixed(2))
	assert.Equal(t, 3, repo.stock("prod-a"))
	assert.Equal(t, 0, repo.stock("prod-b"))
}

func TestPlace_ResubmissionCreatesSecondOrder(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})
	ctx := context.Background()
	lines := []Line{{ProductID: "prod-a", Quantity: 2}}

	_, err := uc.Place(ctx, "user-1", "user@example.com", "X", "1", lines)
	assert.NoError(t, err)
	_, err = uc.Place(ctx, "user-1", "user@example.com", "X", "1", lines)
	assert.NoError(t, err)

	assert.Equal(t, 2, repo.orderCount())
	assert.Equal(t, 1, repo.stock("prod-a"))
}

func TestPlace_ConcurrentRequestsForLastStock(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 3})
	uc := NewUseCase(repo, &fakeNotifier{})

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Place(context.Background(), "user-1", "user@example.com", "X", "1",
				[]Line{{ProductID: "prod-a", Quantity: 3}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var insufficient *InsufficientStockError
		assert.ErrorAs(t, err, &insufficient)
		failures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, repo.stock("prod-a"))
}

func TestGet_HidesForeignOrders(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 5})
	uc := NewUseCase(repo, &fakeNotifier{})
	ctx := context.Background()

	order, err := uc.Place(ctx, "user-1", "user@example.com", "X", "1",
		[]Line{{ProductID: "prod-a", Quantity: 1}})
	assert.NoError(t, err)

	_, err = uc.Get(ctx, "user-2", false, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	got, err := uc.Get(ctx, "user-2", true, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestList_StaffSeesEverything(t *testing.T) {
	repo := newFakeRepository(&CatalogProduct{ID: "prod-a", Title: "Lamp", Price: price("10.00"), Quantity: 10})
	uc := NewUseCase(repo, &fakeNotifier{})
	ctx := context.Background()

	_, err := uc.Place(ctx, "user-1", "a@example.com", "X", "1", []Line{{ProductID: "prod-a", Quantity: 1}})
	assert.NoError(t, err)
	_, err = uc.Place(ctx, "user-2", "b@example.com", "X", "2", []Line{{ProductID: "prod-a", Quantity: 1}})
	assert.NoError(t, err)

	mine, err := uc.List(ctx, "user-1", false)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := uc.List(ctx, "user-1", true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
