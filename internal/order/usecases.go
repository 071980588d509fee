package order

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one requested (product, quantity) pair. A zero quantity means
// the caller did not specify one and defaults to 1.
type Line struct {
	ProductID string
	Quantity  int
}

// Notifier queues the order-created email. Fire and forget: the placement
// result never depends on it.
type Notifier interface {
	SendOrderCreated(email, orderID, totalSum string)
}

// UseCase contains the order placement business logic.
type UseCase struct {
	repository Repository
	notifier   Notifier
}

// NewUseCase creates a new UseCase.
func NewUseCase(repository Repository, notifier Notifier) *UseCase {
	return &UseCase{
		repository: repository,
		notifier:   notifier,
	}
}

// Place validates the requested lines against live stock, then atomically
// decrements stock and persists the order with its lines. Everything
// between BeginTx and Commit is all-or-nothing; the customer notification
// afterwards is not part of the guarantee.
//
// Lines are processed in caller order. Two lines naming the same product
// are checked and applied independently, each against the stock remaining
// after the earlier one.
func (uc *UseCase) Place(ctx context.Context, userID, userEmail, address, number string, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must contain at least one product")
	}

	// Pre-check pass: resolve every reference and validate quantities
	// before any mutation begins.
	products := make([]*CatalogProduct, len(lines))
	for i := range lines {
		if lines[i].Quantity == 0 {
			lines[i].Quantity = 1
		}
		if lines[i].Quantity < 0 {
			return nil, fmt.Errorf("quantity must be a positive integer")
		}

		p, err := uc.repository.GetProduct(ctx, lines[i].ProductID)
		if err != nil {
			return nil, err
		}
		if p.Quantity < lines[i].Quantity {
			return nil, &InsufficientStockError{ProductID: p.ID, Title: p.Title, Available: p.Quantity}
		}
		products[i] = p
	}

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	order, err := uc.placeInTx(ctx, tx, userID, userEmail, address, number, lines, products)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Printf("[order] rollback failed: %v", rbErr)
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	uc.notifier.SendOrderCreated(userEmail, order.ID, order.TotalSum.StringFixed(2))

	log.Printf("[order] order placed: %s total=%s", order.ID, order.TotalSum.StringFixed(2))
	return order, nil
}

func (uc *UseCase) placeInTx(ctx context.Context, tx Tx, userID, userEmail, address, number string, lines []Line, products []*CatalogProduct) (*Order, error) {
	total := decimal.Zero
	for i, line := range lines {
		ok, err := uc.repository.DecrementStock(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Stock moved between the pre-check and the conditional
			// update. Re-read outside the decrement for the error detail.
			current, gerr := uc.repository.GetProduct(ctx, line.ProductID)
			if gerr != nil {
				return nil, gerr
			}
			return nil, &InsufficientStockError{
				ProductID: current.ID,
				Title:     current.Title,
				Available: current.Quantity,
			}
		}
		total = total.Add(products[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := NewOrder(userID, userEmail, address, number, total.Round(2))
	if err := uc.repository.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			ProductTitle: products[i].Title,
		}
	}
	if err := uc.repository.CreateItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}
	order.Items = items

	return order, nil
}

// Get returns one order. Non-staff callers only see their own.
func (uc *UseCase) Get(ctx context.Context, actorID string, actorIsStaff bool, orderID string) (*Order, error) {
	order, err := uc.repository.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID && !actorIsStaff {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List returns the caller's orders, or every order for staff.
func (uc *UseCase) List(ctx context.Context, actorID string, actorIsStaff bool) ([]Order, error) {
	if actorIsStaff {
		return uc.repository.ListAll(ctx)
	}
	return uc.repository.ListByUser(ctx, actorID)
}
