package order

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewOrder(t *testing.T) {
	total := decimal.RequireFromString("30.00")
	order := NewOrder("user-1", "user@example.com", "Main street 1", "A-100", total)

	if order.ID == "" {
		t.Error("Expected ID to be set")
	}
	if order.UserID != "user-1" {
		t.Errorf("Expected UserID user-1, got %s", order.UserID)
	}
	if order.UserEmail != "user@example.com" {
		t.Errorf("Expected UserEmail user@example.com, got %s", order.UserEmail)
	}
	if order.Address != "Main street 1" {
		t.Errorf("Expected address to be kept, got %s", order.Address)
	}
	if order.Number != "A-100" {
		t.Errorf("Expected number A-100, got %s", order.Number)
	}
	if order.Status != StatusOpen {
		t.Errorf("Expected status %s, got %s", StatusOpen, order.Status)
	}
	if !order.TotalSum.Equal(total) {
		t.Errorf("Expected total %s, got %s", total, order.TotalSum)
	}
	if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	now := time.Now()
	if order.CreatedAt.After(now) || order.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestOrderJSON_PresentsOwnerByEmail(t *testing.T) {
	order := NewOrder("3f6c0a1e-user-id", "user@example.com", "Main street 1", "A-100", decimal.Zero)

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("Unexpected marshal error: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"user":"user@example.com"`) {
		t.Errorf("Expected owner presented by email, got %s", body)
	}
	if strings.Contains(body, "3f6c0a1e-user-id") {
		t.Errorf("Expected internal user id kept off the wire, got %s", body)
	}
}

func TestOrderStatus(t *testing.T) {
	if StatusOpen != "open" {
		t.Errorf("Expected StatusOpen to be 'open', got %s", StatusOpen)
	}
	if StatusInProcess != "in_process" {
		t.Errorf("Expected StatusInProcess to be 'in_process', got %s", StatusInProcess)
	}
	if StatusClosed != "closed" {
		t.Errorf("Expected StatusClosed to be 'closed', got %s", StatusClosed)
	}
}

func TestInsufficientStockError_NamesProductAndStock(t *testing.T) {
	err := &InsufficientStockError{ProductID: "p-1", Title: "Lamp", Available: 2}
	want := `only 2 of "Lamp" in stock`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
