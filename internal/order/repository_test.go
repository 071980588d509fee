package order

import "testing"

func TestGroupItemsByOrder(t *testing.T) {
	items := []Item{
		{ID: "i-1", OrderID: "o-1", ProductID: "p-1", Quantity: 2},
		{ID: "i-2", OrderID: "o-2", ProductID: "p-1", Quantity: 1},
		{ID: "i-3", OrderID: "o-1", ProductID: "p-2", Quantity: 3},
	}

	grouped := groupItemsByOrder(items)

	if len(grouped) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(grouped))
	}
	if len(grouped["o-1"]) != 2 {
		t.Errorf("Expected 2 items for o-1, got %d", len(grouped["o-1"]))
	}
	if len(grouped["o-2"]) != 1 {
		t.Errorf("Expected 1 item for o-2, got %d", len(grouped["o-2"]))
	}
	if grouped["o-1"][0].ID != "i-1" || grouped["o-1"][1].ID != "i-3" {
		t.Errorf("Expected o-1 items in fetch order, got %v", grouped["o-1"])
	}
}

func TestGroupItemsByOrder_Empty(t *testing.T) {
	if got := groupItemsByOrder(nil); len(got) != 0 {
		t.Errorf("Expected empty map, got %v", got)
	}
}
