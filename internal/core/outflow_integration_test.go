package core_test

import (
	"testing"

	"freshtrack/internal/core"
)

func TestOutflow_HistoryOrderedNewestFirst(t *testing.T) {
	pool, ctx := setupTestDB(t)
	reservations := core.NewReservationService(pool)
	outflows := core.NewOutflowService(pool)

	id := seedItem(t, ctx, pool, "Apples", core.CategoryFruits, 100, "2024-06-01", "2024-06-30")

	sales := []struct {
		date string
		qty  int
	}{
		{"2024-06-02", 3},
		{"2024-06-05", 7},
		{"2024-06-03", 2},
	}
	for _, s := range sales {
		if _, err := reservations.Reserve(ctx, core.ReserveInput{
			ItemID: id, Quantity: s.qty, Channel: core.ChannelSale, Date: s.date,
		}); err != nil {
			t.Fatalf("Reserve(sale %s) failed: %v", s.date, err)
		}
	}

	entries, err := outflows.ListSales(ctx)
	if err != nil {
		t.Fatalf("ListSales failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 sales, got %d", len(entries))
	}
	wantQty := []int{7, 2, 3}
	for i, want := range wantQty {
		if entries[i].QuantitySold != want {
			t.Errorf("Entry %d: expected quantity %d, got %d", i, want, entries[i].QuantitySold)
		}
	}
	if entries[0].ItemName != "Apples" || entries[0].Category != "Fruits" {
		t.Errorf("Expected joined item details, got %q / %q", entries[0].ItemName, entries[0].Category)
	}
}

func TestOutflow_DanglingItemShowsPlaceholder(t *testing.T) {
	pool, ctx := setupTestDB(t)
	items := core.NewItemService(pool)
	reservations := core.NewReservationService(pool)
	outflows := core.NewOutflowService(pool)

	id := seedItem(t, ctx, pool, "Short-lived", core.CategoryMeat, 30, "2024-06-01", "2024-06-10")

	if _, err := reservations.Reserve(ctx, core.ReserveInput{
		ItemID: id, Quantity: 4, Channel: core.ChannelSale, Date: "2024-06-02",
	}); err != nil {
		t.Fatalf("Reserve(sale) failed: %v", err)
	}
	if _, err := reservations.Reserve(ctx, core.ReserveInput{
		ItemID: id, Quantity: 6, Channel: core.ChannelWaste, Date: "2024-06-03", Reason: core.ReasonSpoiled,
	}); err != nil {
		t.Fatalf("Reserve(waste) failed: %v", err)
	}
	if _, err := reservations.Reserve(ctx, core.ReserveInput{
		ItemID: id, Quantity: 5, Channel: core.ChannelRedistribution, Date: "2024-06-04", Destination: core.DestFoodBank,
	}); err != nil {
		t.Fatalf("Reserve(redistribution) failed: %v", err)
	}

	if err := items.DeleteItem(ctx, id); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	saleEntries, err := outflows.ListSales(ctx)
	if err != nil {
		t.Fatalf("ListSales failed: %v", err)
	}
	if len(saleEntries) != 1 {
		t.Fatalf("Expected sale row to survive item deletion, got %d rows", len(saleEntries))
	}
	if saleEntries[0].ItemName != "Unknown Item" || saleEntries[0].Category != "Unknown" {
		t.Errorf("Expected placeholder details, got %q / %q", saleEntries[0].ItemName, saleEntries[0].Category)
	}

	wasteEntries, err := outflows.ListWaste(ctx)
	if err != nil {
		t.Fatalf("ListWaste failed: %v", err)
	}
	if len(wasteEntries) != 1 {
		t.Fatalf("Expected waste row to survive item deletion, got %d rows", len(wasteEntries))
	}
	if wasteEntries[0].ItemName != "Unknown Item" || wasteEntries[0].Reason != core.ReasonSpoiled {
		t.Errorf("Expected placeholder name with original reason, got %+v", wasteEntries[0])
	}

	redisEntries, err := outflows.ListRedistributions(ctx)
	if err != nil {
		t.Fatalf("ListRedistributions failed: %v", err)
	}
	if len(redisEntries) != 1 {
		t.Fatalf("Expected redistribution row to survive item deletion, got %d rows", len(redisEntries))
	}
	if redisEntries[0].ItemName != "Unknown Item" || redisEntries[0].Destination != core.DestFoodBank {
		t.Errorf("Expected placeholder name with original destination, got %+v", redisEntries[0])
	}
}
