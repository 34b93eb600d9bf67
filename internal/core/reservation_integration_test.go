package core_test

import (
	"errors"
	"sync"
	"testing"

	"freshtrack/internal/core"
)

func TestReserve_SaleDecrementsAndRecords(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	id := seedItem(t, ctx, pool, "Apples", core.CategoryFruits, 20, "2024-06-01", "2024-06-20")

	record, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:   id,
		Quantity: 5,
		Channel:  core.ChannelSale,
		Date:     "2024-06-03",
	})
	if err != nil {
		t.Fatalf("Reserve(sale) failed: %v", err)
	}
	if record.ID == 0 || record.Channel != core.ChannelSale || record.Quantity != 5 {
		t.Errorf("Unexpected record: %+v", record)
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != 15 {
		t.Errorf("Expected quantity 15 after sale of 5, got %d", qty)
	}
	if n := countRows(t, ctx, pool, "sales"); n != 1 {
		t.Errorf("Expected 1 sale record, got %d", n)
	}
}

func TestReserve_InsufficientStockLeavesNoTrace(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	id := seedItem(t, ctx, pool, "Chicken", core.CategoryMeat, 15, "2024-06-01", "2024-06-20")

	_, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:   id,
		Quantity: 20,
		Channel:  core.ChannelWaste,
		Date:     "2024-06-03",
		Reason:   core.ReasonSpoiled,
	})
	if !errors.Is(err, core.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != 15 {
		t.Errorf("Expected quantity unchanged at 15, got %d", qty)
	}
	if n := countRows(t, ctx, pool, "waste_log"); n != 0 {
		t.Errorf("Expected no waste records after failed reserve, got %d", n)
	}
}

func TestReserve_ItemNotFound(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	_, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:   9999,
		Quantity: 1,
		Channel:  core.ChannelSale,
		Date:     "2024-06-03",
	})
	if !errors.Is(err, core.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
	if n := countRows(t, ctx, pool, "sales"); n != 0 {
		t.Errorf("Expected no sale records, got %d", n)
	}
}

func TestReserve_ValidationBeforeStorage(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	id := seedItem(t, ctx, pool, "Bread", core.CategoryGrains, 10, "2024-06-01", "2024-06-20")

	cases := []core.ReserveInput{
		{ItemID: id, Quantity: 0, Channel: core.ChannelSale, Date: "2024-06-03"},
		{ItemID: id, Quantity: -3, Channel: core.ChannelSale, Date: "2024-06-03"},
		{ItemID: id, Quantity: 1, Channel: "donation", Date: "2024-06-03"},
		{ItemID: id, Quantity: 1, Channel: core.ChannelSale, Date: "not-a-date"},
		{ItemID: id, Quantity: 1, Channel: core.ChannelWaste, Date: "2024-06-03", Reason: "Vibes"},
		{ItemID: id, Quantity: 1, Channel: core.ChannelRedistribution, Date: "2024-06-03", Destination: "The Moon"},
	}

	for _, input := range cases {
		var validationErr *core.ValidationError
		if _, err := svc.Reserve(ctx, input); !errors.As(err, &validationErr) {
			t.Errorf("Input %+v: expected ValidationError, got %v", input, err)
		}
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != 10 {
		t.Errorf("Expected quantity untouched at 10, got %d", qty)
	}
	for _, table := range []string{"sales", "waste_log", "redistribution"} {
		if n := countRows(t, ctx, pool, table); n != 0 {
			t.Errorf("Expected no %s rows after rejected inputs, got %d", table, n)
		}
	}
}

func TestReserve_ChannelFieldsRecorded(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	id := seedItem(t, ctx, pool, "Berries", core.CategoryFruits, 30, "2024-06-01", "2024-06-20")

	waste, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:   id,
		Quantity: 4,
		Channel:  core.ChannelWaste,
		Date:     "2024-06-04",
		Reason:   core.ReasonOverripe,
	})
	if err != nil {
		t.Fatalf("Reserve(waste) failed: %v", err)
	}
	if waste.Reason == nil || *waste.Reason != core.ReasonOverripe {
		t.Errorf("Expected reason Overripe on record, got %v", waste.Reason)
	}

	redis, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:      id,
		Quantity:    6,
		Channel:     core.ChannelRedistribution,
		Date:        "2024-06-05",
		Destination: core.DestFoodBank,
	})
	if err != nil {
		t.Fatalf("Reserve(redistribution) failed: %v", err)
	}
	if redis.Destination == nil || *redis.Destination != core.DestFoodBank {
		t.Errorf("Expected destination Local Food Bank on record, got %v", redis.Destination)
	}

	var reason string
	if err := pool.QueryRow(ctx, "SELECT reason FROM waste_log WHERE waste_id = $1", waste.ID).Scan(&reason); err != nil {
		t.Fatalf("Failed to read waste row: %v", err)
	}
	if reason != string(core.ReasonOverripe) {
		t.Errorf("Expected stored reason Overripe, got %s", reason)
	}
}

// TestReserve_ConcurrentOverdraw fires 5 concurrent reservations of 3 units
// against an item holding 10. Exactly 3 can succeed (9 units); the other 2
// must fail with ErrInsufficientStock, and the item must end at 1 — never
// negative — with exactly 3 ledger rows, regardless of arrival order.
func TestReserve_ConcurrentOverdraw(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	id := seedItem(t, ctx, pool, "Milk Crates", core.CategoryDairy, 10, "2024-06-01", "2024-06-20")

	const workers = 5
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(ctx, core.ReserveInput{
				ItemID:   id,
				Quantity: 3,
				Channel:  core.ChannelSale,
				Date:     "2024-06-03",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, core.ErrInsufficientStock):
			insufficient++
		default:
			t.Errorf("Unexpected error from concurrent reserve: %v", err)
		}
	}

	if succeeded != 3 || insufficient != 2 {
		t.Errorf("Expected 3 successes and 2 insufficient-stock failures, got %d and %d", succeeded, insufficient)
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != 1 {
		t.Errorf("Expected final quantity 1, got %d", qty)
	}
	if n := countRows(t, ctx, pool, "sales"); n != 3 {
		t.Errorf("Expected exactly 3 sale records, got %d", n)
	}
}

// TestReserve_BusyWhenRowLockHeld holds the item's row lock from a separate
// transaction and verifies that a reservation gives up within the bounded
// wait, surfaces ErrUnavailable, and leaves no trace. After the lock is
// released the same reservation goes through.
func TestReserve_BusyWhenRowLockHeld(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	restore := core.SetLockWait("200ms")
	defer restore()

	id := seedItem(t, ctx, pool, "Eggs", core.CategoryDairy, 12, "2024-06-01", "2024-06-20")

	// Hold the row lock the way a slow concurrent reservation would.
	blocker, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin blocking tx: %v", err)
	}
	var locked int
	if err := blocker.QueryRow(ctx,
		"SELECT quantity FROM items WHERE item_id = $1 FOR UPDATE", id,
	).Scan(&locked); err != nil {
		t.Fatalf("Failed to lock item row: %v", err)
	}

	_, err = svc.Reserve(ctx, core.ReserveInput{
		ItemID:   id,
		Quantity: 2,
		Channel:  core.ChannelSale,
		Date:     "2024-06-03",
	})
	if !errors.Is(err, core.ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable while row lock held, got %v", err)
	}

	if err := blocker.Rollback(ctx); err != nil {
		t.Fatalf("Failed to release row lock: %v", err)
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != 12 {
		t.Errorf("Expected quantity unchanged at 12 after busy reservation, got %d", qty)
	}
	if n := countRows(t, ctx, pool, "sales"); n != 0 {
		t.Errorf("Expected no sale records after busy reservation, got %d", n)
	}

	// With the lock released the reservation succeeds.
	if _, err := svc.Reserve(ctx, core.ReserveInput{
		ItemID:   id,
		Quantity: 2,
		Channel:  core.ChannelSale,
		Date:     "2024-06-03",
	}); err != nil {
		t.Fatalf("Reserve after lock release failed: %v", err)
	}
}

// TestReserve_Conservation exercises a mixed sequence across all three
// channels and checks the conservation law: intake minus cumulative outflow
// equals the current quantity.
func TestReserve_Conservation(t *testing.T) {
	pool, ctx := setupTestDB(t)
	svc := core.NewReservationService(pool)

	const intake = 50
	id := seedItem(t, ctx, pool, "Tomatoes", core.CategoryVegetables, intake, "2024-06-01", "2024-06-20")

	outflows := []core.ReserveInput{
		{ItemID: id, Quantity: 7, Channel: core.ChannelSale, Date: "2024-06-02"},
		{ItemID: id, Quantity: 3, Channel: core.ChannelWaste, Date: "2024-06-03", Reason: core.ReasonDamaged},
		{ItemID: id, Quantity: 12, Channel: core.ChannelRedistribution, Date: "2024-06-04", Destination: core.DestCommunityKitchen},
		{ItemID: id, Quantity: 8, Channel: core.ChannelSale, Date: "2024-06-05"},
	}
	total := 0
	for _, input := range outflows {
		if _, err := svc.Reserve(ctx, input); err != nil {
			t.Fatalf("Reserve %+v failed: %v", input, err)
		}
		total += input.Quantity
	}

	var qty int
	if err := pool.QueryRow(ctx, "SELECT quantity FROM items WHERE item_id = $1", id).Scan(&qty); err != nil {
		t.Fatalf("Failed to read quantity: %v", err)
	}
	if qty != intake-total {
		t.Errorf("Conservation violated: intake %d - outflow %d = %d, but quantity is %d",
			intake, total, intake-total, qty)
	}

	var ledgerSum int
	if err := pool.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(quantity_sold) FROM sales WHERE item_id = $1), 0)
		     + COALESCE((SELECT SUM(quantity_wasted) FROM waste_log WHERE item_id = $1), 0)
		     + COALESCE((SELECT SUM(quantity) FROM redistribution WHERE item_id = $1), 0)`,
		id,
	).Scan(&ledgerSum); err != nil {
		t.Fatalf("Failed to sum ledger: %v", err)
	}
	if ledgerSum != total {
		t.Errorf("Expected ledger sum %d, got %d", total, ledgerSum)
	}
}
