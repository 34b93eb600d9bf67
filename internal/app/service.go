package app

import (
	"context"

	"freshtrack/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP types and no display logic.
type ApplicationService interface {
	// ── Items ────────────────────────────────────────────────────────────────

	// ListItems returns all items ordered by expiry date ascending.
	ListItems(ctx context.Context) (*ItemListResult, error)

	// ListExpiringItems returns items in the expiring-soon window that
	// still have stock on hand.
	ListExpiringItems(ctx context.Context) (*ItemListResult, error)

	// CreateItem records inventory intake and returns the new item.
	CreateItem(ctx context.Context, req ItemRequest) (*core.Item, error)

	// UpdateItem replaces an item's mutable fields, including an
	// operator-supplied quantity.
	UpdateItem(ctx context.Context, id int, req ItemRequest) (*core.Item, error)

	// DeleteItem removes an item. Outflow history referencing it survives.
	DeleteItem(ctx context.Context, id int) error

	// ── Outflow (reservations) ───────────────────────────────────────────────

	// RecordSale reserves stock through the sale channel.
	RecordSale(ctx context.Context, req SaleRequest) (*core.OutflowRecord, error)

	// LogWaste reserves stock through the waste channel.
	LogWaste(ctx context.Context, req WasteRequest) (*core.OutflowRecord, error)

	// SendRedistribution reserves stock through the redistribution channel.
	SendRedistribution(ctx context.Context, req RedistributionRequest) (*core.OutflowRecord, error)

	// ── Outflow history ──────────────────────────────────────────────────────

	ListSales(ctx context.Context) (*SalesResult, error)
	ListWaste(ctx context.Context) (*WasteResult, error)
	ListRedistributionHistory(ctx context.Context) (*RedistributionResult, error)

	// ListRedistributionSuggestions returns items eligible for
	// redistribution as of today.
	ListRedistributionSuggestions(ctx context.Context) (*ItemListResult, error)

	// ── Suppliers ────────────────────────────────────────────────────────────

	ListSuppliers(ctx context.Context) (*SupplierListResult, error)
	CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error)

	// ── Analytics ────────────────────────────────────────────────────────────

	GetDashboardStats(ctx context.Context) (*core.DashboardStats, error)
	GetMonthlyWaste(ctx context.Context) ([]core.MonthlyWaste, error)
	GetTopWastedItems(ctx context.Context) ([]core.WastedItem, error)
	GetWasteCostByCategory(ctx context.Context) ([]core.CategoryWasteCost, error)
}
