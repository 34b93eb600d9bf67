package app

import (
	"context"
	"time"

	"freshtrack/internal/core"
)

type appService struct {
	items        core.ItemService
	reservations core.ReservationService
	outflows     core.OutflowService
	suppliers    core.SupplierService
	reporting    core.ReportingService
	now          func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	items core.ItemService,
	reservations core.ReservationService,
	outflows core.OutflowService,
	suppliers core.SupplierService,
	reporting core.ReportingService,
) ApplicationService {
	return &appService{
		items:        items,
		reservations: reservations,
		outflows:     outflows,
		suppliers:    suppliers,
		reporting:    reporting,
		now:          time.Now,
	}
}

// ── Items ────────────────────────────────────────────────────────────────────

func (s *appService) ListItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) ListExpiringItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.items.ListExpiringItems(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func itemInput(req ItemRequest) core.ItemInput {
	return core.ItemInput{
		Name:         req.Name,
		Category:     core.ItemCategory(req.Category),
		Quantity:     req.Quantity,
		PurchaseDate: req.PurchaseDate,
		ExpiryDate:   req.ExpiryDate,
		SupplierID:   req.SupplierID,
	}
}

func (s *appService) CreateItem(ctx context.Context, req ItemRequest) (*core.Item, error) {
	return s.items.CreateItem(ctx, itemInput(req))
}

func (s *appService) UpdateItem(ctx context.Context, id int, req ItemRequest) (*core.Item, error) {
	return s.items.UpdateItem(ctx, id, itemInput(req))
}

func (s *appService) DeleteItem(ctx context.Context, id int) error {
	return s.items.DeleteItem(ctx, id)
}

// ── Outflow (reservations) ───────────────────────────────────────────────────

func (s *appService) RecordSale(ctx context.Context, req SaleRequest) (*core.OutflowRecord, error) {
	return s.reservations.Reserve(ctx, core.ReserveInput{
		ItemID:   req.ItemID,
		Quantity: req.QuantitySold,
		Channel:  core.ChannelSale,
		Date:     req.SaleDate,
	})
}

func (s *appService) LogWaste(ctx context.Context, req WasteRequest) (*core.OutflowRecord, error) {
	return s.reservations.Reserve(ctx, core.ReserveInput{
		ItemID:   req.ItemID,
		Quantity: req.QuantityWasted,
		Channel:  core.ChannelWaste,
		Date:     req.DateLogged,
		Reason:   core.WasteReason(req.Reason),
	})
}

func (s *appService) SendRedistribution(ctx context.Context, req RedistributionRequest) (*core.OutflowRecord, error) {
	return s.reservations.Reserve(ctx, core.ReserveInput{
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
		Channel:     core.ChannelRedistribution,
		Date:        req.DateSent,
		Destination: core.Destination(req.Destination),
	})
}

// ── Outflow history ──────────────────────────────────────────────────────────

func (s *appService) ListSales(ctx context.Context) (*SalesResult, error) {
	sales, err := s.outflows.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return &SalesResult{Sales: sales}, nil
}

func (s *appService) ListWaste(ctx context.Context) (*WasteResult, error) {
	waste, err := s.outflows.ListWaste(ctx)
	if err != nil {
		return nil, err
	}
	return &WasteResult{Waste: waste}, nil
}

func (s *appService) ListRedistributionHistory(ctx context.Context) (*RedistributionResult, error) {
	entries, err := s.outflows.ListRedistributions(ctx)
	if err != nil {
		return nil, err
	}
	return &RedistributionResult{Redistributions: entries}, nil
}

func (s *appService) ListRedistributionSuggestions(ctx context.Context) (*ItemListResult, error) {
	items, err := s.items.ListRedistributionCandidates(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

// ── Suppliers ────────────────────────────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	suppliers, err := s.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierListResult{Suppliers: suppliers}, nil
}

func (s *appService) CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error) {
	return s.suppliers.CreateSupplier(ctx, req.Name, req.Contact)
}

// ── Analytics ────────────────────────────────────────────────────────────────

func (s *appService) GetDashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	return s.reporting.GetDashboardStats(ctx, s.now())
}

func (s *appService) GetMonthlyWaste(ctx context.Context) ([]core.MonthlyWaste, error) {
	return s.reporting.GetMonthlyWaste(ctx)
}

func (s *appService) GetTopWastedItems(ctx context.Context) ([]core.WastedItem, error) {
	return s.reporting.GetTopWastedItems(ctx)
}

func (s *appService) GetWasteCostByCategory(ctx context.Context) ([]core.CategoryWasteCost, error) {
	return s.reporting.GetWasteCostByCategory(ctx)
}
