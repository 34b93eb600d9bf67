package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// wasteUnitCost is the fixed per-unit cost estimate used for waste cost
// reporting. It is an estimate, not a price lookup.
var wasteUnitCost = decimal.NewFromInt(5)

// ── Report types ──────────────────────────────────────────────────────────────

// DashboardStats is the headline roll-up for the dashboard.
type DashboardStats struct {
	TotalItems    int `json:"totalItems"`    // sum of on-hand quantity across items
	ExpiringCount int `json:"expiringCount"` // items ExpiringSoon with stock on hand
	TotalSales    int `json:"totalSales"`    // cumulative units sold
	TotalWaste    int `json:"totalWaste"`    // cumulative units wasted
}

// MonthlyWaste is one month's wasted-unit total, month in YYYY-MM form.
type MonthlyWaste struct {
	Month      string `json:"month"`
	TotalWaste int    `json:"total_waste"`
}

// WastedItem is one row of the top-wasted ranking.
type WastedItem struct {
	ItemName    string `json:"item_name"`
	TotalWasted int    `json:"total_wasted"`
}

// CategoryWasteCost is the estimated cost of waste for one category,
// computed as wasted units × the fixed unit cost.
type CategoryWasteCost struct {
	Category      string          `json:"category"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService provides read-only roll-ups over the item store and the
// outflow ledger. Every value is derived from current table contents on each
// call; nothing is cached, so reads always reflect the latest committed state.
type ReportingService interface {
	GetDashboardStats(ctx context.Context, today time.Time) (*DashboardStats, error)

	// GetMonthlyWaste returns per-month wasted totals for the most recent
	// 12 months that have any waste, newest first.
	GetMonthlyWaste(ctx context.Context) ([]MonthlyWaste, error)

	// GetTopWastedItems returns the top 5 items by cumulative wasted
	// quantity. Deleted items rank under a placeholder name.
	GetTopWastedItems(ctx context.Context) ([]WastedItem, error)

	// GetWasteCostByCategory returns estimated waste cost per category,
	// highest first.
	GetWasteCostByCategory(ctx context.Context) ([]CategoryWasteCost, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	pool  *pgxpool.Pool
	items ItemService
}

// NewReportingService constructs a ReportingService backed by the given pool.
// The ItemService is used for the expiring count so that the freshness
// decision routes through the classifier like every other one.
func NewReportingService(pool *pgxpool.Pool, items ItemService) ReportingService {
	return &reportingService{pool: pool, items: items}
}

func (s *reportingService) GetDashboardStats(ctx context.Context, today time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity), 0) FROM items",
	).Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("total on-hand quantity: %w", err)
	}

	expiring, err := s.items.ListExpiringItems(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("expiring count: %w", err)
	}
	stats.ExpiringCount = len(expiring)

	if err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity_sold), 0) FROM sales",
	).Scan(&stats.TotalSales); err != nil {
		return nil, fmt.Errorf("total units sold: %w", err)
	}

	if err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity_wasted), 0) FROM waste_log",
	).Scan(&stats.TotalWaste); err != nil {
		return nil, fmt.Errorf("total units wasted: %w", err)
	}

	return stats, nil
}

func (s *reportingService) GetMonthlyWaste(ctx context.Context) ([]MonthlyWaste, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT to_char(date_logged, 'YYYY-MM') AS month,
		       SUM(quantity_wasted) AS total_waste
		FROM waste_log
		GROUP BY to_char(date_logged, 'YYYY-MM')
		ORDER BY month DESC
		LIMIT 12`,
	)
	if err != nil {
		return nil, fmt.Errorf("monthly waste: %w", err)
	}
	defer rows.Close()

	months := make([]MonthlyWaste, 0)
	for rows.Next() {
		var m MonthlyWaste
		if err := rows.Scan(&m.Month, &m.TotalWaste); err != nil {
			return nil, fmt.Errorf("scan monthly waste: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly waste: %w", err)
	}
	return months, nil
}

func (s *reportingService) GetTopWastedItems(ctx context.Context) ([]WastedItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(i.name, $1) AS item_name,
		       SUM(w.quantity_wasted) AS total_wasted
		FROM waste_log w
		LEFT JOIN items i ON i.item_id = w.item_id
		GROUP BY w.item_id, i.name
		ORDER BY total_wasted DESC
		LIMIT 5`,
		unknownItemName,
	)
	if err != nil {
		return nil, fmt.Errorf("top wasted items: %w", err)
	}
	defer rows.Close()

	top := make([]WastedItem, 0)
	for rows.Next() {
		var w WastedItem
		if err := rows.Scan(&w.ItemName, &w.TotalWasted); err != nil {
			return nil, fmt.Errorf("scan top wasted item: %w", err)
		}
		top = append(top, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top wasted items: %w", err)
	}
	return top, nil
}

func (s *reportingService) GetWasteCostByCategory(ctx context.Context) ([]CategoryWasteCost, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(i.category, $1) AS category,
		       SUM(w.quantity_wasted) AS total_wasted
		FROM waste_log w
		LEFT JOIN items i ON i.item_id = w.item_id
		GROUP BY COALESCE(i.category, $1)
		ORDER BY total_wasted DESC`,
		unknownCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("waste cost by category: %w", err)
	}
	defer rows.Close()

	costs := make([]CategoryWasteCost, 0)
	for rows.Next() {
		var category string
		var totalWasted int64
		if err := rows.Scan(&category, &totalWasted); err != nil {
			return nil, fmt.Errorf("scan waste cost row: %w", err)
		}
		costs = append(costs, CategoryWasteCost{
			Category:      category,
			EstimatedCost: decimal.NewFromInt(totalWasted).Mul(wasteUnitCost),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waste cost rows: %w", err)
	}
	return costs, nil
}
