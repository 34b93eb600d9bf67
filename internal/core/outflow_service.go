package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OutflowService provides the read side of the outflow ledger: sale, waste,
// and redistribution history. Records are immutable once written, so these
// are plain ordered reads. Item joins are best-effort — a record whose item
// was deleted shows placeholder details rather than disappearing.
type OutflowService interface {
	ListSales(ctx context.Context) ([]SaleEntry, error)
	ListWaste(ctx context.Context) ([]WasteEntry, error)
	ListRedistributions(ctx context.Context) ([]RedistributionEntry, error)
}

type outflowService struct {
	pool *pgxpool.Pool
}

// NewOutflowService constructs an OutflowService backed by PostgreSQL.
func NewOutflowService(pool *pgxpool.Pool) OutflowService {
	return &outflowService{pool: pool}
}

func (s *outflowService) ListSales(ctx context.Context) ([]SaleEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sa.sale_id, sa.item_id, sa.quantity_sold, sa.sale_date,
		       COALESCE(i.name, $1), COALESCE(i.category, $2)
		FROM sales sa
		LEFT JOIN items i ON i.item_id = sa.item_id
		ORDER BY sa.sale_date DESC, sa.sale_id DESC`,
		unknownItemName, unknownCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	entries := make([]SaleEntry, 0)
	for rows.Next() {
		var e SaleEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.QuantitySold, &e.SaleDate, &e.ItemName, &e.Category); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return entries, nil
}

func (s *outflowService) ListWaste(ctx context.Context) ([]WasteEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT w.waste_id, w.item_id, w.quantity_wasted, w.reason, w.date_logged,
		       COALESCE(i.name, $1), COALESCE(i.category, $2)
		FROM waste_log w
		LEFT JOIN items i ON i.item_id = w.item_id
		ORDER BY w.date_logged DESC, w.waste_id DESC`,
		unknownItemName, unknownCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("list waste log: %w", err)
	}
	defer rows.Close()

	entries := make([]WasteEntry, 0)
	for rows.Next() {
		var e WasteEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.QuantityWasted, &e.Reason, &e.DateLogged, &e.ItemName, &e.Category); err != nil {
			return nil, fmt.Errorf("scan waste entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waste log: %w", err)
	}
	return entries, nil
}

func (s *outflowService) ListRedistributions(ctx context.Context) ([]RedistributionEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.redistribution_id, r.item_id, r.quantity, r.destination, r.date_sent,
		       COALESCE(i.name, $1), COALESCE(i.category, $2)
		FROM redistribution r
		LEFT JOIN items i ON i.item_id = r.item_id
		ORDER BY r.date_sent DESC, r.redistribution_id DESC`,
		unknownItemName, unknownCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("list redistribution history: %w", err)
	}
	defer rows.Close()

	entries := make([]RedistributionEntry, 0)
	for rows.Next() {
		var e RedistributionEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Quantity, &e.Destination, &e.DateSent, &e.ItemName, &e.Category); err != nil {
			return nil, fmt.Errorf("scan redistribution entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate redistribution history: %w", err)
	}
	return entries, nil
}
