package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemService owns the item rows: intake, administrative edits, deletion,
// and the read paths that feed listings and alerts. Quantity decrements do
// NOT go through this service — that is ReservationService's job. Update's
// quantity field is an operator override and deliberately skips reservation
// checks.
type ItemService interface {
	// CreateItem records inventory intake. Quantity is stored as supplied.
	CreateItem(ctx context.Context, input ItemInput) (*Item, error)

	// UpdateItem replaces all mutable fields, including a direct quantity
	// set (correction path). Returns ErrItemNotFound if the id does not resolve.
	UpdateItem(ctx context.Context, id int, input ItemInput) (*Item, error)

	// DeleteItem removes the item row. Ledger entries referencing it are
	// left in place and dangle from then on.
	DeleteItem(ctx context.Context, id int) error

	// GetItem returns a single item with its best-effort supplier name.
	GetItem(ctx context.Context, id int) (*Item, error)

	// ListItems returns all items ordered by expiry_date ascending, each
	// with a best-effort supplier name (nil when the supplier is missing).
	ListItems(ctx context.Context) ([]Item, error)

	// ListExpiringItems returns items classified ExpiringSoon as of today
	// that still have stock on hand, ordered by expiry_date ascending.
	ListExpiringItems(ctx context.Context, today time.Time) ([]Item, error)

	// ListRedistributionCandidates returns items satisfying the
	// redistribution eligibility policy as of today, ordered by expiry_date.
	ListRedistributionCandidates(ctx context.Context, today time.Time) ([]Item, error)
}

type itemService struct {
	pool *pgxpool.Pool
}

// NewItemService constructs an ItemService backed by PostgreSQL.
func NewItemService(pool *pgxpool.Pool) ItemService {
	return &itemService{pool: pool}
}

// validateItemInput rejects malformed intake/edit requests before any
// storage access.
func validateItemInput(input ItemInput) (purchase, expiry time.Time, err error) {
	if input.Name == "" {
		return purchase, expiry, validationErr("name", "must not be empty")
	}
	if !input.Category.Valid() {
		return purchase, expiry, validationErr("category", fmt.Sprintf("unrecognized category %q", input.Category))
	}
	if input.Quantity < 0 {
		return purchase, expiry, validationErr("quantity", "must not be negative")
	}
	purchase, err = time.Parse("2006-01-02", input.PurchaseDate)
	if err != nil {
		return purchase, expiry, validationErr("purchase_date", "must be YYYY-MM-DD")
	}
	expiry, err = time.Parse("2006-01-02", input.ExpiryDate)
	if err != nil {
		return purchase, expiry, validationErr("expiry_date", "must be YYYY-MM-DD")
	}
	return purchase, expiry, nil
}

func (s *itemService) CreateItem(ctx context.Context, input ItemInput) (*Item, error) {
	purchase, expiry, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item := &Item{}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO items (name, category, quantity, purchase_date, expiry_date, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING item_id, name, category, quantity, purchase_date, expiry_date, supplier_id, created_at, updated_at`,
		input.Name, input.Category, input.Quantity, purchase, expiry, input.SupplierID,
	).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity,
		&item.PurchaseDate, &item.ExpiryDate, &item.SupplierID,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create item %q: %w", input.Name, err)
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int, input ItemInput) (*Item, error) {
	purchase, expiry, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item := &Item{}
	err = s.pool.QueryRow(ctx, `
		UPDATE items
		SET name = $1, category = $2, quantity = $3, purchase_date = $4,
		    expiry_date = $5, supplier_id = $6, updated_at = NOW()
		WHERE item_id = $7
		RETURNING item_id, name, category, quantity, purchase_date, expiry_date, supplier_id, created_at, updated_at`,
		input.Name, input.Category, input.Quantity, purchase, expiry, input.SupplierID, id,
	).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity,
		&item.PurchaseDate, &item.ExpiryDate, &item.SupplierID,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update item %d: %w", id, ErrItemNotFound)
		}
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM items WHERE item_id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete item %d: %w", id, ErrItemNotFound)
	}
	return nil
}

// itemSelect is the shared projection for item reads. The supplier join is a
// LEFT JOIN on purpose: a dangling supplier_id degrades to a NULL name.
const itemSelect = `
	SELECT i.item_id, i.name, i.category, i.quantity,
	       i.purchase_date, i.expiry_date, i.supplier_id,
	       s.name AS supplier_name,
	       i.created_at, i.updated_at
	FROM items i
	LEFT JOIN suppliers s ON s.supplier_id = i.supplier_id`

func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity,
		&item.PurchaseDate, &item.ExpiryDate, &item.SupplierID,
		&item.SupplierName, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id int) (*Item, error) {
	item, err := scanItem(s.pool.QueryRow(ctx, itemSelect+" WHERE i.item_id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
		}
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, itemSelect+" ORDER BY i.expiry_date ASC, i.item_id ASC")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// ListExpiringItems filters the full listing through the classifier rather
// than duplicating the date arithmetic in SQL, so the alert window lives in
// exactly one place.
func (s *itemService) ListExpiringItems(ctx context.Context, today time.Time) ([]Item, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	expiring := make([]Item, 0)
	for _, item := range items {
		if item.Quantity > 0 && Classify(item.ExpiryDate, today) == ExpiringSoon {
			expiring = append(expiring, item)
		}
	}
	return expiring, nil
}

func (s *itemService) ListRedistributionCandidates(ctx context.Context, today time.Time) ([]Item, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]Item, 0)
	for _, item := range items {
		if IsRedistributionCandidate(item, today) {
			candidates = append(candidates, item)
		}
	}
	return candidates, nil
}
