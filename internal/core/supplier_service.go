package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierService is the supplier directory. Items hold supplier ids as weak
// references only, so nothing here participates in reservation or quantity
// invariants.
type SupplierService interface {
	// ListSuppliers returns all suppliers ordered by name.
	ListSuppliers(ctx context.Context) ([]Supplier, error)

	// CreateSupplier adds a directory entry.
	CreateSupplier(ctx context.Context, name, contact string) (*Supplier, error)
}

type supplierService struct {
	pool *pgxpool.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT supplier_id, name, contact, created_at FROM suppliers ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]Supplier, 0)
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, name, contact string) (*Supplier, error) {
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}

	var contactPtr *string
	if contact != "" {
		contactPtr = &contact
	}

	sup := &Supplier{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact)
		VALUES ($1, $2)
		RETURNING supplier_id, name, contact, created_at`,
		name, contactPtr,
	).Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", name, err)
	}
	return sup, nil
}
