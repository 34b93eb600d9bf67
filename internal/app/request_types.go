package app

// ItemRequest is the input for creating or updating an item. Dates are
// YYYY-MM-DD strings; SupplierID is optional (weak reference).
type ItemRequest struct {
	Name         string
	Category     string
	Quantity     int
	PurchaseDate string
	ExpiryDate   string
	SupplierID   *int
}

// SaleRequest is the input for recording a sale against an item.
type SaleRequest struct {
	ItemID       int
	QuantitySold int
	SaleDate     string
}

// WasteRequest is the input for logging waste against an item.
type WasteRequest struct {
	ItemID         int
	QuantityWasted int
	Reason         string
	DateLogged     string
}

// RedistributionRequest is the input for sending stock to a destination.
type RedistributionRequest struct {
	ItemID      int
	Quantity    int
	Destination string
	DateSent    string
}

// SupplierRequest is the input for creating a supplier directory entry.
type SupplierRequest struct {
	Name    string
	Contact string
}
