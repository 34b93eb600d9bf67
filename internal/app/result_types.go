package app

import "freshtrack/internal/core"

// ItemListResult wraps an item listing.
type ItemListResult struct {
	Items []core.Item `json:"items"`
}

// SalesResult wraps the sales history.
type SalesResult struct {
	Sales []core.SaleEntry `json:"sales"`
}

// WasteResult wraps the waste log.
type WasteResult struct {
	Waste []core.WasteEntry `json:"waste"`
}

// RedistributionResult wraps the redistribution history.
type RedistributionResult struct {
	Redistributions []core.RedistributionEntry `json:"redistributions"`
}

// SupplierListResult wraps the supplier directory listing.
type SupplierListResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}
