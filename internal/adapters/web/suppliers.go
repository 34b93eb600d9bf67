package web

import (
	"net/http"

	"freshtrack/internal/app"
)

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Suppliers)
}

// createSupplier handles POST /api/suppliers.
func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name" validate:"required"`
		Contact string `json:"contact"`
	}
	if !h.decodeJSON(w, r, &body) {
		return
	}

	supplier, err := h.svc.CreateSupplier(r.Context(), app.SupplierRequest{
		Name:    body.Name,
		Contact: body.Contact,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message    string `json:"message"`
		SupplierID int    `json:"supplier_id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Message: "Supplier added successfully", SupplierID: supplier.ID})
}
