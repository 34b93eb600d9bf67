package web

import (
	"net/http"

	"freshtrack/internal/app"
)

// itemBody is the JSON shape shared by create and update.
type itemBody struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Quantity     int    `json:"quantity" validate:"gte=0"`
	PurchaseDate string `json:"purchase_date" validate:"required"`
	ExpiryDate   string `json:"expiry_date" validate:"required"`
	SupplierID   *int   `json:"supplier_id"`
}

func (b itemBody) toRequest() app.ItemRequest {
	return app.ItemRequest{
		Name:         b.Name,
		Category:     b.Category,
		Quantity:     b.Quantity,
		PurchaseDate: b.PurchaseDate,
		ExpiryDate:   b.ExpiryDate,
		SupplierID:   b.SupplierID,
	}
}

// listItems handles GET /api/items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Items)
}

// listExpiringItems handles GET /api/items/expiring.
func (h *Handler) listExpiringItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListExpiringItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Items)
}

// createItem handles POST /api/items.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var body itemBody
	if !h.decodeJSON(w, r, &body) {
		return
	}

	item, err := h.svc.CreateItem(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
		ItemID  int    `json:"item_id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Message: "Item added successfully", ItemID: item.ID})
}

// updateItem handles PUT /api/items/{id}.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, "invalid item id", "VALIDATION", http.StatusBadRequest)
		return
	}

	var body itemBody
	if !h.decodeJSON(w, r, &body) {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// deleteItem handles DELETE /api/items/{id}.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, "invalid item id", "VALIDATION", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
	}
	writeJSON(w, response{Message: "Item deleted successfully"})
}
