package web

import (
	"net/http"

	"freshtrack/internal/app"
)

// recordSale handles POST /api/sales.
func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID       int    `json:"item_id" validate:"required,gt=0"`
		QuantitySold int    `json:"quantity_sold" validate:"required,gt=0"`
		SaleDate     string `json:"sale_date" validate:"required"`
	}
	if !h.decodeJSON(w, r, &body) {
		return
	}

	record, err := h.svc.RecordSale(r.Context(), app.SaleRequest{
		ItemID:       body.ItemID,
		QuantitySold: body.QuantitySold,
		SaleDate:     body.SaleDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
		SaleID  int    `json:"sale_id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Message: "Sale recorded successfully", SaleID: record.ID})
}

// listSales handles GET /api/sales.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSales(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Sales)
}

// logWaste handles POST /api/waste.
func (h *Handler) logWaste(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID         int    `json:"item_id" validate:"required,gt=0"`
		QuantityWasted int    `json:"quantity_wasted" validate:"required,gt=0"`
		Reason         string `json:"reason" validate:"required"`
		DateLogged     string `json:"date_logged" validate:"required"`
	}
	if !h.decodeJSON(w, r, &body) {
		return
	}

	record, err := h.svc.LogWaste(r.Context(), app.WasteRequest{
		ItemID:         body.ItemID,
		QuantityWasted: body.QuantityWasted,
		Reason:         body.Reason,
		DateLogged:     body.DateLogged,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
		WasteID int    `json:"waste_id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Message: "Waste logged successfully", WasteID: record.ID})
}

// listWaste handles GET /api/waste.
func (h *Handler) listWaste(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListWaste(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Waste)
}

// redistributionSuggestions handles GET /api/redistribution.
func (h *Handler) redistributionSuggestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRedistributionSuggestions(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Items)
}

// sendRedistribution handles POST /api/redistribution/send.
func (h *Handler) sendRedistribution(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID      int    `json:"item_id" validate:"required,gt=0"`
		Quantity    int    `json:"quantity" validate:"required,gt=0"`
		Destination string `json:"destination" validate:"required"`
		DateSent    string `json:"date_sent" validate:"required"`
	}
	if !h.decodeJSON(w, r, &body) {
		return
	}

	record, err := h.svc.SendRedistribution(r.Context(), app.RedistributionRequest{
		ItemID:      body.ItemID,
		Quantity:    body.Quantity,
		Destination: body.Destination,
		DateSent:    body.DateSent,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Message          string `json:"message"`
		RedistributionID int    `json:"redistribution_id"`
	}
	writeJSONStatus(w, http.StatusCreated, response{
		Message:          "Redistribution recorded successfully",
		RedistributionID: record.ID,
	})
}

// redistributionHistory handles GET /api/redistribution/history.
func (h *Handler) redistributionHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRedistributionHistory(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Redistributions)
}
