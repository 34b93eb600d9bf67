package web

import "net/http"

// dashboardStats handles GET /api/analytics/dashboard-stats.
func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetDashboardStats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

// monthlyWaste handles GET /api/analytics/monthly-waste.
func (h *Handler) monthlyWaste(w http.ResponseWriter, r *http.Request) {
	months, err := h.svc.GetMonthlyWaste(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, months)
}

// topWasted handles GET /api/analytics/top-wasted.
func (h *Handler) topWasted(w http.ResponseWriter, r *http.Request) {
	top, err := h.svc.GetTopWastedItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, top)
}

// wasteCost handles GET /api/analytics/waste-cost.
func (h *Handler) wasteCost(w http.ResponseWriter, r *http.Request) {
	costs, err := h.svc.GetWasteCostByCategory(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, costs)
}
