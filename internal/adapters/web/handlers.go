package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"freshtrack/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc      app.ApplicationService
	validate *validator.Validate
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{
		svc:      svc,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	// ── Items ────────────────────────────────────────────────────────────────
	r.Get("/api/items", h.listItems)
	r.Get("/api/items/expiring", h.listExpiringItems)
	r.Post("/api/items", h.createItem)
	r.Put("/api/items/{id}", h.updateItem)
	r.Delete("/api/items/{id}", h.deleteItem)

	// ── Suppliers ────────────────────────────────────────────────────────────
	r.Get("/api/suppliers", h.listSuppliers)
	r.Post("/api/suppliers", h.createSupplier)

	// ── Outflow channels ────────────────────────────────────────────────────
	r.Post("/api/sales", h.recordSale)
	r.Get("/api/sales", h.listSales)
	r.Post("/api/waste", h.logWaste)
	r.Get("/api/waste", h.listWaste)
	r.Get("/api/redistribution", h.redistributionSuggestions)
	r.Post("/api/redistribution/send", h.sendRedistribution)
	r.Get("/api/redistribution/history", h.redistributionHistory)

	// ── Analytics ────────────────────────────────────────────────────────────
	r.Get("/api/analytics/dashboard-stats", h.dashboardStats)
	r.Get("/api/analytics/monthly-waste", h.monthlyWaste)
	r.Get("/api/analytics/top-wasted", h.topWasted)
	r.Get("/api/analytics/waste-cost", h.wasteCost)

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// pathID extracts the {id} URL parameter as an integer.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// decodeJSON decodes the request body into v and validates its struct tags.
// On failure it writes the error response and returns false. Returns HTTP 413
// when the body exceeds the limit set by RequestBodyLimit; 400 otherwise.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, r, "invalid request: "+err.Error(), "VALIDATION", http.StatusBadRequest)
		return false
	}
	return true
}
