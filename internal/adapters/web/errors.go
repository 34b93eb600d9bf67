package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"freshtrack/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeDomainError maps a core error to its HTTP status and code. Conditions
// the caller can act on keep their message; anything unexpected is collapsed
// to an opaque internal error so storage detail does not leak.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrItemNotFound):
		writeError(w, r, "Item not found", "ITEM_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrInsufficientStock):
		writeError(w, r, "Insufficient quantity available", "INSUFFICIENT_STOCK", http.StatusBadRequest)
	case errors.Is(err, core.ErrUnavailable):
		writeError(w, r, "Item is busy, retry shortly", "BUSY", http.StatusServiceUnavailable)
	case errors.As(err, &validationErr):
		writeError(w, r, validationErr.Error(), "VALIDATION", http.StatusBadRequest)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus writes a JSON response with the given status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
