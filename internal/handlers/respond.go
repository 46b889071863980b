package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP statuses. Unknown errors are
// logged and surfaced as opaque 500s.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound), errors.Is(err, tenant.ErrNoDomainConfigured):
		status = http.StatusNotFound
	case errors.Is(err, tenant.ErrDomainAlreadyClaimed):
		status = http.StatusConflict
	case errors.Is(err, tenant.ErrInvalidDomainType), errors.Is(err, tenant.ErrDomainTypeMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, tenant.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}
