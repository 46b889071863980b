package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/bookingkit/middlewares"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// BookingHandler serves the public booking pages, the destination of the
// custom-domain root redirect.
type BookingHandler struct {
	store tenant.Store
	log   *slog.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(store tenant.Store, log *slog.Logger) *BookingHandler {
	return &BookingHandler{store: store, log: log}
}

// Routes mounts the handler under /book.
func (h *BookingHandler) Routes(r chi.Router) {
	r.Get("/book/{slug}/", h.page)
}

type bookingPageResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	BookingPath string `json:"booking_path"`
}

func (h *BookingHandler) page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	// The resolving middleware already fetched the tenant on custom
	// domains; skip the second lookup when the slug matches.
	var t *tenant.Tenant
	if res, ok := middlewares.TenantFromContext(r.Context()); ok && res.Tenant.BookingSlug == slug {
		t = res.Tenant
	} else {
		var err error
		t, err = h.store.FindBySlug(r.Context(), slug)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "booking page not found"})
			return
		}
		if err != nil {
			respondError(w, r, h.log, err)
			return
		}
	}
	if !t.Active {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "booking page not found"})
		return
	}

	respondJSON(w, http.StatusOK, bookingPageResponse{
		Name:        t.Name,
		Slug:        t.BookingSlug,
		BookingPath: t.BookingPath(),
	})
}
