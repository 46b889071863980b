package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bookingkit/internal/handlers"
	"github.com/dmitrymomot/bookingkit/pkg/logger"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

type slugStore struct {
	tenant.Store
	tenants map[string]tenant.Tenant
}

func (s *slugStore) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	if t, ok := s.tenants[slug]; ok {
		return &t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func TestBookingHandler(t *testing.T) {
	t.Parallel()

	store := &slugStore{tenants: map[string]tenant.Tenant{
		"acme-cuts": {ID: uuid.New(), Name: "Acme Cuts", BookingSlug: "acme-cuts", Active: true},
		"closed":    {ID: uuid.New(), Name: "Closed Shop", BookingSlug: "closed", Active: false},
	}}
	r := chi.NewRouter()
	handlers.NewBookingHandler(store, logger.NewNope()).Routes(r)

	do := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("serves active tenant page", func(t *testing.T) {
		t.Parallel()
		rec := do("/book/acme-cuts/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Acme Cuts"`)
		assert.Contains(t, rec.Body.String(), `"/book/acme-cuts/"`)
	})

	t.Run("unknown slug 404s", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNotFound, do("/book/nope/").Code)
	})

	t.Run("inactive tenant 404s", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNotFound, do("/book/closed/").Code)
	})
}
