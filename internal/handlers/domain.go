// Package handlers exposes the HTTP API for the custom-domain lifecycle
// and the public booking pages.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/bookingkit/pkg/dnsverify"
	"github.com/dmitrymomot/bookingkit/pkg/domainconfig"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// DomainService is the slice of the tenant service the domain API uses.
type DomainService interface {
	SetupDomain(ctx context.Context, tenantID uuid.UUID, domain string, domainType tenant.DomainType) (*tenant.Tenant, error)
	VerifyDomain(ctx context.Context, tenantID uuid.UUID) (*dnsverify.Result, error)
	DNSConfig(ctx context.Context, tenantID uuid.UUID) (*domainconfig.Config, error)
	RemoveDomain(ctx context.Context, tenantID uuid.UUID) error
}

// DomainHandler serves the tenant-facing domain management API.
type DomainHandler struct {
	service DomainService
	log     *slog.Logger
}

// NewDomainHandler creates a DomainHandler.
func NewDomainHandler(service DomainService, log *slog.Logger) *DomainHandler {
	return &DomainHandler{service: service, log: log}
}

// Routes mounts the handler under /api/tenants/{tenantID}/domain.
func (h *DomainHandler) Routes(r chi.Router) {
	r.Route("/api/tenants/{tenantID}/domain", func(r chi.Router) {
		r.Post("/", h.setup)
		r.Delete("/", h.remove)
		r.Post("/verify", h.verify)
		r.Get("/dns-config", h.dnsConfig)
	})
}

type setupDomainRequest struct {
	Domain     string `json:"domain"`
	DomainType string `json:"domain_type"`
}

type domainStatusResponse struct {
	Domain     string `json:"domain"`
	DomainType string `json:"domain_type"`
	Verified   bool   `json:"verified"`
	SSLEnabled bool   `json:"ssl_enabled"`
}

func (h *DomainHandler) setup(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	var req setupDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	domainType, err := tenant.ParseDomainType(req.DomainType)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	t, err := h.service.SetupDomain(r.Context(), tenantID, req.Domain, domainType)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, domainStatusResponse{
		Domain:     t.CustomDomain,
		DomainType: string(t.CustomDomainType),
		Verified:   t.DomainVerified,
		SSLEnabled: t.SSLEnabled,
	})
}

func (h *DomainHandler) verify(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	result, err := h.service.VerifyDomain(r.Context(), tenantID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *DomainHandler) dnsConfig(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	cfg, err := h.service.DNSConfig(r.Context(), tenantID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (h *DomainHandler) remove(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveDomain(r.Context(), tenantID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DomainHandler) tenantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tenant id"})
		return uuid.Nil, false
	}
	return id, true
}
