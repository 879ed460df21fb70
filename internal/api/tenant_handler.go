package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/interfaces"
	"tenantchat/backend/internal/service"
)

// TenantHandler handles tenant lifecycle, slug checks and settings.
type TenantHandler struct {
	service interfaces.TenantService
}

func NewTenantHandler(svc interfaces.TenantService) *TenantHandler {
	return &TenantHandler{service: svc}
}

// CreateTenantRequest registers a new organization.
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Slug string `json:"slug" validate:"required,min=1"`
}

// CheckSlugRequest asks whether a slug is free. TenantID, when set, excludes
// that tenant's own slug from the collision check so an unchanged slug stays
// valid during settings edits.
type CheckSlugRequest struct {
	Slug string `json:"slug" validate:"required,min=1"`
	// TenantID keeps the wire name the settings UI already sends.
	TenantID string `json:"tenantId"`
}

// CheckSlugResponse reports slug availability.
type CheckSlugResponse struct {
	Available bool `json:"available"`
}

// InviteRequest emails a join link to a prospective member.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleCreateTenant godoc
// @Summary      Create a tenant
// @Description  Registers a new organization with a unique slug.
// @Tags         Tenants
// @Accept       json
// @Produce      json
// @Param        tenant  body      CreateTenantRequest  true  "Tenant"
// @Success      201     {object}  model.Tenant
// @Failure      400     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Router       /v1/tenants [post]
func (h *TenantHandler) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	tenant, err := h.service.CreateTenant(r.Context(), req.Name, req.Slug)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tenant)
}

// HandleCheckSlug godoc
// @Summary      Check slug availability
// @Description  Reports whether a workspace slug is free. Passing tenantId excludes that tenant's own slug.
// @Tags         Tenants
// @Accept       json
// @Produce      json
// @Param        check  body      CheckSlugRequest  true  "Slug to check"
// @Success      200    {object}  CheckSlugResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /v1/tenants/check-slug [post]
func (h *TenantHandler) HandleCheckSlug(w http.ResponseWriter, r *http.Request) {
	var req CheckSlugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	available, err := h.service.CheckSlug(r.Context(), req.Slug, req.TenantID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CheckSlugResponse{Available: available})
}

// HandleGetTenantBySlug godoc
// @Summary      Resolve a tenant by slug
// @Description  Looks up the workspace behind a public slug, as used by join links.
// @Tags         Tenants
// @Produce      json
// @Param        slug  path      string  true  "Workspace slug"
// @Success      200   {object}  model.Tenant
// @Failure      404   {object}  ErrorResponse
// @Router       /v1/tenants/by-slug/{slug} [get]
func (h *TenantHandler) HandleGetTenantBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	tenant, err := h.service.GetTenantBySlug(r.Context(), slug)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenant)
}

// HandleGetSettings godoc
// @Summary      Get tenant settings
// @Tags         Tenants
// @Produce      json
// @Param        tenantID  path      string  true  "Tenant ID"
// @Success      200       {object}  model.Tenant
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/settings [get]
func (h *TenantHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	tenant, err := h.service.GetTenant(r.Context(), tenantID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenant)
}

// HandleUpdateSettings godoc
// @Summary      Update tenant settings
// @Description  Stores prompt overrides and the default model. The model must exist in the provider registry.
// @Tags         Tenants
// @Accept       json
// @Produce      json
// @Param        tenantID  path      string                  true  "Tenant ID"
// @Param        settings  body      service.TenantSettings  true  "Settings"
// @Success      200       {object}  model.Tenant
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/settings [put]
func (h *TenantHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var settings service.TenantSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(settings); err != nil {
		respondWithError(w, err)
		return
	}

	tenant, err := h.service.UpdateSettings(r.Context(), tenantID, &settings)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenant)
}

// HandleInvite godoc
// @Summary      Invite a member
// @Description  Emails a join link for the tenant's workspace.
// @Tags         Tenants
// @Accept       json
// @Produce      json
// @Param        tenantID  path      string         true  "Tenant ID"
// @Param        invite    body      InviteRequest  true  "Invitee"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/invites [post]
func (h *TenantHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.service.Invite(r.Context(), tenantID, req.Email); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
