package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/mail"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/registry"
	"tenantchat/backend/internal/repository"
)

// TenantSettings is the mutable slice of a tenant: prompt overrides and the
// default model.
type TenantSettings struct {
	GroundingPrompt *string `json:"grounding_prompt"`
	SystemPrompt    *string `json:"system_prompt"`
	DefaultModel    string  `json:"default_model" validate:"required"`
}

// TenantService owns tenant lifecycle, slug uniqueness and settings.
type TenantService struct {
	repo     repository.Repository
	registry *registry.Registry
	renderer *mail.Renderer
	sender   mail.Sender
	baseURL  string
}

func NewTenantService(repo repository.Repository, reg *registry.Registry, renderer *mail.Renderer, sender mail.Sender, baseURL string) *TenantService {
	return &TenantService{repo: repo, registry: reg, renderer: renderer, sender: sender, baseURL: baseURL}
}

// CheckSlug reports whether slug is free. A non-empty excludeTenantID keeps
// that tenant's own slug out of the collision search, so renaming a tenant
// to its current slug reads as available.
func (s *TenantService) CheckSlug(ctx context.Context, slug, excludeTenantID string) (bool, error) {
	return s.repo.IsSlugAvailable(ctx, slug, excludeTenantID)
}

// CreateTenant registers a new organization with the default model selected.
func (s *TenantService) CreateTenant(ctx context.Context, name, slug string) (*model.Tenant, error) {
	available, err := s.repo.IsSlugAvailable(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: slug %q is taken", app_errors.ErrConflict, slug)
	}

	now := time.Now().UTC()
	tenant := &model.Tenant{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         slug,
		DefaultModel: s.registry.Defaults().Model,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("could not create tenant: %w", err)
	}
	slog.Info("Created tenant", "tenant_id", tenant.ID, "slug", slug)
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error) {
	tenant, err := s.repo.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant %s", app_errors.ErrNotFound, tenantID)
		}
		return nil, err
	}
	return tenant, nil
}

// GetTenantBySlug resolves a workspace by its public slug. Join links and
// the workspace landing page address tenants this way.
func (s *TenantService) GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	tenant, err := s.repo.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: workspace %q", app_errors.ErrNotFound, slug)
		}
		return nil, err
	}
	return tenant, nil
}

// UpdateSettings stores prompt overrides and the default model. The model
// must exist in the registry; unlike generation-time fallback, persisting an
// unknown default would bake the mistake in.
func (s *TenantService) UpdateSettings(ctx context.Context, tenantID string, settings *TenantSettings) (*model.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !s.registry.IsSupported(settings.DefaultModel) {
		return nil, fmt.Errorf("%w: unknown model %q", app_errors.ErrValidation, settings.DefaultModel)
	}

	tenant.GroundingPrompt = settings.GroundingPrompt
	tenant.SystemPrompt = settings.SystemPrompt
	tenant.DefaultModel = settings.DefaultModel
	if err := s.repo.UpdateTenantSettings(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant %s", app_errors.ErrNotFound, tenantID)
		}
		return nil, err
	}
	return tenant, nil
}

// Invite emails a join link for the tenant.
func (s *TenantService) Invite(ctx context.Context, tenantID, email string) error {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/o/%s/join", s.baseURL, tenant.Slug)
	subject, html, err := s.renderer.Invite(tenant.Name, link)
	if err != nil {
		return err
	}
	if err := s.sender.Send(email, subject, html); err != nil {
		return fmt.Errorf("could not deliver invite: %w", err)
	}
	slog.Info("Sent tenant invite", "tenant_id", tenantID, "email", email)
	return nil
}
