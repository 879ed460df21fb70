package interfaces

import (
	"context"

	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/service"
)

// Service contracts consumed by the API layer. Handlers depend on these
// instead of the concrete services so they can be tested with mocks.

// ConversationService is the conversation and message flow contract.
type ConversationService interface {
	CreateConversation(ctx context.Context, tenantID string, req *service.CreateConversationRequest) (*model.Conversation, error)
	ListConversations(ctx context.Context, tenantID, profileID string) ([]*model.Conversation, error)
	GetMessages(ctx context.Context, tenantID, conversationID string) ([]model.Message, error)
	HandleNewMessage(ctx context.Context, tenantID, profileID, conversationID string, req *service.CreateMessageRequest, streamChan chan<- model.StreamEvent)
}

// TenantService is the tenant lifecycle and settings contract.
type TenantService interface {
	CheckSlug(ctx context.Context, slug, excludeTenantID string) (bool, error)
	CreateTenant(ctx context.Context, name, slug string) (*model.Tenant, error)
	GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	UpdateSettings(ctx context.Context, tenantID string, settings *service.TenantSettings) (*model.Tenant, error)
	Invite(ctx context.Context, tenantID, email string) error
}

// DocumentService is the knowledge-base ingest contract.
type DocumentService interface {
	IndexDocument(ctx context.Context, tenantID string, req *service.IndexDocumentRequest) (*model.SourceRecord, error)
}
