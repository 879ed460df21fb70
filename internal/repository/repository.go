package repository

import (
	"context"

	"tenantchat/backend/internal/model"
)

// Repository is the persistence interface for tenants, conversations and
// messages. Implementations must provide atomic single-row create/update
// semantics; the service layer relies on that instead of its own locking.
type Repository interface {
	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	UpdateTenantSettings(ctx context.Context, tenant *model.Tenant) error
	// IsSlugAvailable reports whether slug is unused by any tenant other
	// than excludeTenantID (pass "" to check against all tenants).
	IsSlugAvailable(ctx context.Context, slug, excludeTenantID string) (bool, error)

	CreateConversation(ctx context.Context, conversation *model.Conversation) error
	GetConversations(ctx context.Context, tenantID, profileID string) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, tenantID, conversationID string) (*model.Conversation, error)
	UpdateConversationTitle(ctx context.Context, tenantID, conversationID, title string) error

	CreateMessage(ctx context.Context, message *model.Message) error
	GetMessages(ctx context.Context, tenantID, conversationID string) ([]model.Message, error)
	// UpdateMessageContent finalizes a pending assistant message. The
	// tenant/profile/conversation scoping is a security invariant: an id
	// match alone is not enough to write.
	UpdateMessageContent(ctx context.Context, tenantID, profileID, conversationID, messageID, content string) error
	// MarkMessageFailed moves a pending message to the failed terminal
	// state, same scoping rules as UpdateMessageContent.
	MarkMessageFailed(ctx context.Context, tenantID, profileID, conversationID, messageID, errorMessage string) error
}
