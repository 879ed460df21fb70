package model

import (
	"encoding/json"
	"time"
)

// Tenant is an organization-scoped namespace. Conversations, retrieval
// partitions and settings all hang off a tenant.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Slug is the URL-safe identifier, unique across tenants.
	Slug string `json:"slug"`
	// GroundingPrompt and SystemPrompt override the built-in templates
	// when set. Nil means "use the default".
	GroundingPrompt *string   `json:"grounding_prompt,omitempty"`
	SystemPrompt    *string   `json:"system_prompt,omitempty"`
	DefaultModel    string    `json:"default_model"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Conversation stores metadata about one chat thread.
type Conversation struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProfileID string    `json:"profile_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message statuses. An assistant turn is created pending, then transitions
// exactly once to finalized or failed.
const (
	MessageStatusPending   = "pending"
	MessageStatusFinalized = "finalized"
	MessageStatusFailed    = "failed"
)

// Roles of conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation turn. Content is a pointer because an
// assistant turn exists before its content does.
type Message struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	TenantID       string         `json:"tenant_id"`
	Role           string         `json:"role"`
	Content        *string        `json:"content"`
	Status         string         `json:"status"`
	Model          *string        `json:"model,omitempty"`
	Provider       *string        `json:"provider,omitempty"`
	Sources        []SourceRecord `json:"sources,omitempty"`
	Error          *string        `json:"error,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// SourceRecord is a retrieved chunk's citation metadata, attached to the
// assistant message that was grounded on it. Known fields are typed; any
// provider-specific extras ride along in Metadata.
type SourceRecord struct {
	DocumentID   string         `json:"documentId"`
	DocumentName string         `json:"documentName"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// MarshalSources serializes a source list for storage. A nil list stores as
// SQL NULL rather than the string "null".
func MarshalSources(sources []SourceRecord) ([]byte, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	return json.Marshal(sources)
}

// StreamEvent is one SSE frame sent to the chat client.
type StreamEvent struct {
	// MessageID correlates the stream with the pending assistant message;
	// set on the first event only.
	MessageID string `json:"message_id,omitempty"`
	// Content is the accumulated structured message text so far.
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}
