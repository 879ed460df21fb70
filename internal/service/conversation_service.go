package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/llm"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/prompt"
	"tenantchat/backend/internal/registry"
	"tenantchat/backend/internal/repository"
	"tenantchat/backend/internal/retrieval"
)

// CreateMessageRequest is the payload for a new user message on the
// streaming endpoint.
type CreateMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
	// Model is optional; the tenant's default applies when empty.
	Model string `json:"model"`
}

// CreateConversationRequest starts a new conversation thread.
type CreateConversationRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
	Title     string `json:"title"`
}

// ConversationService owns the conversation message flow: retrieval, prompt
// assembly, orchestrated generation and history access.
type ConversationService struct {
	repo      repository.Repository
	retriever retrieval.Retriever
	generator Generator
	registry  *registry.Registry
}

func NewConversationService(repo repository.Repository, retriever retrieval.Retriever, generator Generator, reg *registry.Registry) *ConversationService {
	return &ConversationService{repo: repo, retriever: retriever, generator: generator, registry: reg}
}

func (s *ConversationService) CreateConversation(ctx context.Context, tenantID string, req *CreateConversationRequest) (*model.Conversation, error) {
	if _, err := s.repo.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant %s", app_errors.ErrNotFound, tenantID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	conversation := &model.Conversation{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		ProfileID: req.ProfileID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return conversation, nil
}

func (s *ConversationService) ListConversations(ctx context.Context, tenantID, profileID string) ([]*model.Conversation, error) {
	return s.repo.GetConversations(ctx, tenantID, profileID)
}

func (s *ConversationService) GetMessages(ctx context.Context, tenantID, conversationID string) ([]model.Message, error) {
	if _, err := s.repo.GetConversation(ctx, tenantID, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return nil, err
	}
	return s.repo.GetMessages(ctx, tenantID, conversationID)
}

// sendEvent delivers an event to the stream unless ctx has been canceled.
// Every send selects on ctx so an abandoned consumer can never wedge the
// pipeline goroutine.
func sendEvent(ctx context.Context, streamChan chan<- model.StreamEvent, event model.StreamEvent) bool {
	select {
	case streamChan <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// HandleNewMessage runs the full grounded-answer pipeline for one user
// message and streams events to streamChan, which is closed when the flow
// finishes. The first event carries the pending assistant message id;
// content events carry cumulative snapshots of the answer text.
func (s *ConversationService) HandleNewMessage(ctx context.Context, tenantID, profileID, conversationID string, req *CreateMessageRequest, streamChan chan<- model.StreamEvent) {
	defer close(streamChan)

	tenant, err := s.repo.GetTenant(ctx, tenantID)
	if err != nil {
		slog.Error("Could not load tenant for message", "tenant_id", tenantID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "tenant not found"})
		return
	}
	conversation, err := s.repo.GetConversation(ctx, tenantID, conversationID)
	if err != nil {
		slog.Error("Could not load conversation", "conversation_id", conversationID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "conversation not found"})
		return
	}

	history, err := s.repo.GetMessages(ctx, tenantID, conversationID)
	if err != nil {
		slog.Error("Could not load message history", "conversation_id", conversationID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "could not load history"})
		return
	}
	isFirstExchange := len(history) == 0

	userMessage := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		TenantID:       tenantID,
		Role:           model.RoleUser,
		Content:        &req.Content,
		Status:         model.MessageStatusFinalized,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, userMessage); err != nil {
		slog.Error("Could not save user message", "conversation_id", conversationID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "could not save message"})
		return
	}

	// Retrieval failures propagate to the client; there is no answer
	// without grounding.
	retrieved, err := s.retriever.Retrieve(ctx, tenantID, req.Content)
	if err != nil {
		slog.Error("Retrieval failed", "tenant_id", tenantID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "retrieval failed"})
		return
	}
	slog.Debug("Retrieval complete", "tenant_id", tenantID, "chunks", len(retrieved.ScoredChunks))

	messages, err := s.buildPromptMessages(tenant, history, retrieved, req.Content)
	if err != nil {
		slog.Error("Prompt rendering failed", "tenant_id", tenantID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "prompt rendering failed"})
		return
	}

	selectedModel := req.Model
	if selectedModel == "" {
		selectedModel = tenant.DefaultModel
	}
	genCtx := &GenerationContext{
		Messages: messages,
		Sources:  retrieved.Sources(),
		Model:    selectedModel,
	}

	stream, pendingID, err := s.generator.Generate(ctx, tenantID, profileID, conversationID, genCtx)
	if err != nil {
		slog.Error("Could not start generation", "conversation_id", conversationID, "error", err)
		sendEvent(ctx, streamChan, model.StreamEvent{Error: "could not start generation"})
		return
	}
	sendEvent(ctx, streamChan, model.StreamEvent{MessageID: pendingID})

	// The stream is drained to its close even after the client goes away;
	// sendEvent returns immediately once ctx is canceled, and the generator
	// finalizes the turn regardless.
	for chunk := range stream {
		switch {
		case chunk.Error != "":
			sendEvent(ctx, streamChan, model.StreamEvent{Error: chunk.Error})
			return
		case chunk.Done:
			sendEvent(ctx, streamChan, model.StreamEvent{Done: true})
		default:
			sendEvent(ctx, streamChan, model.StreamEvent{Content: chunk.Content})
		}
	}

	if isFirstExchange && conversation.Title == "" {
		go s.nameConversation(context.WithoutCancel(ctx), tenantID, conversationID, req.Content)
	}
}

// buildPromptMessages assembles the provider message sequence: grounding
// prompt, system prompt with the serialized retrieval response, the response
// schema instruction, prior finalized turns, then the new user message.
func (s *ConversationService) buildPromptMessages(tenant *model.Tenant, history []model.Message, retrieved *retrieval.Response, content string) ([]llm.Message, error) {
	grounding, err := prompt.RenderGrounding(tenant.GroundingPrompt, tenant.Name, time.Now())
	if err != nil {
		return nil, err
	}
	system, err := prompt.RenderSystem(tenant.SystemPrompt, tenant.Name, retrieved.Serialize())
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: model.RoleSystem, Content: grounding},
		{Role: model.RoleSystem, Content: system + "\n\n" + llm.ResponseSchemaInstruction},
	}
	for _, msg := range history {
		if msg.Content == nil || msg.Status != model.MessageStatusFinalized {
			continue
		}
		messages = append(messages, llm.Message{Role: msg.Role, Content: *msg.Content})
	}
	messages = append(messages, llm.Message{Role: model.RoleUser, Content: content})
	return messages, nil
}

// nameConversation asks the naming model for a short title after the first
// exchange. Best effort: failures are logged and the conversation keeps its
// empty title.
func (s *ConversationService) nameConversation(ctx context.Context, tenantID, conversationID, firstMessage string) {
	defaults := s.registry.Defaults()
	client, ok := s.registry.ProviderClient(defaults.NamingProvider)
	if !ok {
		slog.Warn("No client for naming provider, skipping conversation naming",
			"provider", defaults.NamingProvider)
		return
	}

	req := &llm.GenerateRequest{
		Model: defaults.NamingModel,
		Messages: []llm.Message{
			{Role: model.RoleSystem, Content: "You create short, concise titles for conversations. Respond with only the title."},
			{Role: model.RoleUser, Content: fmt.Sprintf("Suggest a title for a conversation that starts with:\n\n%s", truncate(firstMessage, 200))},
		},
		Temperature: GenerationTemperature,
	}
	resp, err := client.Generate(ctx, req)
	if err != nil {
		slog.Warn("Conversation naming failed", "conversation_id", conversationID, "error", err)
		return
	}

	title := strings.Trim(strings.TrimSpace(resp.Content), `"'`)
	if title == "" {
		return
	}
	if err := s.repo.UpdateConversationTitle(ctx, tenantID, conversationID, truncate(title, 100)); err != nil {
		slog.Warn("Could not store conversation title", "conversation_id", conversationID, "error", err)
	}
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
