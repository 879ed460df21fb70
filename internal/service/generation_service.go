package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/llm"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/registry"
	"tenantchat/backend/internal/repository"
)

// GenerationTemperature is fixed for every request: grounded factual answers
// want consistency over creativity.
const GenerationTemperature = 0.3

// GenerationContext is the ephemeral per-request input to the orchestrator:
// the full role-tagged history, the retrieved sources, and the selected
// model. It lives for exactly one Generate call.
type GenerationContext struct {
	Messages []llm.Message
	Sources  []model.SourceRecord
	Model    string
}

// Generator is the structured streaming generation contract consumed by the
// conversation flow.
type Generator interface {
	Generate(ctx context.Context, tenantID, profileID, conversationID string, genCtx *GenerationContext) (<-chan llm.StreamChunk, string, error)
}

// GenerationService orchestrates one assistant turn: provider resolution,
// pending-message creation, dispatch to the provider's streaming client, and
// supervised finalization.
type GenerationService struct {
	repo     repository.Repository
	registry *registry.Registry
	timeout  time.Duration
}

func NewGenerationService(repo repository.Repository, reg *registry.Registry, timeout time.Duration) *GenerationService {
	return &GenerationService{repo: repo, registry: reg, timeout: timeout}
}

// Generate starts a structured streaming generation and returns immediately
// with a live chunk stream and the pending assistant message's id. The
// pending message is created before any provider I/O so the client can
// render a placeholder turn and correlate stream updates.
//
// The returned stream carries cumulative snapshots of the answer text
// followed by exactly one terminal chunk: Done on successful finalization,
// Error otherwise. Snapshots are delivered best effort; finalization never
// waits on the stream's reader. The
// pending message transitions exactly once, to finalized or failed; a hung
// provider stream is failed by the supervision timeout rather than left
// pending forever.
func (s *GenerationService) Generate(ctx context.Context, tenantID, profileID, conversationID string, genCtx *GenerationContext) (<-chan llm.StreamChunk, string, error) {
	providerName, ok := s.registry.ResolveProvider(genCtx.Model)
	if !ok {
		providerName = s.registry.Defaults().Provider
		slog.Warn("Provider not found for model, substituting default",
			"model", genCtx.Model, "provider", providerName)
	}

	client, ok := s.registry.ProviderClient(providerName)
	if !ok {
		return nil, "", fmt.Errorf("%w: no client configured for provider %s", app_errors.ErrInternal, providerName)
	}

	pending := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		TenantID:       tenantID,
		Role:           model.RoleAssistant,
		Content:        nil,
		Status:         model.MessageStatusPending,
		Model:          &genCtx.Model,
		Provider:       &providerName,
		Sources:        genCtx.Sources,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, pending); err != nil {
		return nil, "", fmt.Errorf("could not create pending message: %w", err)
	}

	req := &llm.GenerateRequest{
		Model:       genCtx.Model,
		Messages:    genCtx.Messages,
		Temperature: GenerationTemperature,
	}

	out := make(chan llm.StreamChunk)
	// Generation outlives the request: a client disconnect must not lose
	// the persisted turn, so the supervisor runs on a detached context.
	go s.supervise(context.WithoutCancel(ctx), tenantID, profileID, conversationID, pending.ID, client, req, out)

	return out, pending.ID, nil
}

// supervise drains the provider stream to completion and performs the single
// terminal state transition for the pending message. Forwarding to the
// consumer is best effort: content chunks carry a snapshot of the message
// text extracted so far, and a slow or disconnected reader only misses
// intermediate snapshots, never the finalization.
func (s *GenerationService) supervise(ctx context.Context, tenantID, profileID, conversationID, messageID string, client llm.Provider, req *llm.GenerateRequest, out chan<- llm.StreamChunk) {
	defer close(out)

	streamCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chunks := make(chan llm.StreamChunk)
	go func() {
		// The provider reports failures through the chunk stream as
		// well; the returned error is for its own callers.
		_ = client.GenerateStream(streamCtx, req, chunks)
	}()

	var accumulated strings.Builder
	var streamErr string
	for chunk := range chunks {
		if chunk.Error != "" {
			streamErr = chunk.Error
			break
		}
		if chunk.Done {
			continue
		}
		accumulated.WriteString(chunk.Content)
		partial, ok := llm.PartialMessage(accumulated.String())
		if !ok {
			continue
		}
		select {
		case out <- llm.StreamChunk{Content: partial}:
		default:
			// Consumer not ready; the next snapshot carries the full text.
		}
	}
	if streamErr == "" && streamCtx.Err() != nil {
		streamErr = streamCtx.Err().Error()
	}

	if streamErr != "" {
		s.fail(ctx, tenantID, profileID, conversationID, messageID, streamErr, out)
		return
	}

	structured, err := llm.ParseStructured(accumulated.String())
	if err != nil {
		s.fail(ctx, tenantID, profileID, conversationID, messageID, err.Error(), out)
		return
	}

	if err := s.repo.UpdateMessageContent(ctx, tenantID, profileID, conversationID, messageID, structured.Message); err != nil {
		slog.Error("Failed to finalize assistant message",
			"message_id", messageID, "conversation_id", conversationID, "error", err)
		s.emit(out, llm.StreamChunk{Error: "could not persist assistant message"})
		return
	}

	slog.Debug("Finalized assistant message", "message_id", messageID)
	s.emit(out, llm.StreamChunk{Done: true})
}

func (s *GenerationService) fail(ctx context.Context, tenantID, profileID, conversationID, messageID, reason string, out chan<- llm.StreamChunk) {
	slog.Warn("Generation failed, marking message failed",
		"message_id", messageID, "conversation_id", conversationID, "reason", reason)
	if err := s.repo.MarkMessageFailed(ctx, tenantID, profileID, conversationID, messageID, reason); err != nil {
		slog.Error("Failed to mark message failed", "message_id", messageID, "error", err)
	}
	s.emit(out, llm.StreamChunk{Error: reason})
}

func (s *GenerationService) emit(out chan<- llm.StreamChunk, chunk llm.StreamChunk) {
	// Best effort: the consumer may already be gone.
	select {
	case out <- chunk:
	case <-time.After(time.Second):
	}
}
