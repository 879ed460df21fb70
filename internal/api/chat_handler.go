package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/interfaces"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/service"
)

// profileHeader carries the end-user profile id. Conversations are scoped to
// a profile within a tenant.
const profileHeader = "X-Profile-ID"

// ChatHandler handles conversation and message endpoints.
type ChatHandler struct {
	service interfaces.ConversationService
}

func NewChatHandler(svc interfaces.ConversationService) *ChatHandler {
	return &ChatHandler{service: svc}
}

func profileID(r *http.Request) (string, error) {
	id := r.Header.Get(profileHeader)
	if id == "" {
		return "", fmt.Errorf("%w: missing %s header", app_errors.ErrValidation, profileHeader)
	}
	return id, nil
}

// HandleCreateConversation godoc
// @Summary      Create a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        tenantID      path      string                             true  "Tenant ID"
// @Param        conversation  body      service.CreateConversationRequest  true  "Conversation"
// @Success      201           {object}  model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/conversations [post]
func (h *ChatHandler) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req service.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	conversation, err := h.service.CreateConversation(r.Context(), tenantID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conversation)
}

// HandleListConversations godoc
// @Summary      List conversations
// @Description  Lists the calling profile's conversations, newest first.
// @Tags         Conversations
// @Produce      json
// @Param        tenantID      path      string  true  "Tenant ID"
// @Param        X-Profile-ID  header    string  true  "Profile ID"
// @Success      200           {array}   model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/conversations [get]
func (h *ChatHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	profile, err := profileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), tenantID, profile)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if conversations == nil {
		conversations = []*model.Conversation{}
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// HandleGetMessages godoc
// @Summary      Get conversation messages
// @Description  Returns the full message history including pending and failed assistant turns.
// @Tags         Conversations
// @Produce      json
// @Param        tenantID        path      string  true  "Tenant ID"
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {array}   model.Message
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/conversations/{conversationID}/messages [get]
func (h *ChatHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	conversationID := chi.URLParam(r, "conversationID")

	messages, err := h.service.GetMessages(r.Context(), tenantID, conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// HandleStreamMessage godoc
// @Summary      Send a message and stream the answer
// @Description  Saves the user message, runs retrieval-grounded generation and streams events over SSE. The first event carries the pending assistant message id.
// @Tags         Conversations
// @Accept       json
// @Produce      text/event-stream
// @Param        tenantID        path      string                        true  "Tenant ID"
// @Param        conversationID  path      string                        true  "Conversation ID"
// @Param        X-Profile-ID    header    string                        true  "Profile ID"
// @Param        message         body      service.CreateMessageRequest  true  "Message"
// @Success      200             {object}  model.StreamEvent "Stream of events"
// @Failure      400             {object}  ErrorResponse "Sent as a stream error event"
// @Router       /v1/tenants/{tenantID}/conversations/{conversationID}/messages [post]
func (h *ChatHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	tenantID := chi.URLParam(r, "tenantID")
	conversationID := chi.URLParam(r, "conversationID")
	profile, err := profileID(r)
	if err != nil {
		sendStreamError(w, err.Error())
		return
	}

	var req service.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendStreamError(w, "Invalid request body")
		return
	}
	if err := validateRequest(req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	streamChan := make(chan model.StreamEvent)
	go h.service.HandleNewMessage(r.Context(), tenantID, profile, conversationID, &req, streamChan)

	// The channel is always drained to its close so the pipeline goroutine
	// can finish; once the client is gone, events are discarded instead of
	// written. The generation itself keeps running on a detached context
	// and still persists its result.
	clientGone := false
	for event := range streamChan {
		if clientGone || r.Context().Err() != nil {
			continue
		}
		if event.Error != "" {
			sendStreamError(w, event.Error)
			continue
		}
		if err := writeStreamEvent(w, event); err != nil {
			slog.Debug("Stream write failed, discarding remaining events",
				"conversation_id", conversationID, "error", err)
			clientGone = true
		}
	}
}
