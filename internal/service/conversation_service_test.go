package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tenantchat/backend/internal/llm"
	mock_llm "tenantchat/backend/internal/llm/mocks"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/registry"
	mock_repo "tenantchat/backend/internal/repository/mocks"
	"tenantchat/backend/internal/retrieval"
	mock_retrieval "tenantchat/backend/internal/retrieval/mocks"
)

// fakeGenerator records the generation context it was handed and replays a
// scripted chunk stream.
type fakeGenerator struct {
	gotCtx    *GenerationContext
	pendingID string
	chunks    []llm.StreamChunk
	err       error
}

func (f *fakeGenerator) Generate(ctx context.Context, tenantID, profileID, conversationID string, genCtx *GenerationContext) (<-chan llm.StreamChunk, string, error) {
	f.gotCtx = genCtx
	if f.err != nil {
		return nil, "", f.err
	}
	out := make(chan llm.StreamChunk, len(f.chunks))
	for _, c := range f.chunks {
		out <- c
	}
	close(out)
	return out, f.pendingID, nil
}

func retrievalResponse(t *testing.T, chunks ...retrieval.ScoredChunk) *retrieval.Response {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"scored_chunks": chunks})
	require.NoError(t, err)
	resp, err := retrieval.ParseResponse(raw)
	require.NoError(t, err)
	return resp
}

func collectEvents(t *testing.T, run func(chan<- model.StreamEvent)) []model.StreamEvent {
	t.Helper()
	ch := make(chan model.StreamEvent)
	done := make(chan struct{})
	var events []model.StreamEvent
	go func() {
		defer close(done)
		for ev := range ch {
			events = append(events, ev)
		}
	}()
	run(ch)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out collecting stream events")
	}
	return events
}

func TestConversationService_HandleNewMessage(t *testing.T) {
	tenant := &model.Tenant{ID: "t1", Name: "Acme Inc", Slug: "acme", DefaultModel: "gpt-4o"}
	conversation := &model.Conversation{ID: "c1", TenantID: "t1", ProfileID: "p1", Title: "Existing"}

	t.Run("full pipeline streams message id, content and done", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		retriever := mock_retrieval.NewMockRetriever(t)
		gen := &fakeGenerator{
			pendingID: "m-pending",
			chunks: []llm.StreamChunk{
				{Content: "Hel"},
				{Content: "Hello"},
				{Done: true},
			},
		}
		svc := NewConversationService(repo, retriever, gen, registry.New(nil))

		repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
		repo.On("GetConversation", mock.Anything, "t1", "c1").Return(conversation, nil).Once()
		answer := "previous answer"
		repo.On("GetMessages", mock.Anything, "t1", "c1").Return([]model.Message{
			{Role: model.RoleAssistant, Content: &answer, Status: model.MessageStatusFinalized},
		}, nil).Once()
		repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg *model.Message) bool {
			return msg.Role == model.RoleUser && msg.Content != nil && *msg.Content == "What are your hours?"
		})).Return(nil).Once()
		retriever.On("Retrieve", mock.Anything, "t1", "What are your hours?").
			Return(retrievalResponse(t, retrieval.ScoredChunk{DocumentID: "d1", DocumentName: "faq.md", Text: "Open 9-5", Score: 0.9}), nil).Once()

		events := collectEvents(t, func(ch chan<- model.StreamEvent) {
			svc.HandleNewMessage(context.Background(), "t1", "p1", "c1",
				&CreateMessageRequest{Content: "What are your hours?"}, ch)
		})

		require.NotEmpty(t, events)
		assert.Equal(t, "m-pending", events[0].MessageID)
		assert.Equal(t, "Hel", events[1].Content)
		assert.Equal(t, "Hello", events[2].Content)
		assert.True(t, events[len(events)-1].Done)

		// Tenant default model applies when the request names none.
		require.NotNil(t, gen.gotCtx)
		assert.Equal(t, "gpt-4o", gen.gotCtx.Model)
		require.Len(t, gen.gotCtx.Sources, 1)
		assert.Equal(t, "faq.md", gen.gotCtx.Sources[0].DocumentName)

		// Prompt layout: grounding system message, system prompt with the
		// serialized retrieval payload and schema instruction, history, user.
		require.Len(t, gen.gotCtx.Messages, 4)
		assert.Equal(t, model.RoleSystem, gen.gotCtx.Messages[0].Role)
		assert.Contains(t, gen.gotCtx.Messages[1].Content, "Open 9-5")
		assert.Contains(t, gen.gotCtx.Messages[1].Content, llm.ResponseSchemaInstruction)
		assert.Equal(t, "previous answer", gen.gotCtx.Messages[2].Content)
		assert.Equal(t, "What are your hours?", gen.gotCtx.Messages[3].Content)
	})

	t.Run("explicit model overrides the tenant default", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		retriever := mock_retrieval.NewMockRetriever(t)
		gen := &fakeGenerator{pendingID: "m1", chunks: []llm.StreamChunk{{Done: true}}}
		svc := NewConversationService(repo, retriever, gen, registry.New(nil))

		repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
		repo.On("GetConversation", mock.Anything, "t1", "c1").Return(conversation, nil).Once()
		repo.On("GetMessages", mock.Anything, "t1", "c1").Return([]model.Message{{Role: model.RoleUser, Status: model.MessageStatusFinalized}}, nil).Once()
		repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
		retriever.On("Retrieve", mock.Anything, "t1", "hi").Return(retrievalResponse(t), nil).Once()

		collectEvents(t, func(ch chan<- model.StreamEvent) {
			svc.HandleNewMessage(context.Background(), "t1", "p1", "c1",
				&CreateMessageRequest{Content: "hi", Model: "gemini-1.5-pro"}, ch)
		})

		require.NotNil(t, gen.gotCtx)
		assert.Equal(t, "gemini-1.5-pro", gen.gotCtx.Model)
	})

	t.Run("retrieval failure ends the stream with an error event", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		retriever := mock_retrieval.NewMockRetriever(t)
		gen := &fakeGenerator{}
		svc := NewConversationService(repo, retriever, gen, registry.New(nil))

		repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
		repo.On("GetConversation", mock.Anything, "t1", "c1").Return(conversation, nil).Once()
		repo.On("GetMessages", mock.Anything, "t1", "c1").Return(nil, nil).Once()
		repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
		retriever.On("Retrieve", mock.Anything, "t1", "hi").Return(nil, assert.AnError).Once()

		events := collectEvents(t, func(ch chan<- model.StreamEvent) {
			svc.HandleNewMessage(context.Background(), "t1", "p1", "c1",
				&CreateMessageRequest{Content: "hi"}, ch)
		})

		require.NotEmpty(t, events)
		assert.Equal(t, "retrieval failed", events[len(events)-1].Error)
		assert.Nil(t, gen.gotCtx)
	})

	t.Run("returns when the consumer is gone and the context is canceled", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		retriever := mock_retrieval.NewMockRetriever(t)
		gen := &fakeGenerator{pendingID: "m1", chunks: []llm.StreamChunk{
			{Content: "Hel"},
			{Content: "Hello"},
			{Done: true},
		}}
		svc := NewConversationService(repo, retriever, gen, registry.New(nil))

		repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
		repo.On("GetConversation", mock.Anything, "t1", "c1").Return(conversation, nil).Once()
		repo.On("GetMessages", mock.Anything, "t1", "c1").Return(nil, nil).Once()
		repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
		retriever.On("Retrieve", mock.Anything, "t1", "hi").Return(retrievalResponse(t), nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Nothing ever reads ch; the pipeline must still finish and close it.
		ch := make(chan model.StreamEvent)
		done := make(chan struct{})
		go func() {
			defer close(done)
			svc.HandleNewMessage(ctx, "t1", "p1", "c1", &CreateMessageRequest{Content: "hi"}, ch)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("pipeline goroutine wedged on an abandoned stream")
		}
		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("pending history turns are excluded from the prompt", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		retriever := mock_retrieval.NewMockRetriever(t)
		gen := &fakeGenerator{pendingID: "m1", chunks: []llm.StreamChunk{{Done: true}}}
		svc := NewConversationService(repo, retriever, gen, registry.New(nil))

		stuck := "half an answer"
		repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
		repo.On("GetConversation", mock.Anything, "t1", "c1").Return(conversation, nil).Once()
		repo.On("GetMessages", mock.Anything, "t1", "c1").Return([]model.Message{
			{Role: model.RoleAssistant, Content: &stuck, Status: model.MessageStatusPending},
			{Role: model.RoleAssistant, Content: nil, Status: model.MessageStatusFailed},
		}, nil).Once()
		repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
		retriever.On("Retrieve", mock.Anything, "t1", "hi").Return(retrievalResponse(t), nil).Once()

		collectEvents(t, func(ch chan<- model.StreamEvent) {
			svc.HandleNewMessage(context.Background(), "t1", "p1", "c1",
				&CreateMessageRequest{Content: "hi"}, ch)
		})

		require.NotNil(t, gen.gotCtx)
		// Two system messages plus the new user turn only.
		require.Len(t, gen.gotCtx.Messages, 3)
	})
}

func TestConversationService_NamesConversationAfterFirstExchange(t *testing.T) {
	repo := mock_repo.NewMockRepository(t)
	retriever := mock_retrieval.NewMockRetriever(t)
	gen := &fakeGenerator{pendingID: "m1", chunks: []llm.StreamChunk{{Done: true}}}
	namer := mock_llm.NewMockProvider(t)
	reg := registry.New(map[string]llm.Provider{llm.ProviderOpenAI: namer})
	svc := NewConversationService(repo, retriever, gen, reg)

	tenant := &model.Tenant{ID: "t1", Name: "Acme Inc", DefaultModel: "gpt-4o"}
	repo.On("GetTenant", mock.Anything, "t1").Return(tenant, nil).Once()
	repo.On("GetConversation", mock.Anything, "t1", "c1").
		Return(&model.Conversation{ID: "c1", TenantID: "t1", ProfileID: "p1"}, nil).Once()
	repo.On("GetMessages", mock.Anything, "t1", "c1").Return(nil, nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
	retriever.On("Retrieve", mock.Anything, "t1", "What are your opening hours?").
		Return(retrievalResponse(t), nil).Once()

	namer.On("Generate", mock.Anything, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
		return req.Model == "gpt-4o-mini"
	})).Return(&llm.GenerateResponse{Content: `"Opening hours"`}, nil).Once()

	titled := make(chan struct{})
	repo.On("UpdateConversationTitle", mock.Anything, "t1", "c1", "Opening hours").
		Run(func(mock.Arguments) { close(titled) }).Return(nil).Once()

	collectEvents(t, func(ch chan<- model.StreamEvent) {
		svc.HandleNewMessage(context.Background(), "t1", "p1", "c1",
			&CreateMessageRequest{Content: "What are your opening hours?"}, ch)
	})

	select {
	case <-titled:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the conversation to be named")
	}
}

func TestConversationService_CreateConversation(t *testing.T) {
	t.Run("creates for an existing tenant", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := NewConversationService(repo, nil, nil, registry.New(nil))

		repo.On("GetTenant", mock.Anything, "t1").Return(&model.Tenant{ID: "t1"}, nil).Once()
		repo.On("CreateConversation", mock.Anything, mock.MatchedBy(func(c *model.Conversation) bool {
			return c.TenantID == "t1" && c.ProfileID == "p1"
		})).Return(nil).Once()

		conv, err := svc.CreateConversation(context.Background(), "t1", &CreateConversationRequest{ProfileID: "p1"})
		require.NoError(t, err)
		assert.NotEmpty(t, conv.ID)
	})
}
