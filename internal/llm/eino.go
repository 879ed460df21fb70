package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	app_errors "tenantchat/backend/internal/errors"
)

// einoProvider adapts an eino chat model to the Provider interface. One
// instance exists per configured inference backend; the concrete model for a
// request is selected with a per-call option, so a single client serves every
// model the provider owns.
type einoProvider struct {
	name string
	chat model.BaseChatModel
}

// NewOpenAIProvider builds the OpenAI-backed provider.
func NewOpenAIProvider(ctx context.Context, apiKey, baseURL, defaultModel string) (Provider, error) {
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   defaultModel,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}
	return &einoProvider{name: ProviderOpenAI, chat: chat}, nil
}

// NewGoogleProvider builds the Gemini-backed provider.
func NewGoogleProvider(ctx context.Context, apiKey, defaultModel string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  defaultModel,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini chat model: %w", err)
	}
	return &einoProvider{name: ProviderGoogle, chat: chat}, nil
}

// NewAnthropicProvider builds the Claude-backed provider.
func NewAnthropicProvider(ctx context.Context, apiKey, baseURL, defaultModel string) (Provider, error) {
	var baseURLPtr *string
	if baseURL != "" {
		baseURLPtr = &baseURL
	}
	chat, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     defaultModel,
		BaseURL:   baseURLPtr,
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("init claude chat model: %w", err)
	}
	return &einoProvider{name: ProviderAnthropic, chat: chat}, nil
}

func (p *einoProvider) Name() string { return p.name }

func (p *einoProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	msg, err := p.chat.Generate(ctx, toSchemaMessages(req.Messages), requestOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s generate: %v", app_errors.ErrUpstream, p.name, err)
	}
	return &GenerateResponse{Content: msg.Content}, nil
}

func (p *einoProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error {
	defer close(ch)

	reader, err := p.chat.Stream(ctx, toSchemaMessages(req.Messages), requestOptions(req)...)
	if err != nil {
		wrapped := fmt.Errorf("%w: %s stream: %v", app_errors.ErrUpstream, p.name, err)
		sendChunk(ctx, ch, StreamChunk{Error: wrapped.Error()})
		return wrapped
	}
	defer reader.Close()

	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			wrapped := fmt.Errorf("%w: %s stream recv: %v", app_errors.ErrUpstream, p.name, err)
			sendChunk(ctx, ch, StreamChunk{Error: wrapped.Error()})
			return wrapped
		}
		if !sendChunk(ctx, ch, StreamChunk{Content: chunk.Content}) {
			return ctx.Err()
		}
	}

	if !sendChunk(ctx, ch, StreamChunk{Done: true}) {
		return ctx.Err()
	}
	return nil
}

// sendChunk delivers a chunk unless the context is cancelled first, so a
// consumer that stopped draining cannot strand this goroutine.
func sendChunk(ctx context.Context, ch chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func requestOptions(req *GenerateRequest) []model.Option {
	opts := []model.Option{model.WithTemperature(req.Temperature)}
	if req.Model != "" {
		opts = append(opts, model.WithModel(req.Model))
	}
	return opts
}

func toSchemaMessages(messages []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		var role schema.RoleType
		switch msg.Role {
		case "assistant":
			role = schema.Assistant
		case "system":
			role = schema.System
		default:
			role = schema.User
		}
		out = append(out, &schema.Message{Role: role, Content: msg.Content})
	}
	return out
}
