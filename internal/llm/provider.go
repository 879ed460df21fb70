package llm

import (
	"context"
)

// Provider names. The registry is the single source of truth for which
// models belong to which provider; these constants only name the clients.
const (
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"
)

// Message is one role-tagged turn sent to an inference provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest carries everything a provider needs for one call.
type GenerateRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// GenerateResponse is the result of a non-streaming call.
type GenerateResponse struct {
	Content string
}

// StreamChunk is one delta from a streaming generation. Content is the
// incremental text, not the accumulated whole.
type StreamChunk struct {
	Content string
	Done    bool
	Error   string
}

// Provider is the structured-streaming generation capability shared by all
// inference backends. GenerateStream must close ch before returning and must
// respect ctx cancellation.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error
}
