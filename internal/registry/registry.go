package registry

import (
	"tenantchat/backend/internal/llm"
)

// ModelDescriptor identifies one (provider, model) pair plus the display
// metadata the settings UI needs.
type ModelDescriptor struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	DisplayName string `json:"display_name"`
	Logo        string `json:"logo"`
}

// ProviderEntry groups a provider's models in table order.
type ProviderEntry struct {
	Name   string            `json:"name"`
	Logo   string            `json:"logo"`
	Models []ModelDescriptor `json:"models"`
}

// Defaults is the fixed default model/provider/naming-model triple.
type Defaults struct {
	Model          string `json:"model"`
	Provider       string `json:"provider"`
	NamingModel    string `json:"naming_model"`
	NamingProvider string `json:"naming_provider"`
}

// providerTable is the single source of truth for which models exist and who
// owns them. Extend it here; never infer a provider from a model's name.
var providerTable = []ProviderEntry{
	{
		Name: llm.ProviderOpenAI,
		Logo: "/openai.svg",
		Models: []ModelDescriptor{
			{Provider: llm.ProviderOpenAI, Model: "gpt-4o", DisplayName: "GPT-4o", Logo: "/openai.svg"},
			{Provider: llm.ProviderOpenAI, Model: "gpt-3.5-turbo", DisplayName: "GPT-3.5 Turbo", Logo: "/openai.svg"},
		},
	},
	{
		Name: llm.ProviderGoogle,
		Logo: "/gemini.svg",
		Models: []ModelDescriptor{
			{Provider: llm.ProviderGoogle, Model: "gemini-2.0-flash", DisplayName: "Gemini 2.0 Flash", Logo: "/gemini.svg"},
			{Provider: llm.ProviderGoogle, Model: "gemini-1.5-pro", DisplayName: "Gemini 1.5 Pro", Logo: "/gemini.svg"},
		},
	},
	{
		Name: llm.ProviderAnthropic,
		Logo: "/anthropic.svg",
		Models: []ModelDescriptor{
			{Provider: llm.ProviderAnthropic, Model: "claude-3-7-sonnet-latest", DisplayName: "Claude 3.7 Sonnet", Logo: "/anthropic.svg"},
			{Provider: llm.ProviderAnthropic, Model: "claude-3-5-haiku-latest", DisplayName: "Claude 3.5 Haiku", Logo: "/anthropic.svg"},
		},
	},
}

var defaultSelection = Defaults{
	Model:          "claude-3-7-sonnet-latest",
	Provider:       llm.ProviderAnthropic,
	NamingModel:    "gpt-4o-mini",
	NamingProvider: llm.ProviderOpenAI,
}

// Registry is an immutable view of the provider table plus the concrete
// client for each provider. Build it once at startup and pass it by
// reference; there is no mutable module-level state.
type Registry struct {
	providers []ProviderEntry
	byModel   map[string]string
	clients   map[string]llm.Provider
	defaults  Defaults
}

// New builds the registry from the fixed table. clients maps provider name
// to its inference client; a provider without a client is still listed, it
// just cannot be dispatched to.
func New(clients map[string]llm.Provider) *Registry {
	byModel := make(map[string]string)
	for _, entry := range providerTable {
		for _, m := range entry.Models {
			byModel[m.Model] = entry.Name
		}
	}
	return &Registry{
		providers: providerTable,
		byModel:   byModel,
		clients:   clients,
		defaults:  defaultSelection,
	}
}

// ResolveProvider returns the provider owning modelID. It never fails hard;
// the second return reports whether the model is known. Callers substitute
// the default provider on a miss.
func (r *Registry) ResolveProvider(modelID string) (string, bool) {
	provider, ok := r.byModel[modelID]
	return provider, ok
}

// IsSupported reports whether modelID appears in the table.
func (r *Registry) IsSupported(modelID string) bool {
	_, ok := r.byModel[modelID]
	return ok
}

// Models returns every descriptor in table order, for UI population.
func (r *Registry) Models() []ModelDescriptor {
	var out []ModelDescriptor
	for _, entry := range r.providers {
		out = append(out, entry.Models...)
	}
	return out
}

// Providers returns the grouped table in order.
func (r *Registry) Providers() []ProviderEntry {
	return r.providers
}

// Defaults returns the fixed default selection.
func (r *Registry) Defaults() Defaults {
	return r.defaults
}

// ProviderClient returns the inference client for a provider name.
func (r *Registry) ProviderClient(name string) (llm.Provider, bool) {
	client, ok := r.clients[name]
	return client, ok
}
