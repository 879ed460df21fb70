package prompt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantchat/backend/internal/prompt"
)

func TestRender_NestedPaths(t *testing.T) {
	out, err := prompt.Render("Hello {{company.name}}!", map[string]any{
		"company": map[string]any{"name": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Acme!", out)
}

func TestRender_MissingOptionalFields(t *testing.T) {
	// A supported field missing from the context renders empty, it does
	// not surface a template-engine error.
	out, err := prompt.Render("Hello {{company.name}}, it is {{now}}.", map[string]any{
		"company": map[string]any{"name": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Acme, it is .", out)
}

func TestRender_MalformedTemplate(t *testing.T) {
	_, err := prompt.Render("Hello {{#if}", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, prompt.ErrTemplate)
}

func TestRenderGrounding_Default(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	out, err := prompt.RenderGrounding(nil, "Acme", now)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "2025-03-14T09:26:53Z")
}

func TestRenderGrounding_Override(t *testing.T) {
	override := "Custom for {{company.name}} at {{now}}"
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	out, err := prompt.RenderGrounding(&override, "Acme", now)
	require.NoError(t, err)
	assert.Equal(t, "Custom for Acme at 2025-03-14T09:26:53Z", out)
}

func TestRenderGrounding_EmptyOverrideUsesDefault(t *testing.T) {
	empty := ""
	out, err := prompt.RenderGrounding(&empty, "Acme", time.Now())
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
}

func TestRenderSystem_ChunksPassthrough(t *testing.T) {
	// The serialized retrieval response goes in verbatim, including JSON
	// quoting; the triple-stash keeps raymond from HTML-escaping it.
	chunks := `{"scored_chunks":[{"text":"a \"quoted\" value"}]}`

	out, err := prompt.RenderSystem(nil, "Acme", chunks)
	require.NoError(t, err)
	assert.Contains(t, out, chunks)
	assert.Contains(t, out, "Acme")
}

func TestRenderSystem_MalformedOverride(t *testing.T) {
	bad := "{{#each}"
	_, err := prompt.RenderSystem(&bad, "Acme", "{}")
	assert.ErrorIs(t, err, prompt.ErrTemplate)
}
