package prompt

import (
	"errors"
	"fmt"
	"time"

	"github.com/aymerick/raymond"
)

// ErrTemplate wraps any handlebars parse or execution failure. Template
// authors are trusted but not infallible, so these propagate to the caller
// instead of being swallowed.
var ErrTemplate = errors.New("template error")

// DefaultGroundingPrompt frames the assistant before the main instructions.
// Context: {company: {name}} plus an injected current timestamp.
const DefaultGroundingPrompt = `You are an AI assistant for {{company.name}}. You answer questions using only the knowledge base you have been given. The current date and time is {{now}}. If you are unsure of an answer, say so rather than guessing.`

// DefaultSystemPrompt is the main instruction template. Context:
// {company: {name}} plus the serialized retrieval response in chunks.
const DefaultSystemPrompt = `You are a knowledgeable assistant for {{company.name}}.

Ground every answer in the retrieved content below. Cite only what the
content supports; if the content does not answer the question, say that
{{company.name}}'s knowledge base does not cover it.

Retrieved content:
{{{chunks}}}`

// Render resolves a handlebars template against a context. It is a pure
// function with no I/O. Nested paths ({{company.name}}), conditionals and
// iteration are supported; missing optional fields render empty rather than
// failing.
func Render(source string, ctx map[string]any) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parse: %v", ErrTemplate, err)
	}
	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: exec: %v", ErrTemplate, err)
	}
	return out, nil
}

// RenderGrounding produces the grounding prompt for a company. A non-nil,
// non-empty override replaces the built-in default. now is formatted as
// ISO-8601 UTC.
func RenderGrounding(override *string, companyName string, now time.Time) (string, error) {
	source := DefaultGroundingPrompt
	if override != nil && *override != "" {
		source = *override
	}
	return Render(source, map[string]any{
		"company": map[string]any{"name": companyName},
		"now":     now.UTC().Format(time.RFC3339),
	})
}

// RenderSystem produces the main system prompt. chunks is the verbatim
// serialized retrieval response, passed through untouched.
func RenderSystem(override *string, companyName, chunks string) (string, error) {
	source := DefaultSystemPrompt
	if override != nil && *override != "" {
		source = *override
	}
	return Render(source, map[string]any{
		"company": map[string]any{"name": companyName},
		"chunks":  chunks,
	})
}
