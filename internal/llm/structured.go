package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredResponse is the schema every generation is constrained to: a
// single message field. Providers are instructed to emit exactly this object.
type StructuredResponse struct {
	Message string `json:"message"`
}

// ResponseSchemaInstruction is appended to the system prompt so that models
// without native structured-output support still conform.
const ResponseSchemaInstruction = `Respond with a single JSON object of the form {"message": "<your full answer>"} and nothing else.`

// ParseStructured decodes the accumulated stream output into the response
// schema. Markdown code fences around the object are tolerated; anything
// else that fails to decode, or decodes without a message, is an error and
// leaves the caller's pending message unfinalized.
func ParseStructured(raw string) (*StructuredResponse, error) {
	trimmed := trimFences(raw)

	var resp StructuredResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, fmt.Errorf("stream did not produce a structured object: %w", err)
	}
	if resp.Message == "" {
		return nil, fmt.Errorf("structured object has no message field")
	}
	return &resp, nil
}

func trimFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// PartialMessage extracts the message value from a possibly truncated
// structured response, so stream consumers render readable text instead of
// the raw object. ok stays false until the value's opening quote has
// arrived; after that each call returns the text decoded so far.
func PartialMessage(raw string) (string, bool) {
	trimmed := trimFences(raw)
	idx := strings.Index(trimmed, `"message"`)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(trimmed[idx+len(`"message"`):], " \t\r\n")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	rest = rest[1:]

	var b strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '"' {
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(rest) {
			// Escape split across chunks; the next snapshot completes it.
			break
		}
		i++
		switch rest[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"', '\\', '/':
			b.WriteByte(rest[i])
		default:
			// Unicode escapes only render once the finalized value is
			// decoded for real; stop the preview here.
			return b.String(), true
		}
	}
	return b.String(), true
}
