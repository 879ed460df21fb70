package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		resp, err := ParseStructured(`{"message": "Hello"}`)
		require.NoError(t, err)
		assert.Equal(t, "Hello", resp.Message)
	})

	t.Run("fenced object", func(t *testing.T) {
		resp, err := ParseStructured("```json\n{\"message\": \"Hello\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "Hello", resp.Message)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		resp, err := ParseStructured("\n  {\"message\": \"Hello\"}  \n")
		require.NoError(t, err)
		assert.Equal(t, "Hello", resp.Message)
	})

	t.Run("prose is rejected", func(t *testing.T) {
		_, err := ParseStructured("Here is my answer: hello!")
		assert.Error(t, err)
	})

	t.Run("object without a message is rejected", func(t *testing.T) {
		_, err := ParseStructured(`{"answer": "Hello"}`)
		assert.Error(t, err)
	})

	t.Run("empty output is rejected", func(t *testing.T) {
		_, err := ParseStructured("")
		assert.Error(t, err)
	})
}

func TestPartialMessage(t *testing.T) {
	t.Run("not ok before the value opens", func(t *testing.T) {
		for _, raw := range []string{"", "{", `{"mess`, `{"message"`, `{"message":`, `{"message": `} {
			_, ok := PartialMessage(raw)
			assert.False(t, ok, "raw %q", raw)
		}
	})

	t.Run("grows with the value", func(t *testing.T) {
		partial, ok := PartialMessage(`{"message": "Hel`)
		require.True(t, ok)
		assert.Equal(t, "Hel", partial)

		partial, ok = PartialMessage(`{"message": "Hello th`)
		require.True(t, ok)
		assert.Equal(t, "Hello th", partial)
	})

	t.Run("stops at the closing quote", func(t *testing.T) {
		partial, ok := PartialMessage(`{"message": "Hello"}`)
		require.True(t, ok)
		assert.Equal(t, "Hello", partial)
	})

	t.Run("decodes escapes", func(t *testing.T) {
		partial, ok := PartialMessage(`{"message": "line one\nline \"two\"`)
		require.True(t, ok)
		assert.Equal(t, "line one\nline \"two\"", partial)
	})

	t.Run("trailing backslash waits for the next chunk", func(t *testing.T) {
		partial, ok := PartialMessage(`{"message": "half\`)
		require.True(t, ok)
		assert.Equal(t, "half", partial)
	})

	t.Run("fenced object", func(t *testing.T) {
		partial, ok := PartialMessage("```json\n{\"message\": \"Hi")
		require.True(t, ok)
		assert.Equal(t, "Hi", partial)
	})
}
