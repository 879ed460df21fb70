package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantchat/backend/internal/model"
)

// hoursEmbed is a deterministic stand-in embedding: texts about opening
// hours land on one axis, everything else on another.
func hoursEmbed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 3)
	if strings.Contains(strings.ToLower(text), "hours") {
		v[0] = 1
	} else {
		v[1] = 1
	}
	return v, nil
}

func TestMemoryRetriever_IndexAndRetrieve(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRetriever(hoursEmbed)

	indexer, ok := r.(Indexer)
	require.True(t, ok, "the embedded retriever must accept documents")

	require.NoError(t, indexer.IndexDocument(ctx, "t1", model.SourceRecord{
		DocumentID:   "d1",
		DocumentName: "faq.md",
		Metadata:     map[string]any{"lang": "en"},
	}, "Our opening hours are 9 to 5"))
	require.NoError(t, indexer.IndexDocument(ctx, "t1", model.SourceRecord{
		DocumentID:   "d2",
		DocumentName: "pricing.md",
	}, "Plans start at ten dollars a month"))

	resp, err := r.Retrieve(ctx, "t1", "what are your hours")
	require.NoError(t, err)
	require.Len(t, resp.ScoredChunks, 2)

	best := resp.ScoredChunks[0]
	assert.Equal(t, "d1", best.DocumentID)
	assert.Equal(t, "faq.md", best.DocumentName)
	assert.Contains(t, best.Text, "opening hours")
	assert.Equal(t, "en", best.DocumentMetadata["lang"])
	assert.Greater(t, best.Score, resp.ScoredChunks[1].Score)
}

func TestMemoryRetriever_PartitionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRetriever(hoursEmbed)

	indexer := r.(Indexer)
	require.NoError(t, indexer.IndexDocument(ctx, "t1", model.SourceRecord{
		DocumentID:   "d1",
		DocumentName: "faq.md",
	}, "Our opening hours are 9 to 5"))

	resp, err := r.Retrieve(ctx, "t2", "what are your hours")
	require.NoError(t, err)
	assert.Empty(t, resp.ScoredChunks)
}
