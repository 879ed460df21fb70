package retrieval

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"tenantchat/backend/internal/model"
)

// chromemRetriever serves retrievals from an embedded chromem-go index, one
// collection per tenant partition. It answers the same contract as the
// hosted service for deployments that keep documents local. chromem has no
// re-ranker, so the Rerank policy flag is a no-op here.
type chromemRetriever struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
}

// NewLocalRetriever opens (or creates) a persistent index at path.
func NewLocalRetriever(path string, embed chromem.EmbeddingFunc) (Retriever, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("could not open local index: %w", err)
	}
	return &chromemRetriever{db: db, embed: embed}, nil
}

// NewMemoryRetriever builds an index that lives for the process only. Used
// in tests and throwaway environments.
func NewMemoryRetriever(embed chromem.EmbeddingFunc) Retriever {
	return &chromemRetriever{db: chromem.NewDB(), embed: embed}
}

// NewOpenAIEmbeddingFunc adapts a langchaingo OpenAI embedder to chromem's
// embedding function.
func NewOpenAIEmbeddingFunc(apiKey, baseURL, embeddingModel string) (chromem.EmbeddingFunc, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(embeddingModel),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("could not init embedding client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("could not create embedder: %w", err)
	}
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}, nil
}

func (r *chromemRetriever) Retrieve(ctx context.Context, partition, query string) (*Response, error) {
	collection, err := r.db.GetOrCreateCollection(partition, nil, r.embed)
	if err != nil {
		return nil, fmt.Errorf("could not open partition %s: %w", partition, err)
	}

	// chromem rejects nResults above the collection size.
	n := TopK
	if count := collection.Count(); count < n {
		n = count
	}
	if n == 0 {
		return &Response{ScoredChunks: []ScoredChunk{}}, nil
	}

	results, err := collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("local retrieval query failed: %w", err)
	}

	chunks := make([]ScoredChunk, 0, len(results))
	for _, res := range results {
		chunk := ScoredChunk{
			DocumentID: res.ID,
			Text:       res.Content,
			Score:      float64(res.Similarity),
		}
		if len(res.Metadata) > 0 {
			chunk.DocumentMetadata = make(map[string]any, len(res.Metadata))
			for k, v := range res.Metadata {
				chunk.DocumentMetadata[k] = v
			}
			if name, ok := res.Metadata["document_name"]; ok {
				chunk.DocumentName = name
			}
		}
		chunks = append(chunks, chunk)
	}
	return &Response{ScoredChunks: chunks}, nil
}

// IndexDocument adds one chunk to a partition's collection so it becomes
// retrievable. The serving path never writes; only the ingest endpoint
// reaches this.
func (r *chromemRetriever) IndexDocument(ctx context.Context, partition string, source model.SourceRecord, content string) error {
	collection, err := r.db.GetOrCreateCollection(partition, nil, r.embed)
	if err != nil {
		return fmt.Errorf("could not open partition %s: %w", partition, err)
	}

	metadata := map[string]string{"document_name": source.DocumentName}
	for k, v := range source.Metadata {
		if s, ok := v.(string); ok {
			metadata[k] = s
		}
	}
	doc := chromem.Document{
		ID:       source.DocumentID,
		Content:  content,
		Metadata: metadata,
	}
	if err := collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("could not index document: %w", err)
	}
	return nil
}
