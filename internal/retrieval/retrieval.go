package retrieval

import (
	"context"
	"encoding/json"

	"tenantchat/backend/internal/model"
)

// Fixed retrieval policy: top-6 with re-ranking. Retries, if ever wanted,
// belong to a higher-level policy, not this adapter.
const (
	TopK   = 6
	Rerank = true
)

// ScoredChunk is one ranked result from the knowledge-base service.
type ScoredChunk struct {
	DocumentID       string         `json:"document_id"`
	DocumentName     string         `json:"document_name"`
	Text             string         `json:"text"`
	Score            float64        `json:"score"`
	DocumentMetadata map[string]any `json:"document_metadata,omitempty"`
}

// Response is a retrieval result. raw, when set, preserves the service's
// response bytes verbatim for prompt inclusion.
type Response struct {
	ScoredChunks []ScoredChunk `json:"scored_chunks"`

	raw []byte
}

// Sources derives the citation records attached to the assistant message:
// the document's own metadata plus the identifying fields.
func (r *Response) Sources() []model.SourceRecord {
	sources := make([]model.SourceRecord, 0, len(r.ScoredChunks))
	for _, chunk := range r.ScoredChunks {
		sources = append(sources, model.SourceRecord{
			DocumentID:   chunk.DocumentID,
			DocumentName: chunk.DocumentName,
			Metadata:     chunk.DocumentMetadata,
		})
	}
	return sources
}

// Serialize returns the full response as a JSON string for the system-prompt
// context. The whole response goes in, not just the chunk text, so the model
// sees scores and metadata too.
func (r *Response) Serialize() string {
	if len(r.raw) > 0 {
		return string(r.raw)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ParseResponse decodes a service response, keeping the original bytes for
// verbatim prompt passthrough.
func ParseResponse(raw []byte) (*Response, error) {
	var result Response
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	result.raw = raw
	return &result, nil
}

// Retriever queries a tenant-scoped partition of the knowledge base. Errors
// propagate to the caller; no retry happens at this layer.
type Retriever interface {
	Retrieve(ctx context.Context, partition, query string) (*Response, error)
}

// Indexer ingests document chunks into a partition. Only the embedded index
// implements it; remote deployments ingest through the hosted service.
type Indexer interface {
	IndexDocument(ctx context.Context, partition string, source model.SourceRecord, content string) error
}
