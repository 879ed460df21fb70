package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	app_errors "tenantchat/backend/internal/errors"
)

// httpRetriever talks to the hosted knowledge-base service.
type httpRetriever struct {
	client *http.Client
	url    string
	apiKey string
}

// NewHTTPRetriever builds the remote retriever. url is the service base URL
// without a trailing slash.
func NewHTTPRetriever(url, apiKey string) Retriever {
	return &httpRetriever{
		client: &http.Client{},
		url:    url,
		apiKey: apiKey,
	}
}

type retrieveRequest struct {
	Partition string `json:"partition"`
	Query     string `json:"query"`
	TopK      int    `json:"top_k"`
	Rerank    bool   `json:"rerank"`
}

func (r *httpRetriever) Retrieve(ctx context.Context, partition, query string) (*Response, error) {
	body, err := json.Marshal(retrieveRequest{
		Partition: partition,
		Query:     query,
		TopK:      TopK,
		Rerank:    Rerank,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal retrieval request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+"/retrievals", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create retrieval request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieval request failed: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read retrieval response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: retrieval service returned status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(raw))
	}

	result, err := ParseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not decode retrieval response: %w", err)
	}
	return result, nil
}
