package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/repository"
	"tenantchat/backend/internal/retrieval"
)

// IndexDocumentRequest adds one document chunk to the tenant's knowledge
// partition. DocumentID is optional; a fresh id is assigned when empty.
type IndexDocumentRequest struct {
	DocumentID   string            `json:"documentId"`
	DocumentName string            `json:"documentName" validate:"required,min=1"`
	Content      string            `json:"content" validate:"required,min=1"`
	Metadata     map[string]string `json:"metadata"`
}

// DocumentService ingests documents into the embedded retrieval index. In
// remote retrieval mode there is no indexer and ingest requests are
// rejected; documents go through the hosted service instead.
type DocumentService struct {
	repo    repository.Repository
	indexer retrieval.Indexer
}

// NewDocumentService wires the ingest flow. indexer may be nil when the
// deployment serves retrieval remotely.
func NewDocumentService(repo repository.Repository, indexer retrieval.Indexer) *DocumentService {
	return &DocumentService{repo: repo, indexer: indexer}
}

// IndexDocument embeds and stores one document chunk in the tenant's
// partition, returning the citation record future retrievals will carry.
func (s *DocumentService) IndexDocument(ctx context.Context, tenantID string, req *IndexDocumentRequest) (*model.SourceRecord, error) {
	if s.indexer == nil {
		return nil, fmt.Errorf("%w: document ingest is only available in local retrieval mode", app_errors.ErrValidation)
	}

	if _, err := s.repo.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant %s", app_errors.ErrNotFound, tenantID)
		}
		return nil, err
	}

	source := model.SourceRecord{
		DocumentID:   req.DocumentID,
		DocumentName: req.DocumentName,
	}
	if source.DocumentID == "" {
		source.DocumentID = uuid.NewString()
	}
	if len(req.Metadata) > 0 {
		source.Metadata = make(map[string]any, len(req.Metadata))
		for k, v := range req.Metadata {
			source.Metadata[k] = v
		}
	}

	if err := s.indexer.IndexDocument(ctx, tenantID, source, req.Content); err != nil {
		return nil, fmt.Errorf("could not index document: %w", err)
	}
	slog.Info("Indexed document", "tenant_id", tenantID, "document_id", source.DocumentID)
	return &source, nil
}
