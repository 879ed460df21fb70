package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/interfaces"
	"tenantchat/backend/internal/service"
)

// DocumentHandler handles knowledge-base ingest for locally served
// retrieval.
type DocumentHandler struct {
	service interfaces.DocumentService
}

func NewDocumentHandler(svc interfaces.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// HandleIndexDocument godoc
// @Summary      Index a document chunk
// @Description  Embeds and stores one document chunk in the tenant's knowledge partition. Only available when retrieval is served from the embedded index.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        tenantID  path      string                        true  "Tenant ID"
// @Param        document  body      service.IndexDocumentRequest  true  "Document chunk"
// @Success      201       {object}  model.SourceRecord
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/tenants/{tenantID}/documents [post]
func (h *DocumentHandler) HandleIndexDocument(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req service.IndexDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	source, err := h.service.IndexDocument(r.Context(), tenantID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, source)
}
