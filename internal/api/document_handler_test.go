package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tenantchat/backend/internal/api"
	app_errors "tenantchat/backend/internal/errors"
	"tenantchat/backend/internal/interfaces/mocks"
	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/service"
)

func setupDocumentHandler(t *testing.T) (*api.DocumentHandler, *mocks.MockDocumentService) {
	mockSvc := mocks.NewMockDocumentService(t)
	handler := api.NewDocumentHandler(mockSvc)
	return handler, mockSvc
}

func TestDocumentHandler_HandleIndexDocument(t *testing.T) {
	t.Run("indexed chunk returns its citation record", func(t *testing.T) {
		handler, mockSvc := setupDocumentHandler(t)
		mockSvc.On("IndexDocument", mock.Anything, "t1",
			mock.MatchedBy(func(req *service.IndexDocumentRequest) bool {
				return req.DocumentName == "faq.md" && req.Content == "Open 9-5"
			})).
			Return(&model.SourceRecord{DocumentID: "d1", DocumentName: "faq.md"}, nil).Once()

		body := `{"documentName": "faq.md", "content": "Open 9-5"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/t1/documents", strings.NewReader(body))
		req = withURLParam(req, "tenantID", "t1")
		rr := httptest.NewRecorder()

		handler.HandleIndexDocument(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var source model.SourceRecord
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &source))
		assert.Equal(t, "d1", source.DocumentID)
	})

	t.Run("missing content fails validation before the service", func(t *testing.T) {
		handler, mockSvc := setupDocumentHandler(t)

		body := `{"documentName": "faq.md"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/t1/documents", strings.NewReader(body))
		req = withURLParam(req, "tenantID", "t1")
		rr := httptest.NewRecorder()

		handler.HandleIndexDocument(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "IndexDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remote retrieval mode maps to 400", func(t *testing.T) {
		handler, mockSvc := setupDocumentHandler(t)
		mockSvc.On("IndexDocument", mock.Anything, "t1", mock.Anything).
			Return(nil, app_errors.ErrValidation).Once()

		body := `{"documentName": "faq.md", "content": "Open 9-5"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/t1/documents", strings.NewReader(body))
		req = withURLParam(req, "tenantID", "t1")
		rr := httptest.NewRecorder()

		handler.HandleIndexDocument(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
