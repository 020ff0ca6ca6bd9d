package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDocumentService struct {
	service.IDocumentService
	doc       *dto.ShowDocumentResponse
	deleted   bool
	lastList  *dto.ListDocumentsRequest
	lastTags  *dto.UpdateTagsRequest
	searchErr error
}

func (s *stubDocumentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	return &dto.UploadDocumentResponse{Id: uuid.New(), Status: "pending"}, nil
}

func (s *stubDocumentService) List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	s.lastList = req
	return &dto.ListDocumentsResponse{Items: []*dto.DocumentItem{}, Page: 1, PageSize: 20}, nil
}

func (s *stubDocumentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	return s.doc, nil
}

func (s *stubDocumentService) UpdateTags(ctx context.Context, req *dto.UpdateTagsRequest) (*dto.UpdateTagsResponse, error) {
	s.lastTags = req
	return &dto.UpdateTagsResponse{Id: req.Id, Tags: req.Tags}, nil
}

func (s *stubDocumentService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.deleted, nil
}

func (s *stubDocumentService) SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return []*dto.SemanticSearchResult{}, nil
}

type stubSummaryService struct {
	service.ISummaryService
	restored *dto.SummaryVersionResponse
	lastEdit *dto.SaveSummaryEditRequest
}

func (s *stubSummaryService) Restore(ctx context.Context, documentId uuid.UUID, versionId string) (*dto.SummaryVersionResponse, error) {
	return s.restored, nil
}

func (s *stubSummaryService) SaveEdit(ctx context.Context, req *dto.SaveSummaryEditRequest) (*dto.SaveSummaryEditResponse, error) {
	s.lastEdit = req
	return &dto.SaveSummaryEditResponse{Version: &dto.SummaryVersionResponse{Id: "v1", Text: req.Text}}, nil
}

func newTestApp(register func(r fiber.Router)) *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	register(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, serverutils.Response[json.RawMessage]) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out serverutils.Response[json.RawMessage]
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestDocumentController(t *testing.T) {
	docs := &stubDocumentService{}
	app := newTestApp(NewDocumentController(docs).RegisterRoutes)
	id := uuid.New()

	t.Run("upload validates", func(t *testing.T) {
		code, res := do(t, app, http.MethodPost, "/api/document/v1", `{"content": "hello"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, res.Success)
		assert.Equal(t, "title is required", res.Message)
	})

	t.Run("upload rejects malformed body", func(t *testing.T) {
		code, res := do(t, app, http.MethodPost, "/api/document/v1", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid request body", res.Message)
	})

	t.Run("upload", func(t *testing.T) {
		code, res := do(t, app, http.MethodPost, "/api/document/v1", `{"title": "Sync", "content": "hello"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, res.Success)
		assert.Contains(t, string(res.Data), `"status":"pending"`)
	})

	t.Run("list parses query", func(t *testing.T) {
		code, _ := do(t, app, http.MethodGet, "/api/document/v1?q=sync&tag=team&page=2&page_size=5", "")
		assert.Equal(t, http.StatusOK, code)
		require.NotNil(t, docs.lastList)
		assert.Equal(t, dto.ListDocumentsRequest{Query: "sync", Tag: "team", Page: 2, PageSize: 5}, *docs.lastList)
	})

	t.Run("show invalid id", func(t *testing.T) {
		code, res := do(t, app, http.MethodGet, "/api/document/v1/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid id", res.Message)
	})

	t.Run("show missing", func(t *testing.T) {
		code, res := do(t, app, http.MethodGet, "/api/document/v1/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Document not found", res.Message)
	})

	t.Run("update tags", func(t *testing.T) {
		code, _ := do(t, app, http.MethodPut, "/api/document/v1/"+id.String()+"/tags", `{"tags": ["a", "b"]}`)
		assert.Equal(t, http.StatusOK, code)
		require.NotNil(t, docs.lastTags)
		assert.Equal(t, id, docs.lastTags.Id)
		assert.Equal(t, []string{"a", "b"}, docs.lastTags.Tags)
	})

	t.Run("delete missing", func(t *testing.T) {
		code, _ := do(t, app, http.MethodDelete, "/api/document/v1/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("semantic search needs a query", func(t *testing.T) {
		code, res := do(t, app, http.MethodGet, "/api/document/v1/semantic-search", "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "query is required", res.Message)
	})

	t.Run("semantic search runtime down", func(t *testing.T) {
		docs.searchErr = serverutils.NewBadGatewayError("The embedding model is unavailable.", errors.New("refused"))
		defer func() { docs.searchErr = nil }()

		code, res := do(t, app, http.MethodGet, "/api/document/v1/semantic-search?q=launch", "")
		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, "The embedding model is unavailable.", res.Message)
	})
}

func TestSummaryController(t *testing.T) {
	summaries := &stubSummaryService{}
	app := newTestApp(NewSummaryController(summaries).RegisterRoutes)
	docID := uuid.New()

	t.Run("restore missing version", func(t *testing.T) {
		code, res := do(t, app, http.MethodPost, "/api/summary/v1/"+docID.String()+"/versions/v9/restore", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Version not found", res.Message)
	})

	t.Run("restore", func(t *testing.T) {
		summaries.restored = &dto.SummaryVersionResponse{Id: "v9", IsCurrent: true}
		code, res := do(t, app, http.MethodPost, "/api/summary/v1/"+docID.String()+"/versions/v9/restore", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(res.Data), `"is_current":true`)
	})

	t.Run("save edit", func(t *testing.T) {
		code, _ := do(t, app, http.MethodPost, "/api/summary/v1/"+docID.String()+"/versions", `{"text": "Edited."}`)
		assert.Equal(t, http.StatusOK, code)
		require.NotNil(t, summaries.lastEdit)
		assert.Equal(t, docID, summaries.lastEdit.DocumentId)
		assert.Equal(t, "Edited.", summaries.lastEdit.Text)
	})

	t.Run("save edit requires text", func(t *testing.T) {
		code, res := do(t, app, http.MethodPost, "/api/summary/v1/"+docID.String()+"/versions", `{}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "text is required", res.Message)
	})
}
