package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/repository/specification"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/history"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/google/uuid"
)

const defaultPageSize = 20

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	UpdateTags(ctx context.Context, req *dto.UpdateTagsRequest) (*dto.UpdateTagsResponse, error)
	Reprocess(ctx context.Context, id uuid.UUID) (*dto.UploadDocumentResponse, error)
	// Delete reports false when the document does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResult, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	store            *vectorstore.Store
	histories        *history.Manager
	retriever        *retriever
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	store *vectorstore.Store,
	histories *history.Manager,
	topK int,
	minScore float64,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		store:            store,
		histories:        histories,
		retriever: &retriever{
			embedder: embeddingProvider,
			store:    store,
			topK:     topK,
			minScore: minScore,
		},
		logger: log,
	}
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc := entity.Document{
		Id:         uuid.New(),
		Title:      strings.TrimSpace(req.Title),
		Filename:   strings.TrimSpace(req.Filename),
		Content:    req.Content,
		WordCount:  len(strings.Fields(req.Content)),
		Tags:       normalizeTags(req.Tags),
		Status:     entity.DocumentStatusPending,
		UploadedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, doc.Id); err != nil {
		return nil, err
	}

	s.logger.Info("DocumentService", "Document uploaded", map[string]interface{}{
		"document_id": doc.Id,
		"words":       doc.WordCount,
	})

	return &dto.UploadDocumentResponse{
		Id:     doc.Id,
		Status: doc.Status,
	}, nil
}

func (s *documentService) List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := max(req.Page, 1)

	var filters []specification.Specification
	if q := strings.TrimSpace(req.Query); q != "" {
		filters = append(filters, specification.TitleContains{Query: q})
	}
	if tag := strings.TrimSpace(req.Tag); tag != "" {
		filters = append(filters, specification.HasTag{Tag: tag})
	}

	total, err := uow.DocumentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "uploaded_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, &dto.DocumentItem{
			Id:         d.Id,
			Title:      d.Title,
			Filename:   d.Filename,
			WordCount:  d.WordCount,
			Tags:       d.Tags,
			Status:     d.Status,
			ChunkCount: d.ChunkCount,
			UploadedAt: d.UploadedAt,
		})
	}

	return &dto.ListDocumentsResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return &dto.ShowDocumentResponse{
		Id:           doc.Id,
		Title:        doc.Title,
		Filename:     doc.Filename,
		Content:      doc.Content,
		WordCount:    doc.WordCount,
		Tags:         doc.Tags,
		Status:       doc.Status,
		ChunkCount:   doc.ChunkCount,
		ErrorMessage: doc.ErrorMessage,
		UploadedAt:   doc.UploadedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (s *documentService) UpdateTags(ctx context.Context, req *dto.UpdateTagsRequest) (*dto.UpdateTagsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	doc.Tags = normalizeTags(req.Tags)
	now := time.Now()
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	return &dto.UpdateTagsResponse{
		Id:   doc.Id,
		Tags: doc.Tags,
	}, nil
}

func (s *documentService) Reprocess(ctx context.Context, id uuid.UUID) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	doc.Status = entity.DocumentStatusPending
	doc.ErrorMessage = ""
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, doc.Id); err != nil {
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Id:     doc.Id,
		Status: doc.Status,
	}, nil
}

// Delete removes the document, its embeddings and its summary history from
// the database in one transaction, then drops the in-memory copies.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	// No-op once committed.
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return false, err
	}
	if err := uow.SummaryHistoryRepository().DeleteByDocumentIds(ctx, []uuid.UUID{id}); err != nil {
		return false, err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return false, err
	}
	if err := uow.Commit(); err != nil {
		return false, err
	}

	s.store.Remove(id.String())
	s.histories.RemoveDocument(id.String())

	s.logger.Info("DocumentService", "Document deleted", map[string]interface{}{
		"document_id": id,
	})
	return true, nil
}

func (s *documentService) SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.retriever.retrieve(ctx, uow, req.Query, req.TopK, nil)
}

func (s *documentService) enqueue(ctx context.Context, id uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishIngestDocumentMessage{DocumentId: id})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

// normalizeTags trims tags, drops empty ones and keeps the first occurrence of each.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
