package service

import (
	"context"
	"strings"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/repository/specification"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/chunker"
	"transcript-assistant-be/pkg/events"
	"transcript-assistant-be/pkg/facts"
	"transcript-assistant-be/pkg/history"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/rag/prompt"
	"transcript-assistant-be/pkg/rag/response"

	"github.com/google/uuid"
)

const runtimeUnavailableMessage = "The language model is unavailable. Check that the local runtime is running."

type ISummaryService interface {
	// Generate summarizes a document and stores the result as an original
	// version. A nil response means the document does not exist.
	Generate(ctx context.Context, documentId uuid.UUID) (*dto.GenerateSummaryResponse, error)
	SaveEdit(ctx context.Context, req *dto.SaveSummaryEditRequest) (*dto.SaveSummaryEditResponse, error)
	History(ctx context.Context, documentId uuid.UUID) (*dto.SummaryHistoryResponse, error)
	Restore(ctx context.Context, documentId uuid.UUID, versionId string) (*dto.SummaryVersionResponse, error)
	DeleteVersion(ctx context.Context, documentId uuid.UUID, versionId string) (bool, error)
	// LoadHistories installs every persisted snapshot into the manager.
	LoadHistories(ctx context.Context) (int, error)
}

type summaryService struct {
	uowFactory  unitofwork.RepositoryFactory
	runtime     llm.Runtime
	splitter    *chunker.Splitter
	histories   *history.Manager
	broadcaster events.Broadcaster
	logger      logger.ILogger
}

func NewSummaryService(
	uowFactory unitofwork.RepositoryFactory,
	runtime llm.Runtime,
	splitter *chunker.Splitter,
	histories *history.Manager,
	broadcaster events.Broadcaster,
	log logger.ILogger,
) ISummaryService {
	return &summaryService{
		uowFactory:  uowFactory,
		runtime:     runtime,
		splitter:    splitter,
		histories:   histories,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (s *summaryService) Generate(ctx context.Context, documentId uuid.UUID) (*dto.GenerateSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	chunks := s.splitter.Split(doc.Content)
	if len(chunks) == 0 {
		return nil, serverutils.NewBadRequestError("Document has no text to summarize")
	}

	started := time.Now()
	extracted := make([]facts.ExtractedFacts, 0, len(chunks))
	skipped := 0
	for _, c := range chunks {
		raw, err := s.runtime.Generate(ctx, prompt.FactExtraction(c.Text, c.Index, len(chunks)),
			llm.WithJSONFormat(),
			llm.WithTemperature(0.2),
		)
		if err != nil {
			return nil, serverutils.NewBadGatewayError(runtimeUnavailableMessage, err)
		}

		f, err := response.ParseFacts(raw)
		if err != nil {
			s.logger.Warn("SummaryService", "Skipping chunk with unreadable facts", map[string]interface{}{
				"document_id": documentId,
				"chunk":       c.Index,
				"error":       err.Error(),
			})
			skipped++
			continue
		}
		extracted = append(extracted, f)
	}
	if len(extracted) == 0 {
		return nil, serverutils.NewBadGatewayError("The model returned no usable facts for this document. Try again.", nil)
	}

	guide, err := loadStyleGuide(ctx, uow)
	if err != nil {
		return nil, err
	}

	text, err := s.runtime.Generate(ctx, prompt.Summary(doc.Title, facts.Merge(extracted), guide),
		llm.WithTemperature(0.4),
	)
	if err != nil {
		return nil, serverutils.NewBadGatewayError(runtimeUnavailableMessage, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, serverutils.NewBadGatewayError("The model returned an empty summary. Try again.", nil)
	}

	version, added := s.histories.AddVersion(documentId.String(), text, true, s.runtime.DefaultModel())
	if added {
		if err := s.persistHistory(ctx, uow, documentId); err != nil {
			return nil, err
		}
		s.broadcaster.Broadcast(events.NewDocumentEvent(events.SummaryCreated, documentId.String(), map[string]interface{}{
			"version_id": version.ID,
			"number":     version.Number,
		}))
	}

	s.logger.Info("SummaryService", "Summary generated", map[string]interface{}{
		"document_id":    documentId,
		"chunks":         len(chunks),
		"chunks_skipped": skipped,
		"duplicate":      !added,
		"duration_ms":    time.Since(started).Milliseconds(),
	})

	return &dto.GenerateSummaryResponse{
		Version:       s.versionResponse(documentId, version),
		Duplicate:     !added,
		ChunksTotal:   len(chunks),
		ChunksSkipped: skipped,
	}, nil
}

func (s *summaryService) SaveEdit(ctx context.Context, req *dto.SaveSummaryEditRequest) (*dto.SaveSummaryEditResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.DocumentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, serverutils.NewBadRequestError("text is required")
	}

	version, added := s.histories.AddVersion(req.DocumentId.String(), text, false, "")
	if added {
		if err := s.persistHistory(ctx, uow, req.DocumentId); err != nil {
			return nil, err
		}
	}

	return &dto.SaveSummaryEditResponse{
		Version:   s.versionResponse(req.DocumentId, version),
		Duplicate: !added,
	}, nil
}

func (s *summaryService) History(ctx context.Context, documentId uuid.UUID) (*dto.SummaryHistoryResponse, error) {
	h, ok := s.histories.Get(documentId.String())
	if !ok {
		return nil, nil
	}

	versions := make([]*dto.SummaryVersionResponse, len(h.Versions))
	for i, v := range h.Versions {
		versions[i] = toVersionResponse(v, i == h.CurrentIndex)
	}

	res := &dto.SummaryHistoryResponse{
		DocumentId:  documentId,
		Versions:    versions,
		TotalSize:   h.TotalSize,
		MaxVersions: h.MaxVersions,
	}
	if current, ok := h.Current(); ok {
		res.CurrentVersionId = current.ID
	}
	return res, nil
}

func (s *summaryService) Restore(ctx context.Context, documentId uuid.UUID, versionId string) (*dto.SummaryVersionResponse, error) {
	version, ok := s.histories.RestoreVersion(documentId.String(), versionId)
	if !ok {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.persistHistory(ctx, uow, documentId); err != nil {
		return nil, err
	}
	return toVersionResponse(version, true), nil
}

func (s *summaryService) DeleteVersion(ctx context.Context, documentId uuid.UUID, versionId string) (bool, error) {
	if !s.histories.DeleteVersion(documentId.String(), versionId) {
		return false, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.persistHistory(ctx, uow, documentId); err != nil {
		return false, err
	}
	return true, nil
}

func (s *summaryService) LoadHistories(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SummaryHistoryRepository().FindAll(ctx)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, row := range rows {
		h := row.History
		if h.DocumentID == "" {
			h.DocumentID = row.DocumentId.String()
		}
		if len(h.Versions) == 0 {
			continue
		}
		s.histories.Load(h)
		loaded++
	}

	s.logger.Info("SummaryService", "Summary histories loaded", map[string]interface{}{
		"histories":  loaded,
		"total_size": s.histories.TotalSize(),
	})
	return loaded, nil
}

// persistHistory writes the in-memory history through to the repository, or
// removes the snapshot when the history is gone.
func (s *summaryService) persistHistory(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID) error {
	h, ok := s.histories.Get(documentId.String())
	if !ok {
		return uow.SummaryHistoryRepository().DeleteByDocumentIds(ctx, []uuid.UUID{documentId})
	}
	return uow.SummaryHistoryRepository().Save(ctx, &entity.SummaryHistory{
		DocumentId: documentId,
		History:    h,
		UpdatedAt:  time.Now(),
	})
}

func (s *summaryService) versionResponse(documentId uuid.UUID, v history.Version) *dto.SummaryVersionResponse {
	h, ok := s.histories.Get(documentId.String())
	current := false
	if ok {
		if c, ok := h.Current(); ok {
			current = c.ID == v.ID
		}
	}
	return toVersionResponse(v, current)
}

func toVersionResponse(v history.Version, current bool) *dto.SummaryVersionResponse {
	return &dto.SummaryVersionResponse{
		Id:         v.ID,
		Number:     v.Number,
		Text:       v.Text,
		CreatedAt:  v.CreatedAt,
		CharCount:  v.CharCount,
		IsOriginal: v.IsOriginal,
		Model:      v.Model,
		IsCurrent:  current,
	}
}
