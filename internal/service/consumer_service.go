package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/mapper"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/repository/specification"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/chunker"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/events"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	// Warm loads persisted embeddings of ready documents into the store and
	// returns how many documents were loaded.
	Warm(ctx context.Context) (int, error)
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	splitter          *chunker.Splitter
	embeddingProvider embedding.EmbeddingProvider
	store             *vectorstore.Store
	broadcaster       events.Broadcaster
	mapper            *mapper.DocumentEmbeddingMapper
	logger            logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	splitter *chunker.Splitter,
	embeddingProvider embedding.EmbeddingProvider,
	store *vectorstore.Store,
	broadcaster events.Broadcaster,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		uowFactory:        uowFactory,
		splitter:          splitter,
		embeddingProvider: embeddingProvider,
		store:             store,
		broadcaster:       broadcaster,
		mapper:            mapper.NewDocumentEmbeddingMapper(),
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. A failed job is recorded on the document and
// reported to clients; the user retries it with reprocess.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Ingest", "Invalid job payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := cs.ingest(ctx, payload.DocumentId); err != nil {
		cs.logger.Error("Ingest", "Ingestion failed", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		cs.markFailed(ctx, payload.DocumentId, err)
	}
}

func (cs *consumerService) ingest(ctx context.Context, documentId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		cs.logger.Warn("Ingest", "Document deleted before ingestion", map[string]interface{}{
			"document_id": documentId,
		})
		return nil
	}

	doc.Status = entity.DocumentStatusProcessing
	doc.ErrorMessage = ""
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	cs.broadcaster.Broadcast(events.NewDocumentEvent(events.IngestStarted, doc.Id.String(), map[string]interface{}{
		"title": doc.Title,
	}))

	started := time.Now()
	var rows []*entity.DocumentEmbedding
	for c := range cs.splitter.Chunks(doc.Content) {
		vector, err := cs.embeddingProvider.Generate(ctx, c.Text)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", c.Index, err)
		}
		rows = append(rows, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			DocumentId:     doc.Id,
			ChunkIndex:     c.Index,
			Content:        c.Text,
			StartOffset:    c.Start,
			EndOffset:      c.End,
			EmbeddingValue: vector,
			Model:          cs.embeddingProvider.Model(),
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The document may have been deleted while its chunks were embedding.
	current, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: doc.Id})
	if err != nil {
		return fmt.Errorf("reload document: %w", err)
	}
	if current == nil {
		cs.logger.Warn("Ingest", "Document deleted during ingestion", map[string]interface{}{
			"document_id": doc.Id,
		})
		return nil
	}

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return fmt.Errorf("delete old embeddings: %w", err)
	}
	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, rows); err != nil {
		return fmt.Errorf("store embeddings: %w", err)
	}

	doc.Status = entity.DocumentStatusReady
	doc.ChunkCount = len(rows)
	now := time.Now()
	doc.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return fmt.Errorf("mark ready: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	cs.store.AddEmbeddings(doc.Id.String(), cs.mapper.ToChunks(rows))

	cs.logger.Info("Ingest", "Document ingested", map[string]interface{}{
		"document_id": doc.Id,
		"chunks":      len(rows),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	cs.broadcaster.Broadcast(events.NewDocumentEvent(events.IngestCompleted, doc.Id.String(), map[string]interface{}{
		"title":  doc.Title,
		"chunks": len(rows),
	}))
	return nil
}

func (cs *consumerService) markFailed(ctx context.Context, documentId uuid.UUID, cause error) {
	cs.broadcaster.Broadcast(events.NewDocumentEvent(events.IngestFailed, documentId.String(), map[string]interface{}{
		"error": cause.Error(),
	}))

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil || doc == nil {
		return
	}
	doc.Status = entity.DocumentStatusFailed
	doc.ErrorMessage = cause.Error()
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		cs.logger.Error("Ingest", "Failed to record ingestion failure", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
	}
}

func (cs *consumerService) Warm(ctx context.Context) (int, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStatus{Status: entity.DocumentStatusReady},
		specification.OrderBy{Field: "uploaded_at"},
	)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, doc := range docs {
		rows, err := uow.DocumentEmbeddingRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: doc.Id})
		if err != nil {
			return loaded, err
		}
		cs.store.AddEmbeddings(doc.Id.String(), cs.mapper.ToChunks(rows))
		loaded++
	}

	cs.logger.Info("Ingest", "Embedding store warmed", map[string]interface{}{
		"documents": loaded,
		"chunks":    cs.store.Count(),
	})
	return loaded, nil
}
