package contract

import (
	"context"

	"transcript-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type SummaryHistoryRepository interface {
	// Save inserts or replaces the snapshot for its document.
	Save(ctx context.Context, history *entity.SummaryHistory) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.SummaryHistory, error)
	FindAll(ctx context.Context) ([]*entity.SummaryHistory, error)
	DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error
}
