package unitofwork

import (
	"context"

	"transcript-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	SummaryHistoryRepository() contract.SummaryHistoryRepository
	StyleGuideRepository() contract.StyleGuideRepository
}
