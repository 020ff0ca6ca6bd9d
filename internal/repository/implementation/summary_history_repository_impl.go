package implementation

import (
	"context"
	"errors"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/mapper"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SummaryHistoryMapper
}

func NewSummaryHistoryRepository(db *gorm.DB) contract.SummaryHistoryRepository {
	return &SummaryHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSummaryHistoryMapper(),
	}
}

func (r *SummaryHistoryRepositoryImpl) Save(ctx context.Context, history *entity.SummaryHistory) error {
	m := r.mapper.ToModel(history)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"snapshot", "total_size", "last_accessed", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*history = *r.mapper.ToEntity(m)
	return nil
}

func (r *SummaryHistoryRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.SummaryHistory, error) {
	var m model.SummaryHistory
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindAll returns snapshots least recently accessed first.
func (r *SummaryHistoryRepositoryImpl) FindAll(ctx context.Context) ([]*entity.SummaryHistory, error) {
	var models []*model.SummaryHistory
	if err := r.db.WithContext(ctx).Order("last_accessed ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SummaryHistoryRepositoryImpl) DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error {
	if len(documentIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("document_id IN ?", documentIds).Delete(&model.SummaryHistory{}).Error
}
