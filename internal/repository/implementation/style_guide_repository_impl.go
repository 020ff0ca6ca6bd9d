package implementation

import (
	"context"
	"errors"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/mapper"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StyleGuideRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StyleGuideMapper
}

func NewStyleGuideRepository(db *gorm.DB) contract.StyleGuideRepository {
	return &StyleGuideRepositoryImpl{
		db:     db,
		mapper: mapper.NewStyleGuideMapper(),
	}
}

func (r *StyleGuideRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.StyleGuide, error) {
	var m model.StyleGuide
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StyleGuideRepositoryImpl) Save(ctx context.Context, guide *entity.StyleGuide) error {
	m := r.mapper.ToModel(guide)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*guide = *r.mapper.ToEntity(m)
	return nil
}
