package mapper

import (
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type SummaryHistoryMapper struct{}

func NewSummaryHistoryMapper() *SummaryHistoryMapper {
	return &SummaryHistoryMapper{}
}

func (m *SummaryHistoryMapper) ToEntity(h *model.SummaryHistory) *entity.SummaryHistory {
	if h == nil {
		return nil
	}

	return &entity.SummaryHistory{
		DocumentId: h.DocumentId,
		History:    h.Snapshot.Data(),
		UpdatedAt:  h.UpdatedAt,
	}
}

func (m *SummaryHistoryMapper) ToModel(h *entity.SummaryHistory) *model.SummaryHistory {
	if h == nil {
		return nil
	}

	return &model.SummaryHistory{
		DocumentId:   h.DocumentId,
		Snapshot:     datatypes.NewJSONType(h.History),
		TotalSize:    h.History.TotalSize,
		LastAccessed: h.History.LastAccessed,
		UpdatedAt:    h.UpdatedAt,
	}
}

func (m *SummaryHistoryMapper) ToEntities(histories []*model.SummaryHistory) []*entity.SummaryHistory {
	entities := make([]*entity.SummaryHistory, len(histories))
	for i, h := range histories {
		entities[i] = m.ToEntity(h)
	}
	return entities
}
