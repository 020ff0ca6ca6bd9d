package mapper

import (
	"slices"
	"time"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	tags := slices.Clone([]string(d.Tags))
	if tags == nil {
		tags = []string{}
	}

	return &entity.Document{
		Id:           d.Id,
		Title:        d.Title,
		Filename:     d.Filename,
		Content:      d.Content,
		WordCount:    d.WordCount,
		Tags:         tags,
		Status:       d.Status,
		ChunkCount:   d.ChunkCount,
		ErrorMessage: d.ErrorMessage,
		UploadedAt:   d.UploadedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:           d.Id,
		Title:        d.Title,
		Filename:     d.Filename,
		Content:      d.Content,
		WordCount:    d.WordCount,
		Tags:         datatypes.JSONSlice[string](slices.Clone(d.Tags)),
		Status:       d.Status,
		ChunkCount:   d.ChunkCount,
		ErrorMessage: d.ErrorMessage,
		UploadedAt:   d.UploadedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
