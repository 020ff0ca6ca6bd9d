package mapper

import (
	"testing"
	"time"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/pkg/history"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMapperNilTagsBecomeEmpty(t *testing.T) {
	doc := NewDocumentMapper().ToEntity(&model.Document{Id: uuid.New(), Title: "Standup"})

	require.NotNil(t, doc)
	assert.Equal(t, []string{}, doc.Tags)
	assert.Nil(t, doc.UpdatedAt)
}

func TestDocumentEmbeddingMapperToChunk(t *testing.T) {
	docID := uuid.New()
	e := &entity.DocumentEmbedding{
		Id:             uuid.New(),
		DocumentId:     docID,
		ChunkIndex:     3,
		Content:        "hello",
		StartOffset:    10,
		EndOffset:      15,
		EmbeddingValue: []float32{0.6, 0.8},
	}

	m := NewDocumentEmbeddingMapper()
	roundTrip := m.ToEntity(m.ToModel(e))
	chunk := m.ToChunk(roundTrip)

	assert.Equal(t, docID.String(), chunk.DocumentID)
	assert.Equal(t, 3, chunk.Index)
	assert.Equal(t, 10, chunk.StartOffset)
	assert.Equal(t, 15, chunk.EndOffset)
	assert.Equal(t, []float32{0.6, 0.8}, chunk.Vector)
}

func TestSummaryHistoryMapperCopiesSizeColumns(t *testing.T) {
	accessed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := &entity.SummaryHistory{
		DocumentId: uuid.New(),
		History: history.History{
			Versions:     []history.Version{{ID: "v1", Number: 1, Text: "abc", CharCount: 3}},
			TotalSize:    3,
			LastAccessed: accessed,
		},
	}

	m := NewSummaryHistoryMapper()
	row := m.ToModel(h)

	assert.Equal(t, 3, row.TotalSize)
	assert.Equal(t, accessed, row.LastAccessed)

	back := m.ToEntity(row)
	assert.Equal(t, h.History.Versions, back.History.Versions)
}
