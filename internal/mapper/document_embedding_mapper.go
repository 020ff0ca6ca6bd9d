package mapper

import (
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/pgvector/pgvector-go"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	return &entity.DocumentEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		Content:        e.Content,
		StartOffset:    e.StartOffset,
		EndOffset:      e.EndOffset,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Model:          e.Model,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	return &model.DocumentEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		Content:        e.Content,
		StartOffset:    e.StartOffset,
		EndOffset:      e.EndOffset,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Model:          e.Model,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntities(embeddings []*model.DocumentEmbedding) []*entity.DocumentEmbedding {
	entities := make([]*entity.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

// ToChunk converts a persisted row into the in-memory store representation.
func (m *DocumentEmbeddingMapper) ToChunk(e *entity.DocumentEmbedding) vectorstore.EmbeddedChunk {
	return vectorstore.EmbeddedChunk{
		ID:          e.Id.String(),
		DocumentID:  e.DocumentId.String(),
		Index:       e.ChunkIndex,
		Text:        e.Content,
		StartOffset: e.StartOffset,
		EndOffset:   e.EndOffset,
		Vector:      e.EmbeddingValue,
	}
}

// ToChunks keeps the order of embeddings, which callers sort by chunk index.
func (m *DocumentEmbeddingMapper) ToChunks(embeddings []*entity.DocumentEmbedding) []vectorstore.EmbeddedChunk {
	chunks := make([]vectorstore.EmbeddedChunk, len(embeddings))
	for i, e := range embeddings {
		chunks[i] = m.ToChunk(e)
	}
	return chunks
}
