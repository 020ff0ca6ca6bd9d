package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	ChunkIndex     int
	Content        string
	StartOffset    int
	EndOffset      int
	EmbeddingValue []float32
	Model          string
	CreatedAt      time.Time
}
