package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocumentEmbedding is one embedded chunk. The vector column is unsized because
// its dimension depends on the configured embedding model.
type DocumentEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index:idx_document_embeddings_doc_chunk,priority:1"`
	ChunkIndex     int             `gorm:"not null;index:idx_document_embeddings_doc_chunk,priority:2"`
	Content        string          `gorm:"type:text"`
	StartOffset    int             `gorm:"not null"`
	EndOffset      int             `gorm:"not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"`
	Model          string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
