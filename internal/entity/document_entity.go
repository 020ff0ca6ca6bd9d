package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document ingestion states.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusFailed     = "failed"
)

type Document struct {
	Id           uuid.UUID
	Title        string
	Filename     string
	Content      string
	WordCount    int
	Tags         []string
	Status       string
	ChunkCount   int
	ErrorMessage string
	UploadedAt   time.Time
	UpdatedAt    *time.Time
}
