package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Filename string   `json:"filename" validate:"max=255"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"max=20,dive,required,max=50"`
}

type UploadDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ListDocumentsRequest struct {
	Query    string `query:"q"`
	Tag      string `query:"tag"`
	Page     int    `query:"page" validate:"gte=0"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

// DocumentItem is a list row; the transcript text is left out.
type DocumentItem struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	WordCount  int       `json:"word_count"`
	Tags       []string  `json:"tags"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunk_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ListDocumentsResponse struct {
	Items    []*DocumentItem `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ShowDocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Filename     string     `json:"filename"`
	Content      string     `json:"content"`
	WordCount    int        `json:"word_count"`
	Tags         []string   `json:"tags"`
	Status       string     `json:"status"`
	ChunkCount   int        `json:"chunk_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type UpdateTagsRequest struct {
	Id   uuid.UUID
	Tags []string `json:"tags" validate:"max=20,dive,required,max=50"`
}

type UpdateTagsResponse struct {
	Id   uuid.UUID `json:"id"`
	Tags []string  `json:"tags"`
}

type SemanticSearchRequest struct {
	Query string `query:"q" validate:"required"`
	TopK  int    `query:"top_k" validate:"gte=0,lte=50"`
}

type SemanticSearchResult struct {
	DocumentId    uuid.UUID `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	ChunkIndex    int       `json:"chunk_index"`
	Text          string    `json:"text"`
	StartOffset   int       `json:"start_offset"`
	EndOffset     int       `json:"end_offset"`
	Score         float64   `json:"score"`
}

// PublishIngestDocumentMessage is the payload of an ingestion job.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
