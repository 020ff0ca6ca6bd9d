package dto

import (
	"time"

	"github.com/google/uuid"
)

type SummaryVersionResponse struct {
	Id         string    `json:"id"`
	Number     int       `json:"number"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	CharCount  int       `json:"char_count"`
	IsOriginal bool      `json:"is_original"`
	Model      string    `json:"model,omitempty"`
	IsCurrent  bool      `json:"is_current"`
}

type SummaryHistoryResponse struct {
	DocumentId       uuid.UUID                 `json:"document_id"`
	Versions         []*SummaryVersionResponse `json:"versions"`
	CurrentVersionId string                    `json:"current_version_id"`
	TotalSize        int                       `json:"total_size"`
	MaxVersions      int                       `json:"max_versions"`
}

// GenerateSummaryResponse reports Duplicate when an identical original already
// existed and was returned instead of a new version.
type GenerateSummaryResponse struct {
	Version       *SummaryVersionResponse `json:"version"`
	Duplicate     bool                    `json:"duplicate"`
	ChunksTotal   int                     `json:"chunks_total"`
	ChunksSkipped int                     `json:"chunks_skipped"`
}

type SaveSummaryEditRequest struct {
	DocumentId uuid.UUID
	Text       string `json:"text" validate:"required"`
}

type SaveSummaryEditResponse struct {
	Version   *SummaryVersionResponse `json:"version"`
	Duplicate bool                    `json:"duplicate"`
}
