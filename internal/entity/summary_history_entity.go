package entity

import (
	"time"

	"transcript-assistant-be/pkg/history"

	"github.com/google/uuid"
)

// SummaryHistory is the persisted snapshot of one document's version history.
type SummaryHistory struct {
	DocumentId uuid.UUID
	History    history.History
	UpdatedAt  time.Time
}
