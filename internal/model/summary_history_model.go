package model

import (
	"time"

	"transcript-assistant-be/pkg/history"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SummaryHistory struct {
	DocumentId   uuid.UUID                           `gorm:"type:uuid;primaryKey"`
	Snapshot     datatypes.JSONType[history.History] `gorm:"type:jsonb;not null"`
	TotalSize    int                                 `gorm:"not null;default:0"`
	LastAccessed time.Time                           `gorm:"index"`
	UpdatedAt    time.Time                           `gorm:"autoUpdateTime"`
}

func (SummaryHistory) TableName() string {
	return "summary_histories"
}
