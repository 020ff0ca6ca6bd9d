package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string                      `gorm:"type:varchar(255);not null;index"`
	Filename     string                      `gorm:"type:varchar(255)"`
	Content      string                      `gorm:"type:text;not null"`
	WordCount    int                         `gorm:"not null;default:0"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status       string                      `gorm:"type:varchar(20);not null;default:'pending'"`
	ChunkCount   int                         `gorm:"not null;default:0"`
	ErrorMessage string                      `gorm:"type:text"`
	UploadedAt   time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
