package model

import (
	"time"

	"transcript-assistant-be/pkg/styleguide"

	"gorm.io/datatypes"
)

type StyleGuide struct {
	Name         string                                 `gorm:"type:varchar(64);primaryKey"`
	Instructions string                                 `gorm:"type:text"`
	Formality    int                                    `gorm:"not null;default:50"`
	Warmth       int                                    `gorm:"not null;default:50"`
	Enthusiasm   int                                    `gorm:"not null;default:50"`
	Keywords     datatypes.JSONSlice[string]            `gorm:"type:jsonb"`
	Phrases      datatypes.JSONType[styleguide.Phrases] `gorm:"type:jsonb"`
	UpdatedAt    time.Time                              `gorm:"autoUpdateTime"`
}

func (StyleGuide) TableName() string {
	return "style_guides"
}

// All lists every table for migrations.
func All() []any {
	return []any{
		&Document{},
		&DocumentEmbedding{},
		&SummaryHistory{},
		&StyleGuide{},
	}
}
