package entity

import (
	"time"

	"transcript-assistant-be/pkg/styleguide"
)

// DefaultStyleGuideName keys the single guide a local install uses.
const DefaultStyleGuideName = "default"

type StyleGuide struct {
	Name      string
	Guide     styleguide.StyleGuide
	UpdatedAt *time.Time
}
