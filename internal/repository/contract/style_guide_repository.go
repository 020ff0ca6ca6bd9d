package contract

import (
	"context"

	"transcript-assistant-be/internal/entity"
)

type StyleGuideRepository interface {
	FindByName(ctx context.Context, name string) (*entity.StyleGuide, error)
	Save(ctx context.Context, guide *entity.StyleGuide) error
}
