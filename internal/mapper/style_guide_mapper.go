package mapper

import (
	"slices"
	"time"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/pkg/styleguide"

	"gorm.io/datatypes"
)

type StyleGuideMapper struct{}

func NewStyleGuideMapper() *StyleGuideMapper {
	return &StyleGuideMapper{}
}

func (m *StyleGuideMapper) ToEntity(g *model.StyleGuide) *entity.StyleGuide {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	guide := styleguide.StyleGuide{
		Instructions: g.Instructions,
		Tone: styleguide.Tone{
			Formality:  g.Formality,
			Warmth:     g.Warmth,
			Enthusiasm: g.Enthusiasm,
		},
		Keywords: slices.Clone([]string(g.Keywords)),
		Phrases:  g.Phrases.Data(),
	}

	return &entity.StyleGuide{
		Name:      g.Name,
		Guide:     guide.Normalize(),
		UpdatedAt: updatedAt,
	}
}

func (m *StyleGuideMapper) ToModel(g *entity.StyleGuide) *model.StyleGuide {
	if g == nil {
		return nil
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.StyleGuide{
		Name:         g.Name,
		Instructions: g.Guide.Instructions,
		Formality:    g.Guide.Tone.Formality,
		Warmth:       g.Guide.Tone.Warmth,
		Enthusiasm:   g.Guide.Tone.Enthusiasm,
		Keywords:     datatypes.JSONSlice[string](slices.Clone(g.Guide.Keywords)),
		Phrases:      datatypes.NewJSONType(g.Guide.Phrases),
		UpdatedAt:    updatedAt,
	}
}
