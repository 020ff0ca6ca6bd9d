package dto

import "time"

type ToneDto struct {
	Formality  int `json:"formality" validate:"gte=0,lte=100"`
	Warmth     int `json:"warmth" validate:"gte=0,lte=100"`
	Enthusiasm int `json:"enthusiasm" validate:"gte=0,lte=100"`
}

type PhrasesDto struct {
	Openings    []string `json:"openings" validate:"max=8"`
	Transitions []string `json:"transitions" validate:"max=8"`
	Emphasis    []string `json:"emphasis" validate:"max=8"`
	Closings    []string `json:"closings" validate:"max=8"`
}

type StyleGuideResponse struct {
	Instructions string     `json:"instructions"`
	Tone         ToneDto    `json:"tone"`
	Keywords     []string   `json:"keywords"`
	Phrases      PhrasesDto `json:"phrases"`
	IsDefault    bool       `json:"is_default"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type UpdateStyleGuideRequest struct {
	Instructions string     `json:"instructions" validate:"max=4000"`
	Tone         ToneDto    `json:"tone"`
	Keywords     []string   `json:"keywords" validate:"max=15"`
	Phrases      PhrasesDto `json:"phrases"`
}

type AnalyzeStyleRequest struct {
	Sample string `json:"sample" validate:"required,max=20000"`
}
