package dto

import "github.com/google/uuid"

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Question    string        `json:"question" validate:"required,max=4000"`
	DocumentIds []uuid.UUID   `json:"document_ids"`
	History     []ChatMessage `json:"history" validate:"max=50,dive"`
	TopK        int           `json:"top_k" validate:"gte=0,lte=20"`
}

type ChatResponse struct {
	Answer  string                  `json:"answer"`
	Model   string                  `json:"model"`
	Sources []*SemanticSearchResult `json:"sources"`
}
