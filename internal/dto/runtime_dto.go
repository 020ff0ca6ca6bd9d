package dto

type RuntimeHealthResponse struct {
	Healthy        bool   `json:"healthy"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model"`
}

type ModelListResponse struct {
	Models       []string `json:"models"`
	DefaultModel string   `json:"default_model"`
}
