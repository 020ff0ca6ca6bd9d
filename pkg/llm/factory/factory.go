package factory

import (
	"fmt"
	"time"

	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/llm/ollama"
	"transcript-assistant-be/pkg/llm/openai"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Retry    llm.RetryPolicy
}

func NewLLMProvider(cfg Config) (llm.Runtime, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.Retry), nil
	case ProviderOpenAI:
		client := openai.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
		return openai.NewProvider(client, cfg.Model, cfg.Retry), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
