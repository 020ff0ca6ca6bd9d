package embedding

import (
	"context"
	"errors"
	"fmt"

	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/llm/openai"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider embeds through an OpenAI-compatible local server.
type OpenAIProvider struct {
	client    *goopenai.Client
	modelName string
	retry     llm.RetryPolicy
}

func NewOpenAIProvider(client *goopenai.Client, model string, retry llm.RetryPolicy) *OpenAIProvider {
	return &OpenAIProvider{
		client:    client,
		modelName: model,
		retry:     retry,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	var resp goopenai.EmbeddingResponse
	err := llm.Do(ctx, p.retry, openai.IsTransient, func(ctx context.Context) error {
		var err error
		resp, err = p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
			Model: goopenai.EmbeddingModel(p.modelName),
			Input: []string{text},
		})
		if err != nil {
			return fmt.Errorf("create embeddings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned from runtime")
	}

	values := make([]float32, len(resp.Data[0].Embedding))
	copy(values, resp.Data[0].Embedding)
	return normalizeVector(values), nil
}

func (p *OpenAIProvider) Model() string {
	return p.modelName
}
