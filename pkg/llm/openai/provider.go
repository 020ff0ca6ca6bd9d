// Package openai talks to local runtimes that expose the OpenAI-compatible API
// (LM Studio, llama.cpp server, vLLM, LocalAI).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"transcript-assistant-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "http://localhost:1234/v1"
	DefaultTimeout = 60 * time.Second

	healthTimeout = 5 * time.Second
)

type Provider struct {
	client    *goopenai.Client
	modelName string
	retry     llm.RetryPolicy
}

var _ llm.Runtime = &Provider{}

// NewClient builds a go-openai client pointed at a local base URL. Local servers
// usually ignore the key, so an empty one is allowed.
func NewClient(baseURL, apiKey string, timeout time.Duration) *goopenai.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return goopenai.NewClientWithConfig(cfg)
}

func NewProvider(client *goopenai.Client, modelName string, retry llm.RetryPolicy) *Provider {
	return &Provider{
		client:    client,
		modelName: modelName,
		retry:     retry,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{Role: role, Content: msg.Content}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	if options.JSONFormat {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	err := llm.Do(ctx, p.retry, IsTransient, func(ctx context.Context) error {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return errors.New("chat completion returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *Provider) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	_, err := p.client.ListModels(ctx)
	return err == nil
}

func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	var list goopenai.ModelsList
	err := llm.Do(ctx, p.retry, IsTransient, func(ctx context.Context) error {
		var err error
		list, err = p.client.ListModels(ctx)
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

func (p *Provider) DefaultModel() string {
	return p.modelName
}

// IsTransient extends llm.IsTransient with go-openai's error types.
func IsTransient(err error) bool {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return llm.IsTransient(err)
}
