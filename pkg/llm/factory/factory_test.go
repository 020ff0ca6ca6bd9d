package factory

import (
	"testing"

	"transcript-assistant-be/pkg/llm/ollama"
	"transcript-assistant-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: ProviderOllama, Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	p, err = NewLLMProvider(Config{Provider: ProviderOpenAI, Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
