package bootstrap

import (
	"path/filepath"
	"testing"
	"time"

	"transcript-assistant-be/internal/config"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{
			Port:          "0",
			LogFilePath:   filepath.Join(dir, "app.log"),
			WsLogFilePath: filepath.Join(dir, "ws.log"),
			IngestTopic:   "INGEST_DOCUMENT",
		},
		Ai: config.AIConfig{
			LLMProvider:       "ollama",
			LLMBaseURL:        "http://localhost:11434",
			LLMModel:          "llama3",
			EmbeddingProvider: "ollama",
			EmbeddingBaseURL:  "http://localhost:11434",
			EmbeddingModel:    "nomic-embed-text",
			Timeout:           time.Second,
			MaxRetries:        1,
			RetryBaseDelay:    time.Millisecond,
			StatusCacheTTL:    time.Second,
		},
		Chunking: config.ChunkingConfig{
			EmbedChunkSize: 100,
			EmbedOverlap:   10,
			FactChunkSize:  400,
			FactOverlap:    20,
		},
		Retrieval: config.RetrievalConfig{TopK: 5},
		History: config.HistoryConfig{
			MaxVersions:     10,
			MaxAge:          time.Hour,
			MaxTotalSize:    1 << 20,
			CleanupInterval: time.Minute,
		},
	}
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(nil, testConfig(t), logger.NewNopLogger())
	require.NoError(t, err)

	assert.NotNil(t, c.DocumentController)
	assert.NotNil(t, c.ChatController)
	assert.NotNil(t, c.SummaryController)
	assert.NotNil(t, c.StyleGuideController)
	assert.NotNil(t, c.RuntimeController)
	assert.NotNil(t, c.MaintenanceController)
	assert.NotNil(t, c.LogController)
	assert.NotNil(t, c.ConsumerService)
	assert.NotNil(t, c.SummaryService)
	assert.NotNil(t, c.MaintenanceService)
	assert.NotNil(t, c.WebSocketHub)
	require.NotNil(t, c.PubSub)
	assert.NoError(t, c.PubSub.Close())
}

func TestNewContainerRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown llm provider", func(c *config.Config) { c.Ai.LLMProvider = "gemini" }},
		{"unknown embedding provider", func(c *config.Config) { c.Ai.EmbeddingProvider = "jina" }},
		{"embed overlap too large", func(c *config.Config) { c.Chunking.EmbedOverlap = 100 }},
		{"fact chunk size zero", func(c *config.Config) { c.Chunking.FactChunkSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			c, err := NewContainer(nil, cfg, logger.NewNopLogger())
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestNewEmbeddingProvider(t *testing.T) {
	retry := llm.RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}

	ollama, err := newEmbeddingProvider(config.AIConfig{EmbeddingProvider: "ollama", EmbeddingModel: "nomic-embed-text"}, retry)
	require.NoError(t, err)
	assert.IsType(t, &embedding.OllamaProvider{}, ollama)

	openai, err := newEmbeddingProvider(config.AIConfig{EmbeddingProvider: "openai", EmbeddingModel: "text-embedding-3-small"}, retry)
	require.NoError(t, err)
	assert.IsType(t, &embedding.OpenAIProvider{}, openai)

	_, err = newEmbeddingProvider(config.AIConfig{EmbeddingProvider: "jina"}, retry)
	assert.Error(t, err)
}
