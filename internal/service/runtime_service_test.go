package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"transcript-assistant-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeService_HealthIsCached(t *testing.T) {
	runtime := &fakeRuntime{healthy: true}
	service := NewRuntimeService("ollama", runtime, &fakeEmbedder{}, time.Minute)

	first := service.Health(context.Background())
	runtime.healthy = false
	second := service.Health(context.Background())

	assert.True(t, first.Healthy)
	assert.True(t, second.Healthy)
	assert.Equal(t, 1, runtime.calls)
	assert.Equal(t, "ollama", first.Provider)
	assert.Equal(t, "fake-llm", first.Model)
	assert.Equal(t, "fake-embed", first.EmbeddingModel)
}

func TestRuntimeService_HealthExpires(t *testing.T) {
	runtime := &fakeRuntime{healthy: true}
	service := NewRuntimeService("ollama", runtime, &fakeEmbedder{}, 10*time.Millisecond)

	service.Health(context.Background())
	runtime.healthy = false

	assert.Eventually(t, func() bool {
		return !service.Health(context.Background()).Healthy
	}, time.Second, 15*time.Millisecond)
}

func TestRuntimeService_ListModels(t *testing.T) {
	runtime := &fakeRuntime{models: []string{"llama3", "mistral"}}
	service := NewRuntimeService("ollama", runtime, &fakeEmbedder{}, time.Minute)

	res, err := service.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral"}, res.Models)
	assert.Equal(t, "fake-llm", res.DefaultModel)

	_, err = service.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, runtime.calls)
}

func TestRuntimeService_ListModelsFailureIsNotCached(t *testing.T) {
	runtime := &fakeRuntime{err: errors.New("connection refused")}
	service := NewRuntimeService("ollama", runtime, &fakeEmbedder{}, time.Minute)

	_, err := service.ListModels(context.Background())
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)

	runtime.err = nil
	res, err := service.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.Models)
}
