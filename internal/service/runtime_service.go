package service

import (
	"context"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

const (
	healthCacheKey = "runtime:health"
	modelsCacheKey = "runtime:models"
)

type IRuntimeService interface {
	Health(ctx context.Context) *dto.RuntimeHealthResponse
	ListModels(ctx context.Context) (*dto.ModelListResponse, error)
}

type runtimeService struct {
	provider          string
	runtime           llm.Runtime
	embeddingProvider embedding.EmbeddingProvider
	cache             *cache.Cache
}

// NewRuntimeService caches status answers for ttl so the settings panel can
// poll without hitting the runtime each time.
func NewRuntimeService(provider string, runtime llm.Runtime, embeddingProvider embedding.EmbeddingProvider, ttl time.Duration) IRuntimeService {
	return &runtimeService{
		provider:          provider,
		runtime:           runtime,
		embeddingProvider: embeddingProvider,
		cache:             cache.New(ttl, 2*ttl),
	}
}

func (s *runtimeService) Health(ctx context.Context) *dto.RuntimeHealthResponse {
	healthy, found := s.cache.Get(healthCacheKey)
	if !found {
		healthy = s.runtime.Health(ctx)
		s.cache.Set(healthCacheKey, healthy, cache.DefaultExpiration)
	}

	return &dto.RuntimeHealthResponse{
		Healthy:        healthy.(bool),
		Provider:       s.provider,
		Model:          s.runtime.DefaultModel(),
		EmbeddingModel: s.embeddingProvider.Model(),
	}
}

func (s *runtimeService) ListModels(ctx context.Context) (*dto.ModelListResponse, error) {
	if x, found := s.cache.Get(modelsCacheKey); found {
		return &dto.ModelListResponse{
			Models:       x.([]string),
			DefaultModel: s.runtime.DefaultModel(),
		}, nil
	}

	models, err := s.runtime.ListModels(ctx)
	if err != nil {
		return nil, serverutils.NewBadGatewayError(runtimeUnavailableMessage, err)
	}
	if models == nil {
		models = []string{}
	}
	s.cache.Set(modelsCacheKey, models, cache.DefaultExpiration)

	return &dto.ModelListResponse{
		Models:       models,
		DefaultModel: s.runtime.DefaultModel(),
	}, nil
}
