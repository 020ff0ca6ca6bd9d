package bootstrap

import (
	"fmt"

	"transcript-assistant-be/internal/config"
	"transcript-assistant-be/internal/controller"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/internal/service"
	"transcript-assistant-be/internal/websocket"
	"transcript-assistant-be/pkg/chunker"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/history"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/llm/factory"
	"transcript-assistant-be/pkg/llm/openai"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController    controller.IDocumentController
	ChatController        controller.IChatController
	SummaryController     controller.ISummaryController
	StyleGuideController  controller.IStyleGuideController
	RuntimeController     controller.IRuntimeController
	MaintenanceController controller.IMaintenanceController
	LogController         controller.ILogController

	// Background Services (Exposed for main.go to run)
	ConsumerService    service.IConsumerService
	SummaryService     service.ISummaryService
	MaintenanceService service.IMaintenanceService

	// WebSockets
	WebSocketHub *websocket.Hub

	PubSub    *gochannel.GoChannel
	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model Runtime
	retry := llm.RetryPolicy{
		MaxRetries: uint64(max(cfg.Ai.MaxRetries, 0)),
		BaseDelay:  cfg.Ai.RetryBaseDelay,
	}

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Ai.APIKey,
		Timeout:  cfg.Ai.Timeout,
		Retry:    retry,
	})
	if err != nil {
		return nil, err
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	embeddingProvider, err := newEmbeddingProvider(cfg.Ai, retry)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("Bootstrap", "Embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
		"model":    cfg.Ai.EmbeddingModel,
	})

	// 4. In-Memory Stores
	embedSplitter, err := chunker.New(cfg.Chunking.EmbedChunkSize, cfg.Chunking.EmbedOverlap)
	if err != nil {
		return nil, fmt.Errorf("embedding chunker: %w", err)
	}
	factSplitter, err := chunker.New(cfg.Chunking.FactChunkSize, cfg.Chunking.FactOverlap)
	if err != nil {
		return nil, fmt.Errorf("fact chunker: %w", err)
	}

	store := vectorstore.New()
	histories := history.NewManager(history.Config{
		MaxVersions:  cfg.History.MaxVersions,
		MaxAge:       cfg.History.MaxAge,
		MaxTotalSize: cfg.History.MaxTotalSize,
	})

	// WebSocket Hub (started by main)
	wsHub := websocket.NewHub(wsLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		embedSplitter,
		embeddingProvider,
		store,
		wsHub,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		embeddingProvider,
		store,
		histories,
		cfg.Retrieval.TopK,
		cfg.Retrieval.MinScore,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		store,
		cfg.Retrieval.TopK,
		cfg.Retrieval.MinScore,
		sysLogger,
	)
	summaryService := service.NewSummaryService(uowFactory, llmProvider, factSplitter, histories, wsHub, sysLogger)
	styleGuideService := service.NewStyleGuideService(uowFactory, llmProvider, sysLogger)
	runtimeService := service.NewRuntimeService(cfg.Ai.LLMProvider, llmProvider, embeddingProvider, cfg.Ai.StatusCacheTTL)
	maintenanceService := service.NewMaintenanceService(uowFactory, histories, cfg.History.CleanupInterval, sysLogger)

	// 6. Controllers
	return &Container{
		DocumentController:    controller.NewDocumentController(documentService),
		ChatController:        controller.NewChatController(chatService),
		SummaryController:     controller.NewSummaryController(summaryService),
		StyleGuideController:  controller.NewStyleGuideController(styleGuideService),
		RuntimeController:     controller.NewRuntimeController(runtimeService),
		MaintenanceController: controller.NewMaintenanceController(maintenanceService),
		LogController:         controller.NewLogController(sysLogger),

		ConsumerService:    consumerService,
		SummaryService:     summaryService,
		MaintenanceService: maintenanceService,

		WebSocketHub: wsHub,
		PubSub:       pubSub,
		SysLogger:    sysLogger,
	}, nil
}

func newEmbeddingProvider(cfg config.AIConfig, retry llm.RetryPolicy) (embedding.EmbeddingProvider, error) {
	switch cfg.EmbeddingProvider {
	case factory.ProviderOllama, "":
		return embedding.NewOllamaProvider(cfg.EmbeddingBaseURL, cfg.EmbeddingModel, cfg.Timeout, retry), nil
	case factory.ProviderOpenAI:
		client := openai.NewClient(cfg.EmbeddingBaseURL, cfg.APIKey, cfg.Timeout)
		return embedding.NewOpenAIProvider(client, cfg.EmbeddingModel, retry), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbeddingProvider)
	}
}
