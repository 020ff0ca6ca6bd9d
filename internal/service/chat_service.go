package service

import (
	"context"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/rag/prompt"
	"transcript-assistant-be/pkg/vectorstore"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	runtime    llm.Runtime
	retriever  *retriever
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	runtime llm.Runtime,
	embeddingProvider embedding.EmbeddingProvider,
	store *vectorstore.Store,
	topK int,
	minScore float64,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		runtime:    runtime,
		retriever: &retriever{
			embedder: embeddingProvider,
			store:    store,
			topK:     topK,
			minScore: minScore,
		},
		logger: log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sources, err := s.retriever.retrieve(ctx, uow, req.Question, req.TopK, req.DocumentIds)
	if err != nil {
		return nil, err
	}

	passages := make([]prompt.Passage, len(sources))
	for i, src := range sources {
		passages[i] = prompt.Passage{
			DocumentTitle: src.DocumentTitle,
			ChunkIndex:    src.ChunkIndex,
			Text:          src.Text,
		}
	}

	history := make([]llm.Message, len(req.History))
	for i, m := range req.History {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	messages := prompt.NewChatBuilder(req.Question, passages, history).Build()
	answer, err := s.runtime.Chat(ctx, messages)
	if err != nil {
		return nil, serverutils.NewBadGatewayError(runtimeUnavailableMessage, err)
	}

	s.logger.Info("ChatService", "Answered question", map[string]interface{}{
		"sources": len(sources),
		"scoped":  len(req.DocumentIds) > 0,
	})

	return &dto.ChatResponse{
		Answer:  answer,
		Model:   s.runtime.DefaultModel(),
		Sources: sources,
	}, nil
}
