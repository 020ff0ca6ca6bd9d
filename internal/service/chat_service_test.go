package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Chat(t *testing.T) {
	db := newMemoryDB()
	store := vectorstore.New()
	runtime := &fakeRuntime{chat: "We ship on Friday [1]."}

	alpha := &entity.Document{Id: uuid.New(), Title: "Launch sync", UploadedAt: time.Now()}
	beta := &entity.Document{Id: uuid.New(), Title: "Hiring", UploadedAt: time.Now()}
	db.documents = append(db.documents, alpha, beta)
	store.AddEmbeddings(alpha.Id.String(), []vectorstore.EmbeddedChunk{{ID: "a", Text: "alpha ship friday", Vector: []float32{1, 0, 0, 0.01}}})
	store.AddEmbeddings(beta.Id.String(), []vectorstore.EmbeddedChunk{{ID: "b", Text: "alpha hiring", Vector: []float32{1, 0, 0, 0.01}}})

	service := NewChatService(db, runtime, &fakeEmbedder{}, store, 5, 0, logger.NewNopLogger())

	res, err := service.Chat(context.Background(), &dto.ChatRequest{
		Question:    "alpha: when do we ship?",
		DocumentIds: []uuid.UUID{alpha.Id},
		History:     []dto.ChatMessage{{Role: llm.RoleUser, Content: "hi"}, {Role: llm.RoleAssistant, Content: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "We ship on Friday [1].", res.Answer)
	assert.Equal(t, "fake-llm", res.Model)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, alpha.Id, res.Sources[0].DocumentId)

	require.Len(t, runtime.messages, 1)
	sent := runtime.messages[0]
	require.Len(t, sent, 4)
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.True(t, strings.Contains(sent[0].Content, "Launch sync"))
	assert.False(t, strings.Contains(sent[0].Content, "Hiring"))
	assert.Equal(t, "hi", sent[1].Content)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "alpha: when do we ship?"}, sent[3])
}

func TestChatService_RuntimeDown(t *testing.T) {
	service := NewChatService(newMemoryDB(), &fakeRuntime{err: errors.New("connection refused")}, &fakeEmbedder{}, vectorstore.New(), 5, 0, logger.NewNopLogger())

	_, err := service.Chat(context.Background(), &dto.ChatRequest{Question: "anything?"})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, runtimeUnavailableMessage, appErr.Message)
}
