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
	"transcript-assistant-be/pkg/chunker"
	"transcript-assistant-be/pkg/events"
	"transcript-assistant-be/pkg/history"
	"transcript-assistant-be/pkg/styleguide"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryFixture struct {
	db          *memoryDB
	runtime     *fakeRuntime
	histories   *history.Manager
	broadcaster *fakeBroadcaster
	service     ISummaryService
	doc         *entity.Document
}

func newSummaryFixture(t *testing.T, replies ...fakeReply) *summaryFixture {
	t.Helper()
	splitter, err := chunker.New(10, 0)
	require.NoError(t, err)

	f := &summaryFixture{
		db:          newMemoryDB(),
		runtime:     &fakeRuntime{replies: replies},
		histories:   history.NewManager(history.DefaultConfig()),
		broadcaster: &fakeBroadcaster{},
	}
	f.doc = &entity.Document{
		Id:         uuid.New(),
		Title:      "Launch sync",
		Content:    "aaaaaaaaaabbbbbbbbbbcccccccccc",
		Status:     entity.DocumentStatusReady,
		UploadedAt: time.Now(),
	}
	f.db.documents = append(f.db.documents, f.doc)
	f.service = NewSummaryService(f.db, f.runtime, splitter, f.histories, f.broadcaster, logger.NewNopLogger())
	return f
}

var (
	summaryReply = fakeReply{contains: "Now write the summary:", text: "  The team agreed to launch.  "}
	factsReply   = fakeReply{contains: "Extract structured facts", text: "```json\n{\"topics\": [\"launch\"], \"decisions\": [\"ship friday\"]}\n```"}
)

func TestSummaryService_Generate(t *testing.T) {
	f := newSummaryFixture(t, summaryReply, factsReply)

	res, err := f.service.Generate(context.Background(), f.doc.Id)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.False(t, res.Duplicate)
	assert.Equal(t, 3, res.ChunksTotal)
	assert.Zero(t, res.ChunksSkipped)
	assert.Equal(t, "The team agreed to launch.", res.Version.Text)
	assert.True(t, res.Version.IsOriginal)
	assert.True(t, res.Version.IsCurrent)
	assert.Equal(t, "fake-llm", res.Version.Model)
	assert.Equal(t, 1, res.Version.Number)

	summaryPrompt := f.runtime.prompts[len(f.runtime.prompts)-1]
	assert.Equal(t, 1, strings.Count(summaryPrompt, "- launch"))
	assert.True(t, strings.Contains(summaryPrompt, "- ship friday"))
	assert.True(t, strings.Contains(summaryPrompt, styleguide.Default().Instructions))

	snapshot, ok := f.db.histories[f.doc.Id]
	require.True(t, ok)
	assert.Len(t, snapshot.History.Versions, 1)
	assert.Equal(t, []string{events.SummaryCreated}, f.broadcaster.types())
}

func TestSummaryService_GenerateDuplicate(t *testing.T) {
	f := newSummaryFixture(t, summaryReply, factsReply)

	first, err := f.service.Generate(context.Background(), f.doc.Id)
	require.NoError(t, err)
	second, err := f.service.Generate(context.Background(), f.doc.Id)
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Version.Id, second.Version.Id)
	h, _ := f.histories.Get(f.doc.Id.String())
	assert.Len(t, h.Versions, 1)
	assert.Len(t, f.broadcaster.types(), 1)
}

func TestSummaryService_GenerateSkipsMalformedChunks(t *testing.T) {
	f := newSummaryFixture(t, summaryReply, fakeReply{contains: "part 2 of 3", text: "I could not find any facts."}, factsReply)

	res, err := f.service.Generate(context.Background(), f.doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ChunksSkipped)
	assert.Equal(t, 3, res.ChunksTotal)
}

func TestSummaryService_GenerateAllChunksMalformed(t *testing.T) {
	f := newSummaryFixture(t, summaryReply, fakeReply{contains: "Extract structured facts", text: "no json here"})

	_, err := f.service.Generate(context.Background(), f.doc.Id)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	_, ok := f.histories.Get(f.doc.Id.String())
	assert.False(t, ok)
}

func TestSummaryService_GenerateRuntimeDown(t *testing.T) {
	f := newSummaryFixture(t)
	f.runtime.err = errors.New("connection refused")

	_, err := f.service.Generate(context.Background(), f.doc.Id)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, 1, f.runtime.calls)
}

func TestSummaryService_GenerateEmptyDocument(t *testing.T) {
	f := newSummaryFixture(t)
	f.doc.Content = ""

	_, err := f.service.Generate(context.Background(), f.doc.Id)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Zero(t, f.runtime.calls)
}

func TestSummaryService_GenerateMissingDocument(t *testing.T) {
	f := newSummaryFixture(t)

	res, err := f.service.Generate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSummaryService_UsesStoredStyleGuide(t *testing.T) {
	f := newSummaryFixture(t, summaryReply, factsReply)
	guide := styleguide.Default()
	guide.Instructions = "Write it as a haiku."
	f.db.styleGuides[entity.DefaultStyleGuideName] = &entity.StyleGuide{Name: entity.DefaultStyleGuideName, Guide: guide}

	_, err := f.service.Generate(context.Background(), f.doc.Id)
	require.NoError(t, err)

	summaryPrompt := f.runtime.prompts[len(f.runtime.prompts)-1]
	assert.True(t, strings.Contains(summaryPrompt, "Write it as a haiku."))
}

func TestSummaryService_EditRestoreDelete(t *testing.T) {
	f := newSummaryFixture(t)
	ctx := context.Background()

	original, _ := f.histories.AddVersion(f.doc.Id.String(), "Original summary.", true, "m")

	edit, err := f.service.SaveEdit(ctx, &dto.SaveSummaryEditRequest{DocumentId: f.doc.Id, Text: " Edited summary. "})
	require.NoError(t, err)
	require.NotNil(t, edit)
	assert.False(t, edit.Duplicate)
	assert.False(t, edit.Version.IsOriginal)
	assert.Equal(t, "Edited summary.", edit.Version.Text)

	again, err := f.service.SaveEdit(ctx, &dto.SaveSummaryEditRequest{DocumentId: f.doc.Id, Text: "Edited summary."})
	require.NoError(t, err)
	assert.True(t, again.Duplicate)

	restored, err := f.service.Restore(ctx, f.doc.Id, original.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.True(t, restored.IsCurrent)
	assert.Equal(t, 1, f.db.histories[f.doc.Id].History.CurrentIndex)

	hist, err := f.service.History(ctx, f.doc.Id)
	require.NoError(t, err)
	require.Len(t, hist.Versions, 2)
	assert.Equal(t, original.ID, hist.CurrentVersionId)
	assert.Equal(t, "Edited summary.", hist.Versions[0].Text)
	assert.False(t, hist.Versions[0].IsCurrent)
	assert.True(t, hist.Versions[1].IsCurrent)

	missing, err := f.service.Restore(ctx, f.doc.Id, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := f.service.DeleteVersion(ctx, f.doc.Id, edit.Version.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, f.db.histories[f.doc.Id].History.Versions, 1)

	deleted, err = f.service.DeleteVersion(ctx, f.doc.Id, original.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, f.db.histories)

	hist, err = f.service.History(ctx, f.doc.Id)
	require.NoError(t, err)
	assert.Nil(t, hist)
}

func TestSummaryService_SaveEditMissingDocument(t *testing.T) {
	f := newSummaryFixture(t)

	res, err := f.service.SaveEdit(context.Background(), &dto.SaveSummaryEditRequest{DocumentId: uuid.New(), Text: "x"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSummaryService_LoadHistories(t *testing.T) {
	f := newSummaryFixture(t)
	id := uuid.New()
	f.db.histories[id] = &entity.SummaryHistory{
		DocumentId: id,
		History: history.History{
			Versions:     []history.Version{{ID: "v3", Number: 3, Text: "third", CharCount: 5}},
			LastAccessed: time.Now(),
		},
	}
	empty := uuid.New()
	f.db.histories[empty] = &entity.SummaryHistory{DocumentId: empty}

	loaded, err := f.service.LoadHistories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	h, ok := f.histories.Get(id.String())
	require.True(t, ok)
	assert.Equal(t, id.String(), h.DocumentID)
	assert.Equal(t, 4, h.NextNumber)
	assert.Equal(t, 5, h.TotalSize)
}
