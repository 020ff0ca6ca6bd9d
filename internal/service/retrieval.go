package service

import (
	"context"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/repository/specification"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/embedding"
	"transcript-assistant-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// retriever embeds a query and ranks stored chunks against it. Shared by
// semantic search and chat.
type retriever struct {
	embedder embedding.EmbeddingProvider
	store    *vectorstore.Store
	topK     int
	minScore float64
}

func (r *retriever) retrieve(ctx context.Context, uow unitofwork.UnitOfWork, query string, topK int, documentIds []uuid.UUID) ([]*dto.SemanticSearchResult, error) {
	if topK <= 0 {
		topK = r.topK
	}

	vector, err := r.embedder.Generate(ctx, query)
	if err != nil {
		return nil, serverutils.NewBadGatewayError("The embedding model is unavailable. Check that the local runtime is running.", err)
	}

	var opts []vectorstore.SearchOption
	if r.minScore > 0 {
		opts = append(opts, vectorstore.WithMinScore(r.minScore))
	}
	if len(documentIds) > 0 {
		ids := make([]string, len(documentIds))
		for i, id := range documentIds {
			ids[i] = id.String()
		}
		opts = append(opts, vectorstore.WithDocuments(ids...))
	}

	ranked := r.store.Search(vector, topK, opts...)
	if len(ranked) == 0 {
		return []*dto.SemanticSearchResult{}, nil
	}

	titles, err := r.titles(ctx, uow, ranked)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SemanticSearchResult, 0, len(ranked))
	for _, res := range ranked {
		docID, err := uuid.Parse(res.Chunk.DocumentID)
		if err != nil {
			continue
		}
		title, ok := titles[docID]
		if !ok {
			// Deleted after ranking.
			continue
		}
		results = append(results, &dto.SemanticSearchResult{
			DocumentId:    docID,
			DocumentTitle: title,
			ChunkIndex:    res.Chunk.Index,
			Text:          res.Chunk.Text,
			StartOffset:   res.Chunk.StartOffset,
			EndOffset:     res.Chunk.EndOffset,
			Score:         res.Score,
		})
	}
	return results, nil
}

func (r *retriever) titles(ctx context.Context, uow unitofwork.UnitOfWork, ranked []vectorstore.Result) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(ranked))
	for _, res := range ranked {
		id, err := uuid.Parse(res.Chunk.DocumentID)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	titles := make(map[uuid.UUID]string, len(docs))
	for _, d := range docs {
		titles[d.Id] = d.Title
	}
	return titles, nil
}
