package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/repository/contract"
	"transcript-assistant-be/internal/repository/specification"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/events"
	"transcript-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// memoryDB backs every fake repository. Transactions are not isolated.
type memoryDB struct {
	mu          sync.Mutex
	documents   []*entity.Document
	embeddings  []*entity.DocumentEmbedding
	histories   map[uuid.UUID]*entity.SummaryHistory
	styleGuides map[string]*entity.StyleGuide
	commits     int
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		histories:   make(map[uuid.UUID]*entity.SummaryHistory),
		styleGuides: make(map[string]*entity.StyleGuide),
	}
}

func (db *memoryDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{db: db}
}

type memoryUnitOfWork struct {
	db     *memoryDB
	active bool
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	u.active = true
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	if !u.active {
		return errors.New("no transaction to commit")
	}
	u.active = false
	u.db.mu.Lock()
	u.db.commits++
	u.db.mu.Unlock()
	return nil
}

func (u *memoryUnitOfWork) Rollback() error {
	if !u.active {
		return errors.New("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *memoryUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &memoryDocumentRepository{db: u.db}
}

func (u *memoryUnitOfWork) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return &memoryEmbeddingRepository{db: u.db}
}

func (u *memoryUnitOfWork) SummaryHistoryRepository() contract.SummaryHistoryRepository {
	return &memoryHistoryRepository{db: u.db}
}

func (u *memoryUnitOfWork) StyleGuideRepository() contract.StyleGuideRepository {
	return &memoryStyleGuideRepository{db: u.db}
}

func matchesDocument(d *entity.Document, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return d.Id == s.ID
	case specification.ByIDs:
		return slices.Contains(s.IDs, d.Id)
	case specification.TitleContains:
		return strings.Contains(strings.ToLower(d.Title), strings.ToLower(s.Query))
	case specification.HasTag:
		return slices.Contains(d.Tags, s.Tag)
	case specification.ByStatus:
		return d.Status == s.Status
	}
	return true
}

type memoryDocumentRepository struct {
	db *memoryDB
}

func cloneDocument(d *entity.Document) *entity.Document {
	c := *d
	c.Tags = slices.Clone(d.Tags)
	return &c
}

func (r *memoryDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.documents = append(r.db.documents, cloneDocument(document))
	return nil
}

func (r *memoryDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, d := range r.db.documents {
		if d.Id == document.Id {
			r.db.documents[i] = cloneDocument(document)
			return nil
		}
	}
	return errors.New("document not found")
}

func (r *memoryDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.documents = slices.DeleteFunc(r.db.documents, func(d *entity.Document) bool {
		return d.Id == id
	})
	return nil
}

func (r *memoryDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	found, err := r.FindAll(ctx, specs...)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (r *memoryDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []*entity.Document
	for _, d := range r.db.documents {
		keep := true
		for _, s := range specs {
			if !matchesDocument(d, s) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, cloneDocument(d))
		}
	}

	for _, s := range specs {
		switch s := s.(type) {
		case specification.OrderBy:
			slices.SortStableFunc(out, func(a, b *entity.Document) int {
				if s.Desc {
					return b.UploadedAt.Compare(a.UploadedAt)
				}
				return a.UploadedAt.Compare(b.UploadedAt)
			})
		case specification.Pagination:
			start := min(s.Offset, len(out))
			end := min(start+s.Limit, len(out))
			out = out[start:end]
		}
	}
	return out, nil
}

func (r *memoryDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

type memoryEmbeddingRepository struct {
	db *memoryDB
}

func (r *memoryEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range embeddings {
		c := *e
		r.db.embeddings = append(r.db.embeddings, &c)
	}
	return nil
}

func (r *memoryEmbeddingRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.embeddings = slices.DeleteFunc(r.db.embeddings, func(e *entity.DocumentEmbedding) bool {
		return e.DocumentId == documentId
	})
	return nil
}

func (r *memoryEmbeddingRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []*entity.DocumentEmbedding
	for _, e := range r.db.embeddings {
		keep := true
		for _, s := range specs {
			if s, ok := s.(specification.ByDocumentID); ok && e.DocumentId != s.DocumentID {
				keep = false
			}
		}
		if keep {
			c := *e
			out = append(out, &c)
		}
	}
	slices.SortStableFunc(out, func(a, b *entity.DocumentEmbedding) int {
		if c := strings.Compare(a.DocumentId.String(), b.DocumentId.String()); c != 0 {
			return c
		}
		return a.ChunkIndex - b.ChunkIndex
	})
	return out, nil
}

func (r *memoryEmbeddingRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

type memoryHistoryRepository struct {
	db *memoryDB
}

func (r *memoryHistoryRepository) Save(ctx context.Context, history *entity.SummaryHistory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *history
	r.db.histories[history.DocumentId] = &c
	return nil
}

func (r *memoryHistoryRepository) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.SummaryHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	h, ok := r.db.histories[documentId]
	if !ok {
		return nil, nil
	}
	c := *h
	return &c, nil
}

func (r *memoryHistoryRepository) FindAll(ctx context.Context) ([]*entity.SummaryHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.SummaryHistory, 0, len(r.db.histories))
	for _, h := range r.db.histories {
		c := *h
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.SummaryHistory) int {
		return a.History.LastAccessed.Compare(b.History.LastAccessed)
	})
	return out, nil
}

func (r *memoryHistoryRepository) DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, id := range documentIds {
		delete(r.db.histories, id)
	}
	return nil
}

type memoryStyleGuideRepository struct {
	db *memoryDB
}

func (r *memoryStyleGuideRepository) FindByName(ctx context.Context, name string) (*entity.StyleGuide, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	g, ok := r.db.styleGuides[name]
	if !ok {
		return nil, nil
	}
	c := *g
	return &c, nil
}

func (r *memoryStyleGuideRepository) Save(ctx context.Context, guide *entity.StyleGuide) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	guide.UpdatedAt = &now
	c := *guide
	r.db.styleGuides[guide.Name] = &c
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

// fakeEmbedder maps text onto counts of a few marker words, so texts sharing
// markers score close to each other.
type fakeEmbedder struct {
	err   error
	calls int
	// onGenerate runs before each embedding.
	onGenerate func()
}

var embedderMarkers = []string{"alpha", "beta", "gamma"}

func (e *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.onGenerate != nil {
		e.onGenerate()
	}
	if e.err != nil {
		return nil, e.err
	}
	lower := strings.ToLower(text)
	vec := make([]float32, len(embedderMarkers)+1)
	for i, m := range embedderMarkers {
		vec[i] = float32(strings.Count(lower, m))
	}
	vec[len(embedderMarkers)] = 0.01
	return vec, nil
}

func (e *fakeEmbedder) Model() string {
	return "fake-embed"
}

// fakeRuntime answers Generate with the first reply whose key the prompt contains.
type fakeRuntime struct {
	mu       sync.Mutex
	replies  []fakeReply
	chat     string
	err      error
	healthy  bool
	models   []string
	prompts  []string
	messages [][]llm.Message
	calls    int
}

type fakeReply struct {
	contains string
	text     string
}

func (r *fakeRuntime) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.messages = append(r.messages, history)
	if r.err != nil {
		return "", r.err
	}
	return r.chat, nil
}

func (r *fakeRuntime) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.prompts = append(r.prompts, prompt)
	if r.err != nil {
		return "", r.err
	}
	for _, reply := range r.replies {
		if strings.Contains(prompt, reply.contains) {
			return reply.text, nil
		}
	}
	return "", nil
}

func (r *fakeRuntime) Health(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.healthy
}

func (r *fakeRuntime) ListModels(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.models, nil
}

func (r *fakeRuntime) DefaultModel() string {
	return "fake-llm"
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *fakeBroadcaster) Broadcast(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.EventType()
	}
	return out
}
