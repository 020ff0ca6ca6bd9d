// Package vectorstore keeps chunk embeddings in memory, keyed by document, and ranks
// them against a query vector.
package vectorstore

import (
	"cmp"
	"slices"
	"sync"
)

// EmbeddedChunk is a chunk of a document together with its embedding vector.
type EmbeddedChunk struct {
	ID          string
	DocumentID  string
	Index       int
	Text        string
	StartOffset int
	EndOffset   int
	Vector      []float32
}

// Result is a ranked chunk.
type Result struct {
	Chunk EmbeddedChunk
	Score float64
}

type entry struct {
	chunks []EmbeddedChunk
	seq    uint64
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64
}

func New() *Store {
	return &Store{
		entries: make(map[string]*entry),
	}
}

// AddEmbeddings replaces whatever the store held for documentID. The replaced
// document moves to the end of the insertion order.
func (s *Store) AddEmbeddings(documentID string, chunks []EmbeddedChunk) {
	copied := make([]EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		c.DocumentID = documentID
		c.Vector = slices.Clone(c.Vector)
		copied[i] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	s.entries[documentID] = &entry{chunks: copied, seq: s.nextSeq}
}

// Remove drops the document's embeddings and reports whether it had any.
func (s *Store) Remove(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[documentID]; !ok {
		return false
	}
	delete(s.entries, documentID)
	return true
}

// Get returns a copy of the chunks stored for documentID.
func (s *Store) Get(documentID string) ([]EmbeddedChunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[documentID]
	if !ok {
		return nil, false
	}
	return slices.Clone(e.chunks), true
}

// Documents lists document IDs in insertion order.
func (s *Store) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.orderedIDs()
}

// Count returns the total number of stored chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		n += len(e.chunks)
	}
	return n
}

type searchOptions struct {
	documents map[string]struct{}
	minScore  *float64
}

type SearchOption func(*searchOptions)

// WithDocuments restricts the search to the given documents. An empty list means all.
func WithDocuments(ids ...string) SearchOption {
	return func(o *searchOptions) {
		if len(ids) == 0 {
			return
		}
		o.documents = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			o.documents[id] = struct{}{}
		}
	}
}

// WithMinScore drops results scoring below threshold.
func WithMinScore(threshold float64) SearchOption {
	return func(o *searchOptions) {
		o.minScore = &threshold
	}
}

// Search scores every stored vector against query and returns the top k in
// descending score. Equal scores keep insertion order. Vectors of a different
// dimension than query are skipped.
func (s *Store) Search(query []float32, k int, opts ...SearchOption) []Result {
	if k <= 0 || len(query) == 0 {
		return nil
	}

	options := &searchOptions{}
	for _, opt := range opts {
		opt(options)
	}

	s.mu.RLock()
	results := make([]Result, 0)
	for _, id := range s.orderedIDs() {
		if options.documents != nil {
			if _, ok := options.documents[id]; !ok {
				continue
			}
		}
		for _, c := range s.entries[id].chunks {
			if len(c.Vector) != len(query) {
				continue
			}
			score := CosineSimilarity(query, c.Vector)
			if options.minScore != nil && score < *options.minScore {
				continue
			}
			results = append(results, Result{Chunk: c, Score: score})
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

// orderedIDs must be called with the lock held.
func (s *Store) orderedIDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Compare(s.entries[a].seq, s.entries[b].seq)
	})
	return ids
}
