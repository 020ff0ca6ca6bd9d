// Package history keeps a bounded, ordered list of summary versions per document
// and sweeps out histories that are stale or over the global size budget.
package history

import (
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultMaxVersions  = 10
	DefaultMaxAge       = 24 * time.Hour
	DefaultMaxTotalSize = 50 * 1024 * 1024
)

type Config struct {
	// MaxVersions caps each document's history.
	MaxVersions int
	// MaxAge evicts histories not accessed for longer than this.
	MaxAge time.Duration
	// MaxTotalSize is the budget, in characters, across all histories.
	MaxTotalSize int
}

func DefaultConfig() Config {
	return Config{
		MaxVersions:  DefaultMaxVersions,
		MaxAge:       DefaultMaxAge,
		MaxTotalSize: DefaultMaxTotalSize,
	}
}

type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator overrides the version ID source.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// Manager is safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	cfg       Config
	histories map[string]*History
	order     []string
	now       func() time.Time
	newID     func() string
}

func NewManager(cfg Config, opts ...Option) *Manager {
	defaults := DefaultConfig()
	if cfg.MaxVersions <= 0 {
		cfg.MaxVersions = defaults.MaxVersions
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaults.MaxAge
	}
	if cfg.MaxTotalSize <= 0 {
		cfg.MaxTotalSize = defaults.MaxTotalSize
	}

	m := &Manager{
		cfg:       cfg,
		histories: make(map[string]*History),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddVersion prepends a new version. A version with identical text and the same
// originality flag is not added again; the existing one is returned with false.
func (m *Manager) AddVersion(documentID, text string, isOriginal bool, model string) (Version, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	h, ok := m.histories[documentID]
	if !ok {
		h = &History{
			DocumentID:  documentID,
			MaxVersions: m.cfg.MaxVersions,
			NextNumber:  1,
		}
		m.histories[documentID] = h
		m.order = append(m.order, documentID)
	}

	for _, v := range h.Versions {
		if v.Text == text && v.IsOriginal == isOriginal {
			return v, false
		}
	}

	v := Version{
		ID:         m.newID(),
		Number:     h.NextNumber,
		Text:       text,
		CreatedAt:  now,
		CharCount:  utf8.RuneCountInString(text),
		IsOriginal: isOriginal,
		Model:      model,
	}
	h.NextNumber++
	h.Versions = append([]Version{v}, h.Versions...)
	h.TotalSize += v.CharCount
	h.CurrentIndex = 0
	h.LastAccessed = now

	for len(h.Versions) > h.MaxVersions {
		last := h.Versions[len(h.Versions)-1]
		h.Versions = h.Versions[:len(h.Versions)-1]
		h.TotalSize -= last.CharCount
	}

	return v, true
}

// RestoreVersion looks a version up and marks it current. Order and count are
// unchanged.
func (m *Manager) RestoreVersion(documentID, versionID string) (Version, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histories[documentID]
	if !ok {
		return Version{}, false
	}
	i := h.indexOf(versionID)
	if i < 0 {
		return Version{}, false
	}

	h.CurrentIndex = i
	h.LastAccessed = m.now()
	return h.Versions[i], true
}

// DeleteVersion removes one version. Removing the last one drops the history.
func (m *Manager) DeleteVersion(documentID, versionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histories[documentID]
	if !ok {
		return false
	}
	i := h.indexOf(versionID)
	if i < 0 {
		return false
	}

	h.TotalSize -= h.Versions[i].CharCount
	h.Versions = slices.Delete(h.Versions, i, i+1)

	if len(h.Versions) == 0 {
		m.removeLocked(documentID)
		return true
	}

	h.CurrentIndex = min(max(h.CurrentIndex, 0), len(h.Versions)-1)
	return true
}

// Get returns a copy of the document's history.
func (m *Manager) Get(documentID string) (History, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histories[documentID]
	if !ok {
		return History{}, false
	}
	return h.clone(), true
}

// RemoveDocument drops the whole history of a document.
func (m *Manager) RemoveDocument(documentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.histories[documentID]; !ok {
		return false
	}
	m.removeLocked(documentID)
	return true
}

// Load installs a persisted history, replacing any in-memory one. Sizes are
// recomputed from the versions and the cap is enforced.
func (m *Manager) Load(h History) {
	if h.DocumentID == "" || len(h.Versions) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := h.clone()
	if loaded.MaxVersions <= 0 {
		loaded.MaxVersions = m.cfg.MaxVersions
	}
	if len(loaded.Versions) > loaded.MaxVersions {
		loaded.Versions = loaded.Versions[:loaded.MaxVersions]
	}

	loaded.TotalSize = 0
	highest := 0
	for _, v := range loaded.Versions {
		loaded.TotalSize += v.CharCount
		highest = max(highest, v.Number)
	}
	loaded.NextNumber = max(loaded.NextNumber, highest+1)
	loaded.CurrentIndex = min(max(loaded.CurrentIndex, 0), len(loaded.Versions)-1)

	if _, ok := m.histories[loaded.DocumentID]; !ok {
		m.order = append(m.order, loaded.DocumentID)
	}
	m.histories[loaded.DocumentID] = &loaded
}

// Documents lists document IDs in insertion order.
func (m *Manager) Documents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.order)
}

// TotalSize sums the character counts of every stored version.
func (m *Manager) TotalSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.totalSizeLocked()
}

type CleanupReport struct {
	Expired   []string
	Evicted   []string
	FreedSize int
}

// Removed lists every document whose history was dropped.
func (r CleanupReport) Removed() []string {
	return append(slices.Clone(r.Expired), r.Evicted...)
}

// Cleanup drops histories not accessed within MaxAge, then drops whole histories
// in insertion order until the total size is within MaxTotalSize.
func (m *Manager) Cleanup() CleanupReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	var report CleanupReport
	now := m.now()

	for _, id := range slices.Clone(m.order) {
		h := m.histories[id]
		if now.Sub(h.LastAccessed) > m.cfg.MaxAge {
			report.Expired = append(report.Expired, id)
			report.FreedSize += h.TotalSize
			m.removeLocked(id)
		}
	}

	total := m.totalSizeLocked()
	for total > m.cfg.MaxTotalSize && len(m.order) > 0 {
		id := m.order[0]
		h := m.histories[id]
		report.Evicted = append(report.Evicted, id)
		report.FreedSize += h.TotalSize
		total -= h.TotalSize
		m.removeLocked(id)
	}

	return report
}

func (m *Manager) totalSizeLocked() int {
	total := 0
	for _, h := range m.histories {
		total += h.TotalSize
	}
	return total
}

func (m *Manager) removeLocked(documentID string) {
	delete(m.histories, documentID)
	if i := slices.Index(m.order, documentID); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}
