package history

import (
	"slices"
	"time"
)

// Version is one stored summary text.
type Version struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	CharCount  int       `json:"char_count"`
	IsOriginal bool      `json:"is_original"`
	Model      string    `json:"model,omitempty"`
}

// History is the bounded version list of one document, newest first.
type History struct {
	DocumentID   string    `json:"document_id"`
	Versions     []Version `json:"versions"`
	MaxVersions  int       `json:"max_versions"`
	TotalSize    int       `json:"total_size"`
	CurrentIndex int       `json:"current_index"`
	NextNumber   int       `json:"next_number"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Current returns the version the current index points at.
func (h History) Current() (Version, bool) {
	if h.CurrentIndex < 0 || h.CurrentIndex >= len(h.Versions) {
		return Version{}, false
	}
	return h.Versions[h.CurrentIndex], true
}

func (h History) indexOf(versionID string) int {
	return slices.IndexFunc(h.Versions, func(v Version) bool {
		return v.ID == versionID
	})
}

func (h *History) clone() History {
	c := *h
	c.Versions = slices.Clone(h.Versions)
	return c
}
