package chunker

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrInvalidConfig is returned when the chunk size and overlap cannot produce progress.
var ErrInvalidConfig = errors.New("invalid chunker config")

// Chunk is a bounded substring of a document. Offsets are in characters (runes),
// End is exclusive.
type Chunk struct {
	Index int
	Text  string
	Start int
	End   int
}

// Splitter splits text into overlapping fixed-size character windows.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New validates the window configuration. overlap must be smaller than chunkSize,
// otherwise the window would never advance.
func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfig, overlap, chunkSize)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

func (s *Splitter) ChunkSize() int { return s.chunkSize }

func (s *Splitter) Overlap() int { return s.overlap }

// Chunks returns a lazy sequence over text. Ranging over it again starts from the
// beginning. Empty text yields no chunks.
func (s *Splitter) Chunks(text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		runes := []rune(text)
		total := len(runes)
		if total == 0 {
			return
		}

		step := s.chunkSize - s.overlap
		for i, start := 0, 0; ; i, start = i+1, start+step {
			end := start + s.chunkSize
			if end > total {
				end = total
			}

			if !yield(Chunk{Index: i, Text: string(runes[start:end]), Start: start, End: end}) {
				return
			}

			if end == total {
				return
			}
		}
	}
}

// Split collects every chunk of text.
func (s *Splitter) Split(text string) []Chunk {
	return slices.Collect(s.Chunks(text))
}
