package chunker

import (
	"errors"
	"fmt"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
)

const (
	// DefaultSize is the default window size in characters.
	DefaultSize = 500
	// DefaultOverlap is the default number of characters shared by
	// consecutive windows.
	DefaultOverlap = 100
)

// ErrInvalidOverlap is returned when the configured overlap is not smaller
// than the window size. This is a startup-time configuration error.
var ErrInvalidOverlap = errors.New("chunk overlap must be smaller than chunk size")

// WindowChunker splits page-tagged text into fixed-size character windows
// with overlap. Each window is attributed to the page containing its first
// character.
type WindowChunker struct {
	size    int
	overlap int
}

// New creates a window chunker. Size and overlap are in characters.
func New(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, ErrInvalidOverlap
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Chunk concatenates the page texts and emits windows of the configured
// size, advancing by size minus overlap. The final window may be shorter.
// Empty input yields zero chunks.
func (c *WindowChunker) Chunk(pages []domain.Page) []domain.Chunk {
	// Concatenate pages while recording the cumulative character offset at
	// which each page starts. Offsets are in runes so multi-byte text does
	// not get split mid-character.
	var full []rune
	type boundary struct {
		start int
		page  int
	}
	var boundaries []boundary
	for _, p := range pages {
		boundaries = append(boundaries, boundary{start: len(full), page: p.Number})
		full = append(full, []rune(p.Text)...)
	}
	if len(full) == 0 {
		return nil
	}

	pageAt := func(offset int) int {
		page := 1
		for _, b := range boundaries {
			if b.start > offset {
				break
			}
			page = b.page
		}
		return page
	}

	step := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(full); start += step {
		end := start + c.size
		if end > len(full) {
			end = len(full)
		}
		chunks = append(chunks, domain.Chunk{
			ID:        len(chunks),
			Text:      string(full[start:end]),
			Page:      pageAt(start),
			CharStart: start,
			CharEnd:   end,
		})
		if end == len(full) {
			break
		}
	}
	return chunks
}
