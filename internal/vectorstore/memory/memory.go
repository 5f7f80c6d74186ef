package memory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
)

// Store holds one document's chunks and vectors with a flat exact-search
// index over the vectors. A Store is immutable after Build, so any number
// of readers may search it without coordination; a new ingest builds a
// fresh Store and swaps the published pointer.
type Store struct {
	meta    domain.Metadata
	chunks  []domain.Chunk
	vectors [][]float64
}

// Build constructs a fully populated store. Chunks and vectors must be
// parallel slices and every vector must have the same dimension.
func Build(chunks []domain.Chunk, vectors [][]float64, meta domain.Metadata) (*Store, error) {
	if len(chunks) == 0 {
		return nil, errors.New("cannot build a store without chunks")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("vectors must not be empty")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}
	meta.Dimension = dim
	meta.ChunkCount = len(chunks)
	return &Store{meta: meta, chunks: chunks, vectors: vectors}, nil
}

// Search scans all stored vectors and returns the min(k, n) closest chunks
// by squared L2 distance, sorted ascending, ties broken by ascending chunk
// id. A nil or empty store yields zero results, not an error.
func (s *Store) Search(vector []float64, k int) ([]domain.SearchResult, error) {
	if s == nil || len(s.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if len(vector) != s.meta.Dimension {
		return nil, fmt.Errorf("query vector has dimension %d, store has %d", len(vector), s.meta.Dimension)
	}

	results := make([]domain.SearchResult, len(s.vectors))
	for i, v := range s.vectors {
		results[i] = domain.SearchResult{Chunk: s.chunks[i], Distance: squaredL2(vector, v)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chunks)
}

// Dimension returns the vector dimension the store was built with.
func (s *Store) Dimension() int {
	if s == nil {
		return 0
	}
	return s.meta.Dimension
}

// Metadata returns the store metadata.
func (s *Store) Metadata() domain.Metadata {
	if s == nil {
		return domain.Metadata{}
	}
	return s.meta
}

// Chunks returns the ordered chunk records.
func (s *Store) Chunks() []domain.Chunk {
	if s == nil {
		return nil
	}
	return s.chunks
}

// Vectors returns the stored vectors, aligned with Chunks.
func (s *Store) Vectors() [][]float64 {
	if s == nil {
		return nil
	}
	return s.vectors
}

func squaredL2(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
