package vectorstore

import "github.com/shyam20433/PDF-extractor-RAG/internal/domain"

// Index is an exact nearest-neighbour search structure over chunk vectors.
// Implementations must be safe for concurrent readers.
type Index interface {
	// Search returns the min(k, Len) stored chunks closest to the query
	// vector by squared L2 distance, ascending, ties broken by chunk id.
	Search(vector []float64, k int) ([]domain.SearchResult, error)
	Len() int
	Dimension() int
}
