package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
)

func testChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{ID: i, Text: "chunk", Page: 1}
	}
	return chunks
}

func TestBuildRejectsMismatchedLengths(t *testing.T) {
	_, err := Build(testChunks(2), [][]float64{{1, 0}}, domain.Metadata{})
	assert.Error(t, err)
}

func TestBuildRejectsMixedDimensions(t *testing.T) {
	_, err := Build(testChunks(2), [][]float64{{1, 0}, {1, 0, 0}}, domain.Metadata{})
	assert.Error(t, err)
}

func TestBuildRejectsEmpty(t *testing.T) {
	_, err := Build(nil, nil, domain.Metadata{})
	assert.Error(t, err)
}

func TestBuildFillsMetadata(t *testing.T) {
	st, err := Build(testChunks(3), [][]float64{{1, 0}, {0, 1}, {1, 1}}, domain.Metadata{Model: "ollama/nomic-embed-text"})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Metadata().Dimension)
	assert.Equal(t, 3, st.Metadata().ChunkCount)
	assert.Equal(t, "ollama/nomic-embed-text", st.Metadata().Model)
}

func TestSearchOrdersByDistance(t *testing.T) {
	st, err := Build(testChunks(3), [][]float64{
		{10, 0},
		{1, 0},
		{3, 0},
	}, domain.Metadata{})
	require.NoError(t, err)

	results, err := st.Search([]float64{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Chunk.ID)
	assert.Equal(t, 2, results[1].Chunk.ID)
	assert.Equal(t, 0, results[2].Chunk.ID)
	assert.Equal(t, 1.0, results[0].Distance)
	assert.Equal(t, 9.0, results[1].Distance)
	assert.Equal(t, 100.0, results[2].Distance)
}

func TestSearchBreaksTiesByChunkID(t *testing.T) {
	// All vectors equidistant from the query.
	st, err := Build(testChunks(4), [][]float64{
		{0, 1},
		{1, 0},
		{0, -1},
		{-1, 0},
	}, domain.Metadata{})
	require.NoError(t, err)

	results, err := st.Search([]float64{0, 0}, 4)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Chunk.ID)
	}
}

func TestSearchReturnsMinKN(t *testing.T) {
	st, err := Build(testChunks(2), [][]float64{{1}, {2}}, domain.Metadata{})
	require.NoError(t, err)

	results, err := st.Search([]float64{0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = st.Search([]float64{0}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = st.Search([]float64{0}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNilStore(t *testing.T) {
	var st *Store
	results, err := st.Search([]float64{1, 2}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, st.Dimension())
}

func TestSearchRejectsWrongDimension(t *testing.T) {
	st, err := Build(testChunks(1), [][]float64{{1, 2}}, domain.Metadata{})
	require.NoError(t, err)

	_, err = st.Search([]float64{1, 2, 3}, 1)
	assert.Error(t, err)
}
