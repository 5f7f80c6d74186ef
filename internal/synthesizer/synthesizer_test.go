package synthesizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
	"github.com/shyam20433/PDF-extractor-RAG/internal/generation"
)

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) ModelInfo() string { return "stub/test" }

func (s *stubGenerator) Generate(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func retrieved() []domain.SearchResult {
	return []domain.SearchResult{
		{Chunk: domain.Chunk{ID: 4, Text: "the main findings are clear", Page: 3}, Distance: 0.2},
		{Chunk: domain.Chunk{ID: 1, Text: "additional details", Page: 5}, Distance: 0.8},
	}
}

func TestAnswerPackagesSources(t *testing.T) {
	gen := &stubGenerator{reply: " The findings are clear. "}
	s := New(gen, 0)

	ans, err := s.Answer("What are the main findings?", retrieved())
	require.NoError(t, err)

	assert.Equal(t, "The findings are clear.", ans.Text)
	require.Len(t, ans.Sources, 2)
	assert.Equal(t, 3, ans.Sources[0].Page)
	assert.Equal(t, "the main findings are clear", ans.Sources[0].Snippet)
	assert.Equal(t, 5, ans.Sources[1].Page)
}

func TestAnswerPromptGrounding(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	s := New(gen, 0)

	_, err := s.Answer("What are the main findings?", retrieved())
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "ONLY on the provided context")
	assert.Contains(t, prompt, "[Page 3]: the main findings are clear")
	assert.Contains(t, prompt, "[Page 5]: additional details")
	assert.Contains(t, prompt, "What are the main findings?")
	// Chunks appear in rank order.
	assert.Less(t, strings.Index(prompt, "[Page 3]"), strings.Index(prompt, "[Page 5]"))
}

func TestAnswerFallbackOnEmptyRetrieval(t *testing.T) {
	gen := &stubGenerator{reply: "should not be called"}
	s := New(gen, 0)

	ans, err := s.Answer("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, ans.Text)
	assert.Empty(t, ans.Sources)
	assert.Empty(t, gen.prompts)
}

func TestAnswerFallbackWhenAllBeyondThreshold(t *testing.T) {
	gen := &stubGenerator{reply: "should not be called"}
	s := New(gen, 0.5)

	far := []domain.SearchResult{
		{Chunk: domain.Chunk{ID: 0, Text: "botany", Page: 1}, Distance: 2.1},
		{Chunk: domain.Chunk{ID: 1, Text: "ferns", Page: 2}, Distance: 3.7},
	}
	ans, err := s.Answer("unrelated question", far)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, ans.Text)
	assert.Empty(t, ans.Sources)
	assert.Empty(t, gen.prompts)
}

func TestAnswerUsesAllChunksWhenAnyWithinThreshold(t *testing.T) {
	gen := &stubGenerator{reply: "grounded answer"}
	s := New(gen, 0.5)

	ans, err := s.Answer("question", retrieved())
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", ans.Text)
	assert.Len(t, ans.Sources, 2)
}

func TestAnswerGenerationFailureIsNotFallback(t *testing.T) {
	gen := &stubGenerator{err: &generation.ServiceError{Backend: "stub", Err: assert.AnError}}
	s := New(gen, 0)

	_, err := s.Answer("question", retrieved())
	require.Error(t, err)

	var svcErr *generation.ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestAnswerSnippetTruncation(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	s := New(gen, 0)

	long := strings.Repeat("w", 450)
	results := []domain.SearchResult{{Chunk: domain.Chunk{ID: 0, Text: long, Page: 7}, Distance: 0.1}}

	ans, err := s.Answer("question", results)
	require.NoError(t, err)
	require.Len(t, ans.Sources, 1)
	assert.Equal(t, strings.Repeat("w", 200)+"...", ans.Sources[0].Snippet)
}
