package synthesizer

import (
	"fmt"
	"strings"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
	"github.com/shyam20433/PDF-extractor-RAG/internal/generation"
)

// FallbackAnswer is the fixed response when the store holds nothing close
// enough to the question. It is a normal outcome, not an error.
const FallbackAnswer = "Not found in the document"

// snippetLimit caps source snippets for citation display.
const snippetLimit = 200

// Synthesizer turns retrieved chunks and a question into a grounded answer
// with page citations.
type Synthesizer struct {
	generator   generation.Generator
	maxDistance float64
}

// New creates a synthesizer. maxDistance is the relevance threshold on the
// squared L2 distance; zero disables the check.
func New(generator generation.Generator, maxDistance float64) *Synthesizer {
	return &Synthesizer{generator: generator, maxDistance: maxDistance}
}

// Answer builds the grounded prompt, calls the generation model once, and
// packages the reply with sources in retrieval rank order. When nothing was
// retrieved, or every retrieved chunk sits beyond the relevance threshold,
// it returns the fallback answer with no sources and does not call the
// model. A generation failure is returned as an error, never mapped to the
// fallback.
func (s *Synthesizer) Answer(question string, retrieved []domain.SearchResult) (domain.Answer, error) {
	if len(retrieved) == 0 || s.allBeyondThreshold(retrieved) {
		return domain.Answer{Text: FallbackAnswer, Sources: []domain.Source{}}, nil
	}

	text, err := s.generator.Generate(buildPrompt(question, retrieved))
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Text: strings.TrimSpace(text), Sources: sources(retrieved)}, nil
}

func (s *Synthesizer) allBeyondThreshold(retrieved []domain.SearchResult) bool {
	if s.maxDistance <= 0 {
		return false
	}
	for _, r := range retrieved {
		if r.Distance <= s.maxDistance {
			return false
		}
	}
	return true
}

func buildPrompt(question string, retrieved []domain.SearchResult) string {
	parts := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		parts = append(parts, fmt.Sprintf("[Page %d]: %s", r.Chunk.Page, r.Chunk.Text))
	}
	context := strings.Join(parts, "\n\n")

	return fmt.Sprintf(`You are a helpful AI assistant.
Answer the question based ONLY on the provided context.
If the context contains relevant information, summarize it to answer the question.
If the context is completely unrelated to the question, say "%s".

Context:
%s

Question:
%s

Answer:`, FallbackAnswer, context, question)
}

func sources(retrieved []domain.SearchResult) []domain.Source {
	out := make([]domain.Source, len(retrieved))
	for i, r := range retrieved {
		out[i] = domain.Source{Page: r.Chunk.Page, Snippet: snippet(r.Chunk.Text)}
	}
	return out
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + "..."
}
