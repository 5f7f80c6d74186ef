package service

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyam20433/PDF-extractor-RAG/internal/chunker"
	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
	"github.com/shyam20433/PDF-extractor-RAG/internal/persistence"
	"github.com/shyam20433/PDF-extractor-RAG/internal/retriever"
	"github.com/shyam20433/PDF-extractor-RAG/internal/summarizer"
	"github.com/shyam20433/PDF-extractor-RAG/internal/synthesizer"
	"github.com/shyam20433/PDF-extractor-RAG/internal/vectorstore/memory"
)

// Engine wires the chunker, embedder, store, retriever and synthesizer into
// the two operations the outer layers call: Ingest and Ask.
//
// Exactly one store is published at a time. Ingest builds a fresh store off
// to the side and swaps it in atomically, so concurrent Ask calls either see
// the complete old store or the complete new one, never a half-built one.
type Engine struct {
	chunker   *chunker.WindowChunker
	embedder  embedding.Embedder
	retriever *retriever.Retriever
	synth     *synthesizer.Synthesizer
	persist   *persistence.Manager
	log       *zap.Logger

	ingestMu sync.Mutex
	store    atomic.Pointer[memory.Store]
}

// NewEngine assembles an engine from its components. A nil logger is
// replaced with a no-op logger.
func NewEngine(ch *chunker.WindowChunker, emb embedding.Embedder, ret *retriever.Retriever, synth *synthesizer.Synthesizer, persist *persistence.Manager, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		chunker:   ch,
		embedder:  emb,
		retriever: ret,
		synth:     synth,
		persist:   persist,
		log:       log,
	}
}

// LoadPersisted publishes a previously saved store if one exists and was
// built with the configured embedding model. Returns whether a store was
// published.
func (e *Engine) LoadPersisted() bool {
	st := e.persist.Load()
	if st == nil {
		e.log.Info("no persisted store found, starting cold", zap.String("dir", e.persist.Dir()))
		return false
	}
	if got, want := st.Metadata().Model, e.embedder.ModelInfo(); got != want {
		e.log.Warn("ignoring persisted store built with a different embedding model",
			zap.String("persisted", got), zap.String("configured", want))
		return false
	}
	e.store.Store(st)
	e.log.Info("loaded persisted store",
		zap.String("document_id", st.Metadata().DocumentID),
		zap.Int("chunks", st.Len()),
		zap.Int("dimension", st.Dimension()))
	return true
}

// Ingest chunks the page-tagged text, embeds every chunk, builds and
// persists a fresh store, and atomically replaces the published one.
// A failure anywhere leaves the previously published store untouched.
// Only one ingest may run at a time; a second concurrent call is rejected
// with domain.ErrIngestBusy.
func (e *Engine) Ingest(pages []domain.Page) (int, error) {
	if !e.ingestMu.TryLock() {
		return 0, domain.ErrIngestBusy
	}
	defer e.ingestMu.Unlock()

	start := time.Now()
	chunks := e.chunker.Chunk(pages)
	if len(chunks) == 0 {
		return 0, domain.ErrEmptyDocument
	}
	e.log.Info("chunked document", zap.Int("pages", len(pages)), zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	var full strings.Builder
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	for _, p := range pages {
		full.WriteString(p.Text)
	}

	vectors, err := e.embedder.EmbedBatch(texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	meta := domain.Metadata{
		DocumentID: uuid.NewString(),
		Model:      e.embedder.ModelInfo(),
		Summary:    summarizer.Summarize(full.String(), summarizer.DefaultMaxSentences),
		CreatedAt:  time.Now().UTC(),
	}
	st, err := memory.Build(chunks, vectors, meta)
	if err != nil {
		return 0, fmt.Errorf("build store: %w", err)
	}
	if err := e.persist.Save(st); err != nil {
		return 0, fmt.Errorf("persist store: %w", err)
	}

	e.store.Store(st)
	e.log.Info("document ingested",
		zap.String("document_id", meta.DocumentID),
		zap.Int("chunks", st.Len()),
		zap.Int("dimension", st.Dimension()),
		zap.Duration("took", time.Since(start)))
	return st.Len(), nil
}

// Ask retrieves the chunks closest to the question and synthesizes a
// grounded answer. Asking before any ingest yields the fallback answer.
func (e *Engine) Ask(question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("question is empty")
	}

	snap := e.store.Load()
	results, err := e.retriever.Retrieve(snap, question)
	if err != nil {
		return domain.Answer{}, err
	}
	answer, err := e.synth.Answer(question, results)
	if err != nil {
		return domain.Answer{}, err
	}
	e.log.Debug("question answered",
		zap.String("question", question),
		zap.Int("retrieved", len(results)),
		zap.Int("sources", len(answer.Sources)))
	return answer, nil
}

// Status reports the metadata of the currently published store, and whether
// one is published at all.
func (e *Engine) Status() (domain.Metadata, bool) {
	snap := e.store.Load()
	if snap == nil {
		return domain.Metadata{}, false
	}
	return snap.Metadata(), true
}
