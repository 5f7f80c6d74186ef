package domain

import "time"

// Page is one page of extracted document text, as handed over by the
// upstream PDF extraction step.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Chunk is a contiguous, page-attributed slice of the document text used as
// the unit of retrieval. Chunks are immutable once a store is built.
type Chunk struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Page      int    `json:"page"`
	CharStart int    `json:"char_start"`
	CharEnd   int    `json:"char_end"`
}

// SearchResult pairs a chunk with its squared L2 distance to the query
// vector. Smaller distance means more similar.
type SearchResult struct {
	Chunk    Chunk
	Distance float64
}

// Source is a page citation derived from a retrieved chunk.
type Source struct {
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

// Answer is the grounded response to a question, with its citations in
// retrieval rank order.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Metadata describes a built store.
type Metadata struct {
	DocumentID string    `json:"document_id"`
	Model      string    `json:"model"`
	Dimension  int       `json:"dimension"`
	ChunkCount int       `json:"chunk_count"`
	Summary    string    `json:"summary,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
