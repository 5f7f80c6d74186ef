package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
	"github.com/shyam20433/PDF-extractor-RAG/internal/vectorstore/memory"
)

const (
	chunksFile  = "chunks.json"
	metaFile    = "metadata.json"
	vectorsFile = "vectors.bin"
)

// Manager serializes built stores to a data directory and loads them back.
// A store is persisted as three artifacts keyed by the shared chunk order:
// the ordered chunk records, the store metadata, and a binary vector blob.
// Each artifact carries the store's document id so a crash mid-save can
// never stitch artifacts from different ingests into one store.
type Manager struct {
	dir string
}

// NewManager creates a persistence manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the data directory.
func (m *Manager) Dir() string { return m.dir }

// chunkRecord is the on-disk shape of chunks.json.
type chunkRecord struct {
	DocumentID string         `json:"document_id"`
	Chunks     []domain.Chunk `json:"chunks"`
}

// Save writes all three artifacts for the store. Each file is written to a
// temp file and renamed into place; metadata.json goes last so an
// interrupted save leaves the previous metadata pointing at the previous
// generation.
func (m *Manager) Save(store *memory.Store) error {
	if store == nil || store.Len() == 0 {
		return fmt.Errorf("cannot persist an empty store")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	docID := store.Metadata().DocumentID

	chunksData, err := json.MarshalIndent(chunkRecord{DocumentID: docID, Chunks: store.Chunks()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(m.dir, chunksFile), chunksData); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}

	blob, err := encodeVectors(docID, store.Vectors())
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(m.dir, vectorsFile), blob); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}

	metaData, err := json.MarshalIndent(store.Metadata(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(m.dir, metaFile), metaData); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Load reads the three artifacts back and rebuilds the store. Any missing
// file, decode failure, length/dimension mismatch, or document-id
// disagreement between artifacts yields nil so the caller starts cold
// instead of serving a partially populated store.
func (m *Manager) Load() *memory.Store {
	chunksData, err := os.ReadFile(filepath.Join(m.dir, chunksFile))
	if err != nil {
		return nil
	}
	metaData, err := os.ReadFile(filepath.Join(m.dir, metaFile))
	if err != nil {
		return nil
	}
	blob, err := os.ReadFile(filepath.Join(m.dir, vectorsFile))
	if err != nil {
		return nil
	}

	var record chunkRecord
	if err := json.Unmarshal(chunksData, &record); err != nil {
		return nil
	}
	var meta domain.Metadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil
	}
	vectorsDocID, vectors, err := decodeVectors(blob)
	if err != nil {
		return nil
	}

	if meta.DocumentID == "" || record.DocumentID != meta.DocumentID || vectorsDocID != meta.DocumentID {
		return nil
	}
	chunks := record.Chunks
	if len(chunks) == 0 || len(chunks) != len(vectors) || len(chunks) != meta.ChunkCount {
		return nil
	}
	if meta.Dimension != len(vectors[0]) {
		return nil
	}

	store, err := memory.Build(chunks, vectors, meta)
	if err != nil {
		return nil
	}
	return store
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// encodeVectors lays the vectors out as little-endian: uint32 document-id
// length, the id bytes, uint32 count, uint32 dimension, then
// count*dimension float64 values in chunk order.
func encodeVectors(docID string, vectors [][]float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(docID))); err != nil {
		return nil, err
	}
	buf.WriteString(docID)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return nil, err
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(dim)); err != nil {
		return nil, err
	}
	for _, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("vector dimension %d does not match %d", len(vec), dim)
		}
		if err := binary.Write(&buf, binary.LittleEndian, vec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeVectors(blob []byte) (string, [][]float64, error) {
	r := bytes.NewReader(blob)
	var idLen uint32
	if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
		return "", nil, err
	}
	if int64(idLen) > int64(r.Len()) {
		return "", nil, fmt.Errorf("vector blob document id is truncated")
	}
	id := make([]byte, idLen)
	if _, err := r.Read(id); err != nil {
		return "", nil, err
	}
	var count, dim uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return "", nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return "", nil, err
	}
	if count == 0 || dim == 0 {
		return "", nil, fmt.Errorf("vector blob is empty")
	}
	if int64(r.Len()) != int64(count)*int64(dim)*8 {
		return "", nil, fmt.Errorf("vector blob has %d payload bytes, expected %d", r.Len(), int64(count)*int64(dim)*8)
	}
	vectors := make([][]float64, count)
	for i := range vectors {
		vec := make([]float64, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return "", nil, err
		}
		vectors[i] = vec
	}
	return string(id), vectors, nil
}
