package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docqa/internal/vectorstore VectorStore

import "context"

// Entry pairs a chunk's embedding vector with its identity and metadata.
type Entry struct {
	ChunkID string
	Vec     []float32
	Meta    map[string]any
}

// Result is a single similarity-search hit.
type Result struct {
	ChunkID string
	Score   float32
	Meta    map[string]any
}

// VectorStore holds index entries and answers nearest-neighbor queries.
// Entries are append-only; the only removal is a full Reset.
type VectorStore interface {
	// Add appends entries to the index.
	Add(ctx context.Context, entries []Entry) error

	// Search returns up to k entries ordered by descending similarity to the
	// query vector. Ties are broken by insertion order (earlier wins).
	// An empty store yields an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]Result, error)

	// Reset discards all entries unconditionally.
	Reset(ctx context.Context) error

	// Count returns the number of entries currently indexed.
	Count(ctx context.Context) (int, error)
}
