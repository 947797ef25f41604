package storage

import "time"

// DocumentRecord is an ingested source document in the registry.
// The raw text is not kept; only chunks persist downstream.
type DocumentRecord struct {
	ID        string // UUID
	Origin    string // File name or URL
	Format    string
	Title     string
	CreatedAt time.Time
}

// ChunkRecord is a chunk of text from a document, indexed for vector search.
// Origin, Title and Page are denormalized from the document so citations can
// be rendered without a join.
type ChunkRecord struct {
	ID         string // UUID (same as the vector store entry ID)
	DocumentID string
	ChunkIndex int // Index within the document (starts at 0)
	Offset     int // Rune offset within the document text
	CharLength int // Length in runes
	Text       string
	Origin     string
	Title      string
	Page       int // 1-based PDF page, 0 when not applicable
}
