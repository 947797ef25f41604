package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks docqa/internal/indexer Embedder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/contextutil"
	"docqa/internal/loader"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Embedder turns a batch of texts into embedding vectors, one per text, in
// input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IngestResult reports the outcome of ingesting a single document. A batch
// ingest returns one result per input; failures are per-document and do not
// abort the rest of the batch.
type IngestResult struct {
	Origin     string
	DocumentID string
	Chunks     int
	Err        error
}

// Pipeline chunks documents, embeds the chunks and stores both the text and
// the vectors. Each document is ingested atomically: either all of its
// chunks become searchable or none do.
type Pipeline struct {
	splitter  *chunker.Splitter
	embedder  Embedder
	documents storage.DocumentStore
	chunks    storage.ChunkStore
	vectors   vectorstore.VectorStore
	batchSize int
}

// NewPipeline creates an ingestion pipeline. batchSize caps how many chunk
// texts go into a single embedding request.
func NewPipeline(
	splitter *chunker.Splitter,
	embedder Embedder,
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	vectors vectorstore.VectorStore,
	batchSize int,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Pipeline{
		splitter:  splitter,
		embedder:  embedder,
		documents: documents,
		chunks:    chunks,
		vectors:   vectors,
		batchSize: batchSize,
	}
}

// IngestDocuments ingests each document independently and returns one result
// per input, in input order.
func (p *Pipeline) IngestDocuments(ctx context.Context, docs []*loader.Document) []IngestResult {
	results := make([]IngestResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, p.IngestDocument(ctx, doc))
	}
	return results
}

// IngestDocument chunks, embeds and indexes a single document.
func (p *Pipeline) IngestDocument(ctx context.Context, doc *loader.Document) IngestResult {
	logger := contextutil.LoggerFromContext(ctx)
	result := IngestResult{Origin: doc.Origin, DocumentID: doc.ID}

	chunks := p.splitter.Split(doc.Text)
	if len(chunks) == 0 {
		// Nothing to index, but the document is still registered so it
		// shows up in stats.
		if err := p.documents.Insert(ctx, documentRecord(doc)); err != nil {
			result.Err = fmt.Errorf("failed to register document %s: %w", doc.Origin, err)
		}
		return result
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	// Embed everything before touching storage so an embedding failure
	// leaves no partial state behind.
	vecs, err := p.embedAll(ctx, texts)
	if err != nil {
		result.Err = fmt.Errorf("failed to embed %s: %w", doc.Origin, err)
		return result
	}

	records := make([]storage.ChunkRecord, len(chunks))
	entries := make([]vectorstore.Entry, len(chunks))
	for i, c := range chunks {
		id := uuid.New().String()
		page := doc.PageForOffset(c.Offset)
		records[i] = storage.ChunkRecord{
			ID:         id,
			DocumentID: doc.ID,
			ChunkIndex: c.Index,
			Offset:     c.Offset,
			CharLength: len([]rune(c.Text)),
			Text:       c.Text,
			Origin:     doc.Origin,
			Title:      doc.Title,
			Page:       page,
		}
		entries[i] = vectorstore.Entry{
			ChunkID: id,
			Vec:     vecs[i],
			Meta: map[string]any{
				"origin":      doc.Origin,
				"chunk_index": c.Index,
			},
		}
	}

	if err := p.documents.Insert(ctx, documentRecord(doc)); err != nil {
		result.Err = fmt.Errorf("failed to register document %s: %w", doc.Origin, err)
		return result
	}
	if err := p.chunks.InsertBatch(ctx, records); err != nil {
		p.rollbackDocument(ctx, doc.ID, nil)
		result.Err = fmt.Errorf("failed to store chunks for %s: %w", doc.Origin, err)
		return result
	}
	if err := p.vectors.Add(ctx, entries); err != nil {
		ids := make([]string, len(records))
		for i, r := range records {
			ids[i] = r.ID
		}
		p.rollbackDocument(ctx, doc.ID, ids)
		result.Err = fmt.Errorf("failed to index vectors for %s: %w", doc.Origin, err)
		return result
	}

	logger.Info("ingested document",
		"origin", doc.Origin,
		"format", doc.Format,
		"chunks", len(chunks),
	)
	result.Chunks = len(chunks)
	return result
}

// Reset wipes the document registry, chunk storage and vector index.
func (p *Pipeline) Reset(ctx context.Context) error {
	if err := p.vectors.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset vector index: %w", err)
	}
	// Deleting documents cascades to chunks.
	if err := p.documents.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset document storage: %w", err)
	}
	return nil
}

// embedAll embeds texts in batches of at most batchSize, preserving order.
func (p *Pipeline) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := p.embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, batch...)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}

// rollbackDocument undoes a partially ingested document. Failures are logged
// and swallowed; the ingest error is what the caller reports.
func (p *Pipeline) rollbackDocument(ctx context.Context, docID string, chunkIDs []string) {
	logger := contextutil.LoggerFromContext(ctx)
	if len(chunkIDs) > 0 {
		if err := p.chunks.DeleteByIDs(ctx, chunkIDs); err != nil {
			logger.Error("failed to roll back chunks", "document_id", docID, "error", err)
		}
	}
	if err := p.documents.Delete(ctx, docID); err != nil {
		logger.Error("failed to roll back document", "document_id", docID, "error", err)
	}
}

func documentRecord(doc *loader.Document) *storage.DocumentRecord {
	return &storage.DocumentRecord{
		ID:     doc.ID,
		Origin: doc.Origin,
		Format: string(doc.Format),
		Title:  doc.Title,
	}
}
