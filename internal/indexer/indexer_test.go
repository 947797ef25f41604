package indexer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/chunker"
	"docqa/internal/indexer/mocks"
	"docqa/internal/loader"
	"docqa/internal/storage"
	storagemocks "docqa/internal/storage/mocks"
	"docqa/internal/vectorstore"
	vsmocks "docqa/internal/vectorstore/mocks"
)

func newSplitter(t *testing.T, size, overlap int) *chunker.Splitter {
	t.Helper()
	s, err := chunker.NewSplitter(size, overlap)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}
	return s
}

func constantVectors(n int) [][]float32 {
	vecs := make([][]float32, n)
	for i := range vecs {
		vecs[i] = []float32{1, 0, 0}
	}
	return vecs
}

func TestPipeline_IngestDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	// 120 runes with a 50/10 splitter yields several chunks.
	text := strings.Repeat("a", 120)
	doc := &loader.Document{ID: "doc-1", Origin: "notes.txt", Format: loader.FormatText, Title: "Notes", Text: text}

	embedder.EXPECT().
		EmbedTexts(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, texts []string) ([][]float32, error) {
			return constantVectors(len(texts)), nil
		}).
		AnyTimes()
	docStore.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *storage.DocumentRecord) error {
			if rec.ID != "doc-1" || rec.Origin != "notes.txt" || rec.Format != "text" {
				t.Errorf("Insert() record = %+v", rec)
			}
			return nil
		})

	var inserted []storage.ChunkRecord
	chunkStore.EXPECT().
		InsertBatch(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, records []storage.ChunkRecord) error {
			inserted = records
			return nil
		})

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 2)
	result := pipeline.IngestDocument(ctx, doc)

	if result.Err != nil {
		t.Fatalf("IngestDocument() error = %v", result.Err)
	}
	if result.Origin != "notes.txt" || result.DocumentID != "doc-1" {
		t.Errorf("IngestDocument() result = %+v", result)
	}
	if result.Chunks == 0 || result.Chunks != len(inserted) {
		t.Errorf("IngestDocument() Chunks = %d, stored %d records", result.Chunks, len(inserted))
	}

	count, err := vectors.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != result.Chunks {
		t.Errorf("vector Count() = %d, want %d", count, result.Chunks)
	}

	for i, rec := range inserted {
		if rec.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, rec.ChunkIndex)
		}
		if rec.DocumentID != "doc-1" || rec.Origin != "notes.txt" || rec.Title != "Notes" {
			t.Errorf("chunk %d provenance = %+v", i, rec)
		}
	}
}

func TestPipeline_EmbeddingBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	// 5 chunks with batch size 2: expect batches of 2, 2, 1.
	text := strings.Repeat("a", 210)
	doc := &loader.Document{ID: "doc-1", Origin: "a.txt", Format: loader.FormatText, Text: text}
	splitter := newSplitter(t, 50, 10)
	wantChunks := len(splitter.Split(text))
	if wantChunks != 5 {
		t.Fatalf("test setup: got %d chunks, want 5", wantChunks)
	}

	var batchSizes []int
	embedder.EXPECT().
		EmbedTexts(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, texts []string) ([][]float32, error) {
			batchSizes = append(batchSizes, len(texts))
			return constantVectors(len(texts)), nil
		}).
		Times(3)
	docStore.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	chunkStore.EXPECT().InsertBatch(ctx, gomock.Any()).Return(nil)

	pipeline := NewPipeline(splitter, embedder, docStore, chunkStore, vectors, 2)
	result := pipeline.IngestDocument(ctx, doc)

	if result.Err != nil {
		t.Fatalf("IngestDocument() error = %v", result.Err)
	}
	if len(batchSizes) != 3 || batchSizes[0] != 2 || batchSizes[1] != 2 || batchSizes[2] != 1 {
		t.Errorf("embedding batch sizes = %v, want [2 2 1]", batchSizes)
	}
}

func TestPipeline_EmbeddingFailureLeavesNoState(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	embedder.EXPECT().
		EmbedTexts(ctx, gomock.Any()).
		Return(nil, errors.New("service unavailable"))
	// No Insert or InsertBatch expectations: storage must not be touched.

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 32)
	doc := &loader.Document{ID: "doc-1", Origin: "a.txt", Format: loader.FormatText, Text: strings.Repeat("a", 120)}
	result := pipeline.IngestDocument(ctx, doc)

	if result.Err == nil {
		t.Fatal("IngestDocument() expected error, got nil")
	}
	count, err := vectors.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("vector Count() = %d, want 0 after failed embed", count)
	}
}

func TestPipeline_VectorAddFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vsmocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().
		EmbedTexts(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, texts []string) ([][]float32, error) {
			return constantVectors(len(texts)), nil
		})
	docStore.EXPECT().Insert(ctx, gomock.Any()).Return(nil)

	var insertedIDs []string
	chunkStore.EXPECT().
		InsertBatch(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, records []storage.ChunkRecord) error {
			for _, r := range records {
				insertedIDs = append(insertedIDs, r.ID)
			}
			return nil
		})
	vectors.EXPECT().
		Add(ctx, gomock.Any()).
		Return(errors.New("index unavailable"))
	chunkStore.EXPECT().
		DeleteByIDs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []string) error {
			if len(ids) != len(insertedIDs) {
				t.Errorf("DeleteByIDs() got %d IDs, want %d", len(ids), len(insertedIDs))
			}
			return nil
		})
	docStore.EXPECT().Delete(ctx, "doc-1").Return(nil)

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 32)
	doc := &loader.Document{ID: "doc-1", Origin: "a.txt", Format: loader.FormatText, Text: strings.Repeat("a", 120)}
	result := pipeline.IngestDocument(ctx, doc)

	if result.Err == nil {
		t.Fatal("IngestDocument() expected error, got nil")
	}
}

func TestPipeline_EmptyDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	docStore.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	// The embedder must not be called for an empty document.

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 32)
	doc := &loader.Document{ID: "doc-1", Origin: "empty.txt", Format: loader.FormatText, Text: ""}
	result := pipeline.IngestDocument(ctx, doc)

	if result.Err != nil {
		t.Fatalf("IngestDocument() error = %v", result.Err)
	}
	if result.Chunks != 0 {
		t.Errorf("IngestDocument() Chunks = %d, want 0", result.Chunks)
	}
}

func TestPipeline_IngestDocuments_PerDocumentFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	// First document fails to embed, second succeeds.
	gomock.InOrder(
		embedder.EXPECT().EmbedTexts(ctx, gomock.Any()).Return(nil, errors.New("boom")),
		embedder.EXPECT().
			EmbedTexts(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, texts []string) ([][]float32, error) {
				return constantVectors(len(texts)), nil
			}),
	)
	docStore.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	chunkStore.EXPECT().InsertBatch(ctx, gomock.Any()).Return(nil)

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 32)
	docs := []*loader.Document{
		{ID: "doc-1", Origin: "bad.txt", Format: loader.FormatText, Text: strings.Repeat("a", 60)},
		{ID: "doc-2", Origin: "good.txt", Format: loader.FormatText, Text: strings.Repeat("b", 60)},
	}
	results := pipeline.IngestDocuments(ctx, docs)

	if len(results) != 2 {
		t.Fatalf("IngestDocuments() returned %d results, want 2", len(results))
	}
	if results[0].Err == nil {
		t.Error("results[0].Err = nil, want embed failure")
	}
	if results[1].Err != nil {
		t.Errorf("results[1].Err = %v, want nil", results[1].Err)
	}
	if results[1].Chunks == 0 {
		t.Error("results[1].Chunks = 0, want indexed chunks")
	}
}

func TestPipeline_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	embedder := mocks.NewMockEmbedder(ctrl)
	docStore := storagemocks.NewMockDocumentStore(ctrl)
	chunkStore := storagemocks.NewMockChunkStore(ctrl)
	vectors := vectorstore.NewMemoryStore()

	if err := vectors.Add(ctx, []vectorstore.Entry{{ChunkID: "c-1", Vec: []float32{1, 0}}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	docStore.EXPECT().DeleteAll(ctx).Return(nil)

	pipeline := NewPipeline(newSplitter(t, 50, 10), embedder, docStore, chunkStore, vectors, 32)
	if err := pipeline.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	count, err := vectors.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("vector Count() after Reset = %d, want 0", count)
	}
}
