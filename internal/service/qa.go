package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_qa_service.go -package=mocks -mock_names=QAService=MockQAService docqa/internal/service QAService

import (
	"bytes"
	"context"
	"sync"

	"docqa/internal/contextutil"
	"docqa/internal/indexer"
	"docqa/internal/loader"
	"docqa/internal/rag"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Upload is a single file submitted for ingestion.
type Upload struct {
	Filename string
	Data     []byte
}

// Stats summarizes the current state of the knowledge base and conversation.
type Stats struct {
	Documents    int `json:"documents"`
	Chunks       int `json:"chunks"`
	Vectors      int `json:"vectors"`
	HistoryTurns int `json:"history_turns"`
}

// QAService is the application layer over ingestion and question answering.
// This interface is defined from the handlers' perspective (consumer-first).
type QAService interface {
	// IngestUploads loads and indexes uploaded files, one result per file.
	IngestUploads(ctx context.Context, uploads []Upload) []indexer.IngestResult
	// IngestURL fetches a web page and indexes its readable text.
	IngestURL(ctx context.Context, url string) indexer.IngestResult
	// Ask answers a question against the indexed documents, in the context
	// of the running conversation.
	Ask(ctx context.Context, question string) (*rag.Answer, error)
	// ClearHistory forgets the conversation but keeps the index.
	ClearHistory(ctx context.Context)
	// ResetAll clears the conversation and wipes the index.
	ResetAll(ctx context.Context) error
	// Stats reports index and conversation sizes.
	Stats(ctx context.Context) (Stats, error)
}

// qaService implements QAService.
type qaService struct {
	// askMu serializes questions so concurrent asks cannot interleave
	// their turn pairs in the shared conversation.
	askMu     sync.Mutex
	web       *loader.WebLoader
	pipeline  *indexer.Pipeline
	engine    *rag.Engine
	session   *rag.Session
	artifacts *storage.ArtifactStore
	documents storage.DocumentStore
	chunks    storage.ChunkStore
	vectors   vectorstore.VectorStore
}

// NewQAService creates a new QAService around a single shared conversation.
func NewQAService(
	web *loader.WebLoader,
	pipeline *indexer.Pipeline,
	engine *rag.Engine,
	session *rag.Session,
	artifacts *storage.ArtifactStore,
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	vectors vectorstore.VectorStore,
) QAService {
	return &qaService{
		web:       web,
		pipeline:  pipeline,
		engine:    engine,
		session:   session,
		artifacts: artifacts,
		documents: documents,
		chunks:    chunks,
		vectors:   vectors,
	}
}

// IngestUploads loads and indexes each uploaded file independently.
func (s *qaService) IngestUploads(ctx context.Context, uploads []Upload) []indexer.IngestResult {
	logger := contextutil.LoggerFromContext(ctx)
	results := make([]indexer.IngestResult, 0, len(uploads))

	for _, upload := range uploads {
		format, err := loader.FormatForPath(upload.Filename)
		if err != nil {
			results = append(results, indexer.IngestResult{Origin: upload.Filename, Err: err})
			continue
		}
		doc, err := loader.LoadFile(bytes.NewReader(upload.Data), upload.Filename, format)
		if err != nil {
			results = append(results, indexer.IngestResult{Origin: upload.Filename, Err: err})
			continue
		}

		result := s.pipeline.IngestDocument(ctx, doc)
		if result.Err == nil && s.artifacts != nil {
			// Keep a copy of the raw upload. The chunks are already
			// indexed, so a failed save is only worth a log line.
			if _, err := s.artifacts.Save(upload.Data, upload.Filename); err != nil {
				logger.Warn("failed to save uploaded file", "filename", upload.Filename, "error", err)
			}
		}
		results = append(results, result)
	}
	return results
}

// IngestURL fetches a web page and indexes its readable text.
func (s *qaService) IngestURL(ctx context.Context, url string) indexer.IngestResult {
	if url == "" {
		return indexer.IngestResult{Err: &ValidationError{Field: "url", Message: "cannot be empty"}}
	}
	doc, err := s.web.LoadURL(ctx, url)
	if err != nil {
		return indexer.IngestResult{Origin: url, Err: WrapError(err, "failed to load url")}
	}
	return s.pipeline.IngestDocument(ctx, doc)
}

// Ask answers a question in the running conversation.
func (s *qaService) Ask(ctx context.Context, question string) (*rag.Answer, error) {
	if question == "" {
		return nil, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	s.askMu.Lock()
	defer s.askMu.Unlock()

	answer, err := s.engine.Ask(ctx, s.session, question)
	if err != nil {
		return nil, WrapError(err, "failed to answer question")
	}
	return answer, nil
}

// ClearHistory forgets the conversation but keeps the index.
func (s *qaService) ClearHistory(ctx context.Context) {
	s.session.Clear()
	contextutil.LoggerFromContext(ctx).Info("conversation history cleared")
}

// ResetAll clears the conversation and wipes the index.
func (s *qaService) ResetAll(ctx context.Context) error {
	if err := s.pipeline.Reset(ctx); err != nil {
		return WrapError(err, "failed to reset index")
	}
	s.session.Clear()
	contextutil.LoggerFromContext(ctx).Info("index and conversation reset")
	return nil
}

// Stats reports index and conversation sizes.
func (s *qaService) Stats(ctx context.Context) (Stats, error) {
	docs, err := s.documents.Count(ctx)
	if err != nil {
		return Stats{}, WrapError(err, "failed to count documents")
	}
	chunks, err := s.chunks.Count(ctx)
	if err != nil {
		return Stats{}, WrapError(err, "failed to count chunks")
	}
	vectors, err := s.vectors.Count(ctx)
	if err != nil {
		return Stats{}, WrapError(err, "failed to count vectors")
	}
	return Stats{
		Documents:    docs,
		Chunks:       chunks,
		Vectors:      vectors,
		HistoryTurns: s.session.Len(),
	}, nil
}
