package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks docqa/internal/rag Embedder,ChatClient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Embedder embeds texts for retrieval.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatClient generates a completion from a conversation.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Engine answers questions over the indexed documents: it embeds the
// question, retrieves the nearest chunks and asks the model to answer from
// them, with citations pointing back at the sources.
type Engine struct {
	embedder Embedder
	chat     ChatClient
	vectors  vectorstore.VectorStore
	chunks   storage.ChunkStore
	topK     int
	params   llm.ChatParams
}

// NewEngine creates a question-answering engine. topK is the number of
// chunks retrieved per question.
func NewEngine(
	embedder Embedder,
	chat ChatClient,
	vectors vectorstore.VectorStore,
	chunks storage.ChunkStore,
	topK int,
	params llm.ChatParams,
) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{
		embedder: embedder,
		chat:     chat,
		vectors:  vectors,
		chunks:   chunks,
		topK:     topK,
		params:   params,
	}
}

// Retrieve returns up to k chunks most similar to the query, with their
// stored text and provenance. An empty index yields an empty result.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]Retrieved, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidArgument)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	}

	vecs, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("expected 1 query vector, got %d", len(vecs))
	}

	hits, err := e.vectors.Search(ctx, vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	logger := contextutil.LoggerFromContext(ctx)
	retrieved := make([]Retrieved, 0, len(hits))
	for _, hit := range hits {
		chunk, err := e.chunks.GetByID(ctx, hit.ChunkID)
		if errors.Is(err, storage.ErrNotFound) {
			// Index and storage drifted apart; skip rather than fail
			// the whole query.
			logger.Warn("indexed chunk missing from storage", "chunk_id", hit.ChunkID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load chunk %s: %w", hit.ChunkID, err)
		}
		retrieved = append(retrieved, Retrieved{
			ChunkID: chunk.ID,
			Text:    chunk.Text,
			Score:   hit.Score,
			Origin:  chunk.Origin,
			Title:   chunk.Title,
			Offset:  chunk.Offset,
			Page:    chunk.Page,
		})
	}
	return retrieved, nil
}

// Ask answers a question in the context of the session's conversation. The
// question and answer are appended to the session only when the whole
// exchange succeeds; a failed generation leaves the history untouched.
func (e *Engine) Ask(ctx context.Context, session *Session, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: empty question", ErrInvalidArgument)
	}

	logger := contextutil.LoggerFromContext(ctx)

	retrieved, err := e.Retrieve(ctx, question, e.topK)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		answer := &Answer{Kind: AnswerNoContext, Text: noContextMessage}
		session.Append(Turn{Role: "user", Content: question})
		session.Append(Turn{Role: "assistant", Content: answer.Text})
		logger.Info("answered without context", "question_len", len(question))
		return answer, nil
	}

	messages := buildMessages(session.Window(), retrieved, question)
	raw, err := e.chat.ChatWithMessages(ctx, messages, e.params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	text, citations := parseAnswer(raw, retrieved)
	answer := &Answer{
		Kind:      AnswerGenerated,
		Text:      text,
		Citations: citations,
		Retrieved: retrieved,
	}

	session.Append(Turn{Role: "user", Content: question})
	session.Append(Turn{Role: "assistant", Content: answer.Text, Citations: citations})
	logger.Info("answered question",
		"retrieved", len(retrieved),
		"citations", len(citations),
	)
	return answer, nil
}
