package rag

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for blank questions and other caller
// mistakes that are not worth a structured error.
var ErrInvalidArgument = errors.New("invalid argument")

// Retrieved is a chunk returned from similarity search, joined with its
// stored text and provenance.
type Retrieved struct {
	ChunkID string
	Text    string
	Score   float32
	Origin  string
	Title   string
	Offset  int
	Page    int
}

// Provenance renders the chunk's source reference, e.g.
// "guide.pdf, offset 1200, p.3".
func (r Retrieved) Provenance() string {
	s := fmt.Sprintf("%s, offset %d", r.Origin, r.Offset)
	if r.Page > 0 {
		s += fmt.Sprintf(", p.%d", r.Page)
	}
	return s
}

// Citation points an answer back at a retrieved chunk.
type Citation struct {
	ChunkID string
	Origin  string
	Offset  int
	Page    int
	Snippet string
}

// Turn is one message in a conversation.
type Turn struct {
	Role      string // "user" or "assistant"
	Content   string
	Citations []Citation // only set on assistant turns
}

// AnswerKind distinguishes a generated answer from the fallback used when
// retrieval finds nothing relevant.
type AnswerKind string

const (
	// AnswerGenerated means the model produced the answer from retrieved
	// context.
	AnswerGenerated AnswerKind = "generated"
	// AnswerNoContext means nothing was retrieved and the canned fallback
	// was returned instead of calling the model.
	AnswerNoContext AnswerKind = "no_context"
)

// Answer is the outcome of asking a question.
type Answer struct {
	Kind      AnswerKind
	Text      string
	Citations []Citation
	Retrieved []Retrieved
}
