package rag

import "sync"

// Session holds a single conversation's history. It is safe for concurrent
// use; a server typically keeps one session per user (or one global one).
type Session struct {
	mu         sync.Mutex
	turns      []Turn
	maxTurns   int
	charBudget int
}

// NewSession creates a session whose prompt window keeps at most maxTurns
// turns and at most charBudget characters of history, dropping oldest turns
// first. Non-positive limits disable the respective bound.
func NewSession(maxTurns, charBudget int) *Session {
	return &Session{maxTurns: maxTurns, charBudget: charBudget}
}

// Append records a turn at the end of the history.
func (s *Session) Append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// History returns a copy of the full conversation, oldest first.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Window returns the most recent turns that fit both configured bounds.
// This is what goes into the prompt; History keeps everything.
func (s *Session) Window() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if s.maxTurns > 0 && len(s.turns)-start > s.maxTurns {
		start = len(s.turns) - s.maxTurns
	}
	if s.charBudget > 0 {
		chars := 0
		for i := len(s.turns) - 1; i >= start; i-- {
			chars += len(s.turns[i].Content)
			if chars > s.charBudget {
				start = i + 1
				break
			}
		}
	}

	out := make([]Turn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear discards the conversation history. Indexed documents are unaffected.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
