package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidConfig is returned for chunking parameters that cannot produce a
// valid covering (non-positive size, negative overlap, overlap >= size).
var ErrInvalidConfig = errors.New("invalid chunker configuration")

// boundaryLookback caps how far back from the target cut a natural boundary
// is searched for. Cuts never move more than this many runes.
const boundaryLookback = 100

// Chunk is a contiguous span of a document's text. Offset is the rune
// position of the span within the source text, kept for citation display.
type Chunk struct {
	Index  int
	Text   string
	Offset int
}

// Splitter splits text into overlapping fixed-size chunks.
// Sizes and offsets are measured in runes.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a splitter with the given chunk size and overlap.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, size)", ErrInvalidConfig, overlap)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split produces ordered chunks covering text with no gaps: chunk i+1 begins
// at end(chunk i) minus the overlap. Text shorter than the chunk size yields
// exactly one chunk; empty text yields no chunks.
//
// Cut points prefer natural boundaries (paragraph, then line, then sentence)
// within a bounded lookback window of the target offset, falling back to a
// hard cut. This is a best-effort heuristic, not a guarantee.
func (s *Splitter) Split(text string) []Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0

	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			chunks = append(chunks, Chunk{
				Index:  len(chunks),
				Text:   string(runes[start:]),
				Offset: start,
			})
			break
		}

		cut := s.findCut(runes, start, end)
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   string(runes[start:cut]),
			Offset: start,
		})

		next := cut - s.overlap
		if next <= start {
			// Degenerate boundary placement; give up the overlap rather
			// than loop forever.
			next = cut
		}
		start = next
	}

	return chunks
}

// findCut returns the rune index to cut at, preferring a paragraph break,
// then a newline, then a sentence end inside the lookback window ending at
// the target offset. Returns the target offset when no boundary is found.
func (s *Splitter) findCut(runes []rune, start, target int) int {
	windowStart := target - boundaryLookback
	// Never cut in the first half of the chunk; a boundary that early mostly
	// reflects the overlap with the previous chunk.
	if floor := start + (target-start)/2; windowStart < floor {
		windowStart = floor
	}
	window := string(runes[windowStart:target])

	for _, boundary := range []string{"\n\n", "\n", ". "} {
		if p := strings.LastIndex(window, boundary); p != -1 {
			// Cut after the boundary so the separator stays with the
			// preceding chunk.
			return windowStart + utf8.RuneCountInString(window[:p+len(boundary)])
		}
	}

	return target
}
