package chunker

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewSplitter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 500, 100, false},
		{"zero overlap", 500, 0, false},
		{"zero size", 0, 0, true},
		{"negative size", -1, 0, true},
		{"negative overlap", 500, -1, true},
		{"overlap equals size", 500, 500, true},
		{"overlap exceeds size", 500, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.size, tt.overlap)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("NewSplitter(%d, %d) error = %v, want ErrInvalidConfig", tt.size, tt.overlap, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewSplitter(%d, %d) unexpected error: %v", tt.size, tt.overlap, err)
			}
		})
	}
}

func TestSplitter_Split_FixedBoundaries(t *testing.T) {
	// 1200 uniform characters, size 500, overlap 100: no natural boundaries,
	// so hard cuts at [0,500), [400,900), [800,1200).
	splitter, err := NewSplitter(500, 100)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("a", 1200)
	chunks := splitter.Split(text)

	if len(chunks) != 3 {
		t.Fatalf("Split() returned %d chunks, want 3", len(chunks))
	}

	wantBounds := [][2]int{{0, 500}, {400, 900}, {800, 1200}}
	for i, chunk := range chunks {
		start, end := wantBounds[i][0], wantBounds[i][1]
		if chunk.Offset != start {
			t.Errorf("chunk[%d].Offset = %d, want %d", i, chunk.Offset, start)
		}
		if got := utf8.RuneCountInString(chunk.Text); got != end-start {
			t.Errorf("chunk[%d] length = %d, want %d", i, got, end-start)
		}
		if chunk.Index != i {
			t.Errorf("chunk[%d].Index = %d", i, chunk.Index)
		}
	}
}

func TestSplitter_Split_EdgeCases(t *testing.T) {
	splitter, err := NewSplitter(500, 100)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty text yields no chunks", func(t *testing.T) {
		if chunks := splitter.Split(""); len(chunks) != 0 {
			t.Errorf("Split(\"\") = %d chunks, want 0", len(chunks))
		}
	})

	t.Run("short text yields one chunk", func(t *testing.T) {
		chunks := splitter.Split("short text")
		if len(chunks) != 1 {
			t.Fatalf("Split() = %d chunks, want 1", len(chunks))
		}
		if chunks[0].Text != "short text" || chunks[0].Offset != 0 {
			t.Errorf("chunk = %+v", chunks[0])
		}
	})

	t.Run("text exactly chunk size yields one chunk", func(t *testing.T) {
		chunks := splitter.Split(strings.Repeat("x", 500))
		if len(chunks) != 1 {
			t.Errorf("Split() = %d chunks, want 1", len(chunks))
		}
	})
}

func TestSplitter_Split_PrefersNaturalBoundaries(t *testing.T) {
	splitter, err := NewSplitter(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	// Paragraph break at rune 80, inside the lookback window of the
	// target cut at 100.
	text := strings.Repeat("a", 78) + "\n\n" + strings.Repeat("b", 120)
	chunks := splitter.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("Split() = %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0].Text)
	}
	if got := utf8.RuneCountInString(chunks[0].Text); got != 80 {
		t.Errorf("first chunk length = %d, want 80", got)
	}
}

func TestSplitter_Split_SentenceBoundaryFallback(t *testing.T) {
	splitter, err := NewSplitter(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	// No newlines; a sentence end inside the lookback window should win
	// over a hard cut.
	text := strings.Repeat("a", 70) + ". " + strings.Repeat("b", 100)
	chunks := splitter.Split(text)

	if !strings.HasSuffix(chunks[0].Text, ". ") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0].Text)
	}
}

func TestSplitter_Split_Reconstruction(t *testing.T) {
	// Chunks must cover the source with no gaps: dropping each chunk's
	// overlap with its predecessor and concatenating reconstructs the text.
	texts := []string{
		strings.Repeat("lorem ipsum dolor sit amet. ", 100),
		"Paragraph one.\n\nParagraph two is a bit longer than the first one.\n\n" + strings.Repeat("Filler sentence here. ", 50),
		strings.Repeat("あいうえおかきくけこ", 120), // multi-byte runes
	}

	splitter, err := NewSplitter(200, 40)
	if err != nil {
		t.Fatal(err)
	}

	for i, text := range texts {
		chunks := splitter.Split(text)
		if len(chunks) == 0 {
			t.Fatalf("text %d: no chunks", i)
		}

		runes := []rune(text)
		var rebuilt []rune
		prevEnd := 0
		for j, chunk := range chunks {
			chunkRunes := []rune(chunk.Text)

			// Verify the chunk matches its claimed span.
			if string(runes[chunk.Offset:chunk.Offset+len(chunkRunes)]) != chunk.Text {
				t.Fatalf("text %d chunk %d does not match its offset span", i, j)
			}
			if chunk.Offset > prevEnd {
				t.Fatalf("text %d chunk %d leaves a gap: offset %d after end %d", i, j, chunk.Offset, prevEnd)
			}

			skip := prevEnd - chunk.Offset
			rebuilt = append(rebuilt, chunkRunes[skip:]...)
			prevEnd = chunk.Offset + len(chunkRunes)
		}

		if string(rebuilt) != text {
			t.Errorf("text %d: reconstruction mismatch (got %d runes, want %d)", i, len(rebuilt), len(runes))
		}
	}
}

func TestSplitter_Split_ChunkSizeNeverExceeded(t *testing.T) {
	splitter, err := NewSplitter(120, 30)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("word soup with. occasional stops\nand lines. ", 60)
	for i, chunk := range splitter.Split(text) {
		if got := utf8.RuneCountInString(chunk.Text); got > 120 {
			t.Errorf("chunk %d length = %d, exceeds size 120", i, got)
		}
	}
}
