package rag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"docqa/internal/llm"
)

// noContextMessage is returned when nothing relevant was retrieved.
const noContextMessage = "I couldn't find anything relevant in the indexed documents. " +
	"Try uploading a document first, or rephrase the question."

// emptyAnswerMessage replaces a blank model completion.
const emptyAnswerMessage = "I wasn't able to produce an answer for that question. Please try rephrasing it."

const systemPromptHeader = `You are an assistant that answers questions using only the context passages below.
Each passage is numbered. When your answer uses a passage, cite it inline with its number in square brackets, e.g. [2].
If the context does not contain the answer, say so instead of guessing.`

// snippetLength caps citation snippets.
const snippetLength = 160

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// buildMessages assembles the chat prompt: a system message carrying the
// numbered context passages, the recent conversation window, and the new
// question.
func buildMessages(history []Turn, retrieved []Retrieved, question string) []llm.Message {
	var b strings.Builder
	b.WriteString(systemPromptHeader)
	b.WriteString("\n\nContext passages:\n")
	for i, r := range retrieved {
		fmt.Fprintf(&b, "\n[%d] (%s)\n%s\n", i+1, r.Provenance(), r.Text)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: b.String()})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}

// parseAnswer extracts [n] citation markers from the completion and resolves
// them against the retrieved passages. Markers that point outside the
// retrieved set are dropped; duplicates collapse to one citation. A blank
// completion degrades to a fixed message.
func parseAnswer(raw string, retrieved []Retrieved) (string, []Citation) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return emptyAnswerMessage, nil
	}

	seen := make(map[int]bool)
	var citations []Citation
	for _, match := range citationMarker.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n < 1 || n > len(retrieved) {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		r := retrieved[n-1]
		citations = append(citations, Citation{
			ChunkID: r.ChunkID,
			Origin:  r.Origin,
			Offset:  r.Offset,
			Page:    r.Page,
			Snippet: snippet(r.Text),
		})
	}
	return text, citations
}

func snippet(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= snippetLength {
		return string(runes)
	}
	return string(runes[:snippetLength]) + "…"
}
