package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	multiSpaces   = regexp.MustCompile(`[ \t]{2,}`)
)

// normalizeText collapses runs of blank lines and spaces left behind by
// extraction, and trims surrounding whitespace.
func normalizeText(text string) string {
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = multiSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FormatForPath maps a file name to its declared format by extension.
// Unknown extensions are rejected with ErrUnsupportedFormat.
func FormatForPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// LoadFile reads r and produces a Document for the declared format.
// name is the original file name, used as the origin and title fallback.
func LoadFile(r io.Reader, name string, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{Origin: name, Err: err}
	}

	doc := &Document{
		ID:     uuid.New().String(),
		Origin: name,
		Format: format,
		Title:  titleFromFilename(name),
	}

	switch format {
	case FormatPDF:
		text, pageOffsets, err := extractPDF(data)
		if err != nil {
			return nil, fmt.Errorf("failed to extract pdf %s: %w", name, err)
		}
		doc.Text = text
		doc.PageOffsets = pageOffsets
	case FormatMarkdown:
		doc.Text = normalizeText(extractMarkdown(data))
	case FormatText:
		doc.Text = normalizeText(string(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return doc, nil
}

// titleFromFilename derives a display title from a file name by dropping the
// extension and capitalizing words.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}
