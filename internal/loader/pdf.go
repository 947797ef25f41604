package loader

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text from a PDF, page by page, and records the rune
// offset at which each page starts so chunk offsets can be mapped back to a
// page number for citations.
func extractPDF(data []byte) (text string, pageOffsets []int, err error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var builder strings.Builder
	offset := 0

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		pageText = normalizeText(pageText)
		if pageText == "" {
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n\n")
			offset += 2
		}
		pageOffsets = append(pageOffsets, offset)
		builder.WriteString(pageText)
		offset += utf8.RuneCountInString(pageText)
	}

	if builder.Len() == 0 {
		return "", nil, fmt.Errorf("no text extracted from pdf")
	}

	return builder.String(), pageOffsets, nil
}
