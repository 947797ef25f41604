package loader

import (
	"errors"
	"fmt"
)

// Format identifies a supported document format. It is a closed set; anything
// else is rejected with ErrUnsupportedFormat rather than guessed at.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatWeb      Format = "web"
)

// Document is a normalized source unit produced by the loader. It is
// immutable after creation and discarded once chunked; only chunks persist
// downstream.
type Document struct {
	ID     string // UUID
	Origin string // File path or URL
	Format Format
	Title  string
	Text   string

	// PageOffsets holds the rune offset at which each PDF page starts within
	// Text, so citations can be mapped back to a page number. Empty for
	// non-PDF formats.
	PageOffsets []int
}

// PageForOffset returns the 1-based page number containing the given rune
// offset, or 0 if the document has no page information.
func (d *Document) PageForOffset(offset int) int {
	if len(d.PageOffsets) == 0 {
		return 0
	}
	page := 1
	for i, start := range d.PageOffsets {
		if offset < start {
			break
		}
		page = i + 1
	}
	return page
}

// ErrUnsupportedFormat is returned for unknown file extensions or content types.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FetchError reports a network or file I/O failure while loading a source,
// including timeouts and non-2xx responses on remote fetches.
type FetchError struct {
	Origin     string
	StatusCode int // 0 when the failure happened before a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.Origin, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Origin, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
