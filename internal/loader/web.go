package loader

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	fetchTimeout = 30 * time.Second
	// Some sites reject requests without a browser-looking User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxFetchBytes caps how much of a remote page is read.
	maxFetchBytes = 8 << 20
)

// Pre-compiled regular expressions for HTML stripping.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitleMeta   = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	h1Tag         = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	navTags       = regexp.MustCompile(`(?is)<(nav|header|footer|aside)[^>]*>.*?</(nav|header|footer|aside)>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
)

// WebLoader fetches remote pages and strips them down to plain text.
type WebLoader struct {
	client *http.Client
}

// NewWebLoader creates a web loader with a default fetch timeout.
func NewWebLoader() *WebLoader {
	return &WebLoader{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// LoadURL fetches url and produces a Document with markup stripped to text.
// Non-2xx responses and transport failures are reported as *FetchError.
func (l *WebLoader) LoadURL(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Origin: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{Origin: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Origin: url, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, &FetchError{Origin: url, Err: err}
	}
	htmlContent := string(raw)

	content := normalizeText(stripHTML(htmlContent))
	if len(content) < 50 {
		return nil, fmt.Errorf("could not extract sufficient content from %s", url)
	}

	title := extractHTMLTitle(htmlContent)
	if title == "" {
		title = url
	}

	return &Document{
		ID:     uuid.New().String(),
		Origin: url,
		Format: FormatWeb,
		Title:  title,
		Text:   content,
	}, nil
}

// stripHTML converts an HTML page to plain text. Non-content sections
// (scripts, styles, navigation chrome) are dropped, block element boundaries
// become newlines, remaining tags are removed and entities decoded.
func stripHTML(content string) string {
	content = htmlComments.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = navTags.ReplaceAllString(content, "")

	content = brTags.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, " ")

	return html.UnescapeString(content)
}

// extractHTMLTitle extracts a page title, preferring og:title, then the
// <title> tag, then the first <h1>.
func extractHTMLTitle(content string) string {
	for _, re := range []*regexp.Regexp{ogTitleMeta, titleTag, h1Tag} {
		if matches := re.FindStringSubmatch(content); len(matches) > 1 {
			title := strings.TrimSpace(html.UnescapeString(allTags.ReplaceAllString(matches[1], "")))
			if title != "" {
				return title
			}
		}
	}
	return ""
}
