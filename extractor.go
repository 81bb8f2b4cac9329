package gemdocs

import "strings"

// TextExtractor converts a fetched payload into normalized plain text.
type TextExtractor interface {
	// ExtractText returns the readable text of body. Markup content types
	// are stripped of boilerplate; other payloads pass through unchanged.
	ExtractText(body []byte, contentType string) (string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}

// markupContentTypes are media types handled as structured markup.
var markupContentTypes = []string{"text/html", "application/xhtml+xml"}

// IsMarkup reports whether a Content-Type header value denotes HTML.
func IsMarkup(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, markup := range markupContentTypes {
		if strings.Contains(ct, markup) {
			return true
		}
	}
	return false
}

// NormalizeText trims every line, breaks lines at runs of two spaces,
// drops blank fragments and rejoins the rest with single newlines.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				fragments = append(fragments, phrase)
			}
		}
	}
	return strings.Join(fragments, "\n")
}
