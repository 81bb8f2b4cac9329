// Package trafilatura extracts the main content of documentation pages with
// go-trafilatura and renders it as Markdown.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/philschmid/gemdocs"
	"golang.org/x/net/html"
)

// Ensure Extractor implements gemdocs.TextExtractor at compile time.
var _ gemdocs.TextExtractor = (*Extractor)(nil)

// Extractor keeps only the main content of HTML pages and converts it with
// Converter. Pages where trafilatura finds no main content are handed to
// Fallback, when set. Non-markup payloads pass through unchanged.
type Extractor struct {
	Converter gemdocs.Converter
	Fallback  gemdocs.TextExtractor
}

// NewExtractor creates a new Extractor.
func NewExtractor(converter gemdocs.Converter, fallback gemdocs.TextExtractor) *Extractor {
	return &Extractor{Converter: converter, Fallback: fallback}
}

// ExtractText returns the page's main content as Markdown.
func (e *Extractor) ExtractText(body []byte, contentType string) (string, error) {
	if !gemdocs.IsMarkup(contentType) {
		return string(body), nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", gemdocs.Errorf(gemdocs.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil || result == nil || result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		return e.fallback(body, contentType, err)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", err
	}
	return e.Converter.Convert(buf.String())
}

func (e *Extractor) fallback(body []byte, contentType string, cause error) (string, error) {
	if e.Fallback == nil {
		if cause == nil {
			cause = gemdocs.Errorf(gemdocs.EINVALID, "no main content found")
		}
		return "", cause
	}
	return e.Fallback.ExtractText(body, contentType)
}
