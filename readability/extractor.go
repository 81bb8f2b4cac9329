// Package readability extracts the main content of documentation pages with
// go-readability and renders it as Markdown.
package readability

import (
	"bytes"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/philschmid/gemdocs"
)

var _ gemdocs.TextExtractor = (*Extractor)(nil)

// Extractor is the Mozilla Readability counterpart of trafilatura.Extractor.
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

	article, err := readability.FromReader(bytes.NewReader(body), nil)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		if e.Fallback != nil {
			return e.Fallback.ExtractText(body, contentType)
		}
		if err == nil {
			err = gemdocs.Errorf(gemdocs.EINVALID, "no main content found")
		}
		return "", err
	}

	return e.Converter.Convert(article.Content)
}
