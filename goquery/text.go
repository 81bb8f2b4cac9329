// Package goquery implements HTML text extraction using goquery.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/philschmid/gemdocs"
	"golang.org/x/net/html"
)

// boilerplateSelector matches elements that never carry page content.
const boilerplateSelector = "script, style, noscript, template, nav, header, footer"

// Ensure TextExtractor implements gemdocs.TextExtractor at compile time.
var _ gemdocs.TextExtractor = (*TextExtractor)(nil)

// TextExtractor converts HTML into line-oriented plain text.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText strips boilerplate elements from HTML payloads and returns the
// remaining text, one text node per line, normalized by gemdocs.NormalizeText.
// Non-markup payloads are returned unchanged.
func (e *TextExtractor) ExtractText(body []byte, contentType string) (string, error) {
	if !gemdocs.IsMarkup(contentType) {
		return string(body), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", gemdocs.Errorf(gemdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	var texts []string
	for _, n := range doc.Nodes {
		collectText(n, &texts)
	}

	return gemdocs.NormalizeText(strings.Join(texts, "\n")), nil
}

// collectText appends the data of every text node under n in document order.
func collectText(n *html.Node, texts *[]string) {
	if n.Type == html.TextNode {
		*texts = append(*texts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, texts)
	}
}
