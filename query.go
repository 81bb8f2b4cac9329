package gemdocs

import (
	"context"
	"strings"
)

// ftsKeywords are operator words in the full-text query language.
var ftsKeywords = map[string]bool{
	"AND":  true,
	"OR":   true,
	"NOT":  true,
	"NEAR": true,
}

// SanitizeQuery rewrites free text into a full-text query that matches the
// literal terms. Terms made only of bareword characters pass through; any
// other term (e.g. "2.5", "gemini-pro", "AND") is quoted as a phrase with
// embedded quotes doubled, so it cannot be parsed as query syntax.
// Returns an empty string when text has no terms.
func SanitizeQuery(text string) string {
	terms := strings.Fields(text)
	for i, term := range terms {
		if !isBareword(term) || ftsKeywords[term] {
			terms[i] = quotePhrase(term)
		}
	}
	return strings.Join(terms, " ")
}

// CombineQueries sanitizes each query and ORs them together, each in its own
// group. Blank queries are dropped; an empty string means nothing to search.
func CombineQueries(queries []string) string {
	groups := make([]string, 0, len(queries))
	for _, q := range queries {
		if sanitized := SanitizeQuery(q); sanitized != "" {
			groups = append(groups, "("+sanitized+")")
		}
	}
	return strings.Join(groups, " OR ")
}

func quotePhrase(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}

// isBareword reports whether s consists of ASCII letters, digits, '_',
// the substitute character or non-ASCII runes.
func isBareword(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == 0x1a, r >= 0x80:
		default:
			return false
		}
	}
	return s != ""
}

// DocsService answers documentation requests with text. Failures are
// reported inside the returned text, never as errors.
type DocsService interface {
	SearchDocumentation(ctx context.Context, queries []string) string
	GetCapabilityPage(ctx context.Context, capability string) string
	GetCurrentModel(ctx context.Context) string
	RefreshDocumentation(ctx context.Context) string
	IngestionStatus(ctx context.Context) string
}
