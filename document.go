package gemdocs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Document represents a stored documentation page.
// URL is the storage key; ContentHash is internal to change detection
// and is never rendered to callers.
type Document struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"-"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// HashContent returns the hex-encoded SHA-256 digest of content.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// FindContentHash returns the stored content hash for a URL.
	// Returns ENOTFOUND if no document is stored under url.
	FindContentHash(ctx context.Context, url string) (string, error)

	// UpsertDocument inserts or replaces the document keyed by doc.URL.
	// ContentHash and LastUpdated are recomputed and written together with
	// Content, and the search index reflects the write when it returns.
	UpsertDocument(ctx context.Context, doc *Document) error

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// SearchDocuments runs a full-text query and returns at most limit
	// documents in rank order.
	SearchDocuments(ctx context.Context, query string, limit int) ([]*Document, error)

	// ListTitles returns every stored title in lexicographic order.
	ListTitles(ctx context.Context) ([]string, error)
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByURL         SortOrder = "url"
	SortByTitle       SortOrder = "title"
	SortByLastUpdated SortOrder = "last_updated"
)

// DocumentFilter represents a filter for FindDocuments.
// Exact fields match with equality; the Like fields take SQL LIKE patterns.
type DocumentFilter struct {
	URL       *string `json:"url"`
	Title     *string `json:"title"`
	TitleLike *string `json:"titleLike"`
	URLLike   *string `json:"urlLike"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
