package mock

import (
	"context"

	"github.com/philschmid/gemdocs"
)

var _ gemdocs.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of gemdocs.DocumentService.
type DocumentService struct {
	FindContentHashFn func(ctx context.Context, url string) (string, error)
	UpsertDocumentFn  func(ctx context.Context, doc *gemdocs.Document) error
	FindDocumentsFn   func(ctx context.Context, filter gemdocs.DocumentFilter) ([]*gemdocs.Document, error)
	SearchDocumentsFn func(ctx context.Context, query string, limit int) ([]*gemdocs.Document, error)
	ListTitlesFn      func(ctx context.Context) ([]string, error)
}

func (s *DocumentService) FindContentHash(ctx context.Context, url string) (string, error) {
	return s.FindContentHashFn(ctx, url)
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *gemdocs.Document) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter gemdocs.DocumentFilter) ([]*gemdocs.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) SearchDocuments(ctx context.Context, query string, limit int) ([]*gemdocs.Document, error) {
	return s.SearchDocumentsFn(ctx, query, limit)
}

func (s *DocumentService) ListTitles(ctx context.Context) ([]string, error) {
	return s.ListTitlesFn(ctx)
}
