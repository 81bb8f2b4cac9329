package mock

import (
	"context"

	"github.com/philschmid/gemdocs"
)

var _ gemdocs.DocsService = (*DocsService)(nil)

// DocsService is a mock implementation of gemdocs.DocsService.
type DocsService struct {
	SearchDocumentationFn  func(ctx context.Context, queries []string) string
	GetCapabilityPageFn    func(ctx context.Context, capability string) string
	GetCurrentModelFn      func(ctx context.Context) string
	RefreshDocumentationFn func(ctx context.Context) string
	IngestionStatusFn      func(ctx context.Context) string
}

func (s *DocsService) SearchDocumentation(ctx context.Context, queries []string) string {
	return s.SearchDocumentationFn(ctx, queries)
}

func (s *DocsService) GetCapabilityPage(ctx context.Context, capability string) string {
	return s.GetCapabilityPageFn(ctx, capability)
}

func (s *DocsService) GetCurrentModel(ctx context.Context) string {
	return s.GetCurrentModelFn(ctx)
}

func (s *DocsService) RefreshDocumentation(ctx context.Context) string {
	return s.RefreshDocumentationFn(ctx)
}

func (s *DocsService) IngestionStatus(ctx context.Context) string {
	return s.IngestionStatusFn(ctx)
}
