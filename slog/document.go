package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/philschmid/gemdocs"
)

// Ensure LoggingDocumentService implements gemdocs.DocumentService.
var _ gemdocs.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging. Writes log
// at info, reads at debug.
type LoggingDocumentService struct {
	next   gemdocs.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next gemdocs.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) FindContentHash(ctx context.Context, url string) (hash string, err error) {
	defer func(begin time.Time) {
		if gemdocs.ErrorCode(err) == gemdocs.ENOTFOUND {
			return
		}
		s.logger.Debug("find content hash", "url", url, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindContentHash(ctx, url)
}

func (s *LoggingDocumentService) UpsertDocument(ctx context.Context, doc *gemdocs.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert document",
			"url", doc.URL,
			"title", doc.Title,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter gemdocs.DocumentFilter) (docs []*gemdocs.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find documents", "count", len(docs), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindDocuments(ctx, filter)
}

func (s *LoggingDocumentService) SearchDocuments(ctx context.Context, query string, limit int) (docs []*gemdocs.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search documents",
			"query", query,
			"limit", limit,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDocuments(ctx, query, limit)
}

func (s *LoggingDocumentService) ListTitles(ctx context.Context) (titles []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list titles", "count", len(titles), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.ListTitles(ctx)
}
