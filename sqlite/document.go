package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/philschmid/gemdocs"
)

// Compile-time interface verification.
var _ gemdocs.DocumentService = (*DocumentService)(nil)

// documentColumns lists the columns scanned by scanDocument, in order.
var documentColumns = []string{"d.url", "d.title", "d.content", "d.content_hash", "d.last_updated"}

// DocumentService implements gemdocs.DocumentService using SQLite.
type DocumentService struct {
	db  *DB
	now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, now: time.Now}
}

// FindContentHash returns the stored content hash for url.
func (s *DocumentService) FindContentHash(ctx context.Context, url string) (string, error) {
	query, args, err := sq.Select("content_hash").From("docs").Where(sq.Eq{"url": url}).ToSql()
	if err != nil {
		return "", err
	}

	var hash string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", gemdocs.Errorf(gemdocs.ENOTFOUND, "document not found")
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// UpsertDocument inserts doc or replaces the row stored under doc.URL.
// The hash, timestamp and content land in one statement; the FTS triggers
// run inside it.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *gemdocs.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ContentHash = gemdocs.HashContent(doc.Content)
	doc.LastUpdated = s.now().UTC()

	query, args, err := sq.Insert("docs").
		Columns("url", "title", "content", "content_hash", "last_updated").
		Values(doc.URL, doc.Title, doc.Content, doc.ContentHash, formatTime(doc.LastUpdated)).
		Suffix(`ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			last_updated = excluded.last_updated`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter gemdocs.DocumentFilter) ([]*gemdocs.Document, error) {
	b := sq.Select(documentColumns...).From("docs d")

	if filter.URL != nil {
		b = b.Where(sq.Eq{"d.url": *filter.URL})
	}
	if filter.Title != nil {
		b = b.Where(sq.Eq{"d.title": *filter.Title})
	}
	if filter.TitleLike != nil {
		b = b.Where(sq.Like{"d.title": *filter.TitleLike})
	}
	if filter.URLLike != nil {
		b = b.Where(sq.Like{"d.url": *filter.URLLike})
	}

	switch filter.SortBy {
	case gemdocs.SortByURL:
		b = b.OrderBy("d.url ASC")
	case gemdocs.SortByTitle:
		b = b.OrderBy("d.title ASC", "d.id ASC")
	case gemdocs.SortByLastUpdated:
		b = b.OrderBy("d.last_updated DESC")
	default:
		b = b.OrderBy("d.id ASC")
	}

	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			b = b.Limit(uint64(1<<63 - 1))
		}
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return s.queryDocuments(ctx, query, args...)
}

// SearchDocuments runs an FTS5 MATCH query ranked by bm25.
func (s *DocumentService) SearchDocuments(ctx context.Context, match string, limit int) ([]*gemdocs.Document, error) {
	if match == "" {
		return nil, gemdocs.Errorf(gemdocs.EINVALID, "search query required")
	}

	b := sq.Select(documentColumns...).
		From("docs_fts").
		Join("docs d ON d.id = docs_fts.rowid").
		Where("docs_fts MATCH ?", match).
		OrderBy("docs_fts.rank")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	docs, err := s.queryDocuments(ctx, query, args...)
	return docs, translateMatchError(err, match)
}

// ListTitles returns every stored title ordered lexicographically.
func (s *DocumentService) ListTitles(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("title").From("docs").OrderBy("title ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (s *DocumentService) queryDocuments(ctx context.Context, query string, args ...any) ([]*gemdocs.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*gemdocs.Document
	for rows.Next() {
		var doc gemdocs.Document
		var lastUpdated string

		if err := rows.Scan(&doc.URL, &doc.Title, &doc.Content, &doc.ContentHash, &lastUpdated); err != nil {
			return nil, err
		}

		if doc.LastUpdated, err = parseTime(lastUpdated, "last_updated"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
