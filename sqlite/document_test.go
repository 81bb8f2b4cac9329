package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func ptr[T any](v T) *T { return &v }

func upsert(t *testing.T, svc *sqlite.DocumentService, url, title, content string) *gemdocs.Document {
	t.Helper()
	doc := &gemdocs.Document{URL: url, Title: title, Content: content}
	require.NoError(t, svc.UpsertDocument(context.Background(), doc))
	return doc
}

func TestDocumentService_UpsertDocument(t *testing.T) {
	t.Parallel()

	t.Run("inserts document with hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		ctx := context.Background()

		doc := &gemdocs.Document{
			URL:     "https://ai.google.dev/gemini-api/docs/embeddings",
			Title:   "Embeddings",
			Content: "Use the embedding model.",
		}
		require.NoError(t, svc.UpsertDocument(ctx, doc))

		assert.Equal(t, gemdocs.HashContent("Use the embedding model."), doc.ContentHash)
		assert.False(t, doc.LastUpdated.IsZero())

		found, err := svc.FindDocuments(ctx, gemdocs.DocumentFilter{URL: ptr(doc.URL)})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, doc.Title, found[0].Title)
		assert.Equal(t, doc.Content, found[0].Content)
		assert.Equal(t, doc.ContentHash, found[0].ContentHash)
		assert.True(t, doc.LastUpdated.Equal(found[0].LastUpdated))
	})

	t.Run("replaces existing document under the same URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		ctx := context.Background()
		clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.SetNow(func() time.Time { return clock })

		first := upsert(t, svc, "https://example.com/models", "Models", "Gemini original text")

		clock = clock.Add(time.Hour)
		second := upsert(t, svc, "https://example.com/models", "Gemini Models", "Gemini revised text")

		docs, err := svc.FindDocuments(ctx, gemdocs.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Gemini Models", docs[0].Title)
		assert.Equal(t, "Gemini revised text", docs[0].Content)
		assert.NotEqual(t, first.ContentHash, docs[0].ContentHash)
		assert.Equal(t, second.ContentHash, docs[0].ContentHash)
		assert.True(t, docs[0].LastUpdated.Equal(clock))
	})

	t.Run("reflects updates in search immediately", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		ctx := context.Background()

		upsert(t, svc, "https://example.com/page", "Page", "obsolete wording here")
		upsert(t, svc, "https://example.com/page", "Page", "refreshed wording here")

		stale, err := svc.SearchDocuments(ctx, "obsolete", 3)
		require.NoError(t, err)
		assert.Empty(t, stale)

		fresh, err := svc.SearchDocuments(ctx, "refreshed", 3)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
		assert.Equal(t, "https://example.com/page", fresh[0].URL)
	})

	t.Run("returns EINVALID for missing URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		err := svc.UpsertDocument(context.Background(), &gemdocs.Document{Content: "text"})

		require.Error(t, err)
		assert.Equal(t, gemdocs.EINVALID, gemdocs.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		err := svc.UpsertDocument(context.Background(), &gemdocs.Document{URL: "https://example.com", Content: "  \n"})

		require.Error(t, err)
		assert.Equal(t, gemdocs.EINVALID, gemdocs.ErrorCode(err))
	})
}

func TestDocumentService_FindContentHash(t *testing.T) {
	t.Parallel()

	t.Run("returns stored hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		doc := upsert(t, svc, "https://example.com/a", "A", "alpha content")

		hash, err := svc.FindContentHash(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, doc.ContentHash, hash)
	})

	t.Run("returns ENOTFOUND for unknown URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		_, err := svc.FindContentHash(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Equal(t, gemdocs.ENOTFOUND, gemdocs.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("filters by exact title", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/embeddings", "Embeddings", "vectors")
		upsert(t, svc, "https://example.com/embeddings-guide", "Embeddings guide", "more vectors")

		docs, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{Title: ptr("Embeddings")})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://example.com/embeddings", docs[0].URL)
	})

	t.Run("title match is case sensitive", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/embeddings", "Embeddings", "vectors")

		docs, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{Title: ptr("embeddings")})

		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("filters by title and url patterns", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/docs/models", "Gemini models", "model list")
		upsert(t, svc, "https://example.com/docs/pricing", "Pricing", "prices")

		byTitle, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{TitleLike: ptr("%Gemini Models%")})
		require.NoError(t, err)
		require.Len(t, byTitle, 1)
		assert.Equal(t, "Gemini models", byTitle[0].Title)

		byURL, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{URLLike: ptr("%/pricing%")})
		require.NoError(t, err)
		require.Len(t, byURL, 1)
		assert.Equal(t, "Pricing", byURL[0].Title)
	})

	t.Run("returns insertion order by default and honours limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		for i := 0; i < 4; i++ {
			upsert(t, svc, fmt.Sprintf("https://example.com/%d", i), "Same", fmt.Sprintf("content %d", i))
		}

		docs, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{Title: ptr("Same"), Offset: 1, Limit: 2})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "https://example.com/1", docs[0].URL)
		assert.Equal(t, "https://example.com/2", docs[1].URL)
	})

	t.Run("supports offset without limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		for i := 0; i < 3; i++ {
			upsert(t, svc, fmt.Sprintf("https://example.com/%d", i), "T", "body")
		}

		docs, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{Offset: 2})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://example.com/2", docs[0].URL)
	})
}

func TestDocumentService_SearchDocuments(t *testing.T) {
	t.Parallel()

	t.Run("matches title and content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/fc", "Function calling", "Connect models to tools.")
		upsert(t, svc, "https://example.com/emb", "Embeddings", "Function declarations are not here.")
		upsert(t, svc, "https://example.com/other", "Other", "Nothing relevant.")

		docs, err := svc.SearchDocuments(context.Background(), gemdocs.CombineQueries([]string{"function"}), 10)

		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("never returns more than limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		for i := 0; i < 6; i++ {
			upsert(t, svc, fmt.Sprintf("https://example.com/%d", i), fmt.Sprintf("Page %d", i), "gemini everywhere")
		}

		docs, err := svc.SearchDocuments(context.Background(), "gemini", 3)

		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("sanitized version numbers match literal content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/flash", "Flash", "Gemini 2.5 Flash is fast.")
		upsert(t, svc, "https://example.com/pro", "Pro", "Gemini 1.5 Pro is older.")
		ctx := context.Background()

		sanitized, err := svc.SearchDocuments(ctx, gemdocs.CombineQueries([]string{"2.5"}), 10)
		require.NoError(t, err)

		literal, err := svc.SearchDocuments(ctx, `"2.5"`, 10)
		require.NoError(t, err)

		require.Len(t, sanitized, 1)
		assert.Equal(t, "https://example.com/flash", sanitized[0].URL)
		assert.Equal(t, literal, sanitized)
	})

	t.Run("returns EINVALID for query syntax errors", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/flash", "Flash", "Gemini 2.5 Flash")

		_, err := svc.SearchDocuments(context.Background(), "gemini 2.5", 3)

		require.Error(t, err)
		assert.Equal(t, gemdocs.EINVALID, gemdocs.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty query", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		_, err := svc.SearchDocuments(context.Background(), "", 3)

		require.Error(t, err)
		assert.Equal(t, gemdocs.EINVALID, gemdocs.ErrorCode(err))
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/a", "A", "alpha")

		docs, err := svc.SearchDocuments(context.Background(), "zebra", 3)

		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentService_ListTitles(t *testing.T) {
	t.Parallel()

	t.Run("returns titles sorted with duplicates preserved", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		upsert(t, svc, "https://example.com/3", "Models", "c")
		upsert(t, svc, "https://example.com/1", "Embeddings", "a")
		upsert(t, svc, "https://example.com/2", "Models", "b")

		titles, err := svc.ListTitles(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"Embeddings", "Models", "Models"}, titles)
	})

	t.Run("returns empty list for empty store", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		titles, err := svc.ListTitles(context.Background())

		require.NoError(t, err)
		assert.Empty(t, titles)
	})
}

func TestDocumentService_ConcurrentReadWrite(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(filepath.Join(t.TempDir(), "database.db"))
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	svc := sqlite.NewDocumentService(db)

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < 4; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 25; i++ {
				doc := &gemdocs.Document{
					URL:     fmt.Sprintf("https://example.com/%d", i%10),
					Title:   fmt.Sprintf("Page %d", i%10),
					Content: fmt.Sprintf("shared keyword writer %d iteration %d", w, i),
				}
				if err := svc.UpsertDocument(ctx, doc); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			for i := 0; i < 25; i++ {
				if _, err := svc.SearchDocuments(ctx, "keyword", 3); err != nil {
					return err
				}
				if _, err := svc.ListTitles(ctx); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	docs, err := svc.FindDocuments(context.Background(), gemdocs.DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 10)

	hits, err := svc.SearchDocuments(context.Background(), "keyword", 100)
	require.NoError(t, err)
	assert.Len(t, hits, 10)
}
