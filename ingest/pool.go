// Package ingest refreshes the document store from the llms.txt manifest.
// A Pool fetches and extracts pages concurrently, a Writer stores the ones
// whose content changed, and a Service runs the whole pass under mutual
// exclusion.
package ingest

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/philschmid/gemdocs"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of simultaneous fetches.
const DefaultConcurrency = 20

// Page is a fetched and extracted manifest entry.
type Page struct {
	Link gemdocs.Link

	// EffectiveURL is where the fetch ended up after redirects.
	EffectiveURL string

	Content string
}

// PoolResult summarizes one pass over a link list.
type PoolResult struct {
	Total   int
	Fetched int
	Failed  int
}

// HandleFunc consumes one fetched page. Calls are serialized.
type HandleFunc func(ctx context.Context, page Page)

// Pool fetches links with bounded concurrency.
type Pool struct {
	Fetcher     gemdocs.Fetcher
	Extractor   gemdocs.TextExtractor
	RateLimiter gemdocs.DomainLimiter // optional
	Concurrency int
	Logger      *slog.Logger
}

// Run attempts every distinct URL in links exactly once and passes each
// successful page to handle. A failed fetch is logged and counted; it never
// cancels the other fetches.
func (p *Pool) Run(ctx context.Context, links []gemdocs.Link, handle HandleFunc) PoolResult {
	links = UniqueLinks(links)
	logger := loggerOrDiscard(p.Logger)

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu     sync.Mutex
		result = PoolResult{Total: len(links)}
	)

	// Plain errgroup, not WithContext: workers never return errors, and one
	// URL failing must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, link := range links {
		g.Go(func() error {
			page, err := p.fetch(ctx, link, logger)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				logger.Warn("fetch failed", "url", link.URL, "err", err)
				return nil
			}
			result.Fetched++
			handle(ctx, page)
			return nil
		})
	}
	_ = g.Wait()

	return result
}

func (p *Pool) fetch(ctx context.Context, link gemdocs.Link, logger *slog.Logger) (Page, error) {
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, domainOf(link.URL)); err != nil {
			return Page{}, err
		}
	}

	resp, err := p.Fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return Page{}, err
	}

	page := Page{Link: link, EffectiveURL: resp.URL}

	content, err := p.Extractor.ExtractText(resp.Body, resp.ContentType)
	if err != nil {
		// Extraction failures degrade to empty content; the writer skips it.
		logger.Warn("extraction failed", "url", link.URL, "err", err)
		return page, nil
	}
	page.Content = content
	return page, nil
}

// UniqueLinks drops repeated URLs, keeping the first occurrence and order.
func UniqueLinks(links []gemdocs.Link) []gemdocs.Link {
	seen := make(map[string]struct{}, len(links))
	out := make([]gemdocs.Link, 0, len(links))
	for _, link := range links {
		if _, ok := seen[link.URL]; ok {
			continue
		}
		seen[link.URL] = struct{}{}
		out = append(out, link)
	}
	return out
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
