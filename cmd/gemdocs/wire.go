package main

import (
	"log/slog"

	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/config"
	"github.com/philschmid/gemdocs/fs"
	"github.com/philschmid/gemdocs/goquery"
	"github.com/philschmid/gemdocs/htmltomarkdown"
	gemhttp "github.com/philschmid/gemdocs/http"
	"github.com/philschmid/gemdocs/ingest"
	"github.com/philschmid/gemdocs/readability"
	gemslog "github.com/philschmid/gemdocs/slog"
	"github.com/philschmid/gemdocs/trafilatura"
)

// newIngester wires the ingestion pipeline described by cfg.
func newIngester(cfg config.Config, documents gemdocs.DocumentService, logger *slog.Logger) *ingest.Service {
	pageFetcher := gemslog.NewLoggingFetcher(gemhttp.NewFetcher(gemhttp.WithTimeout(cfg.FetchTimeout)), logger)

	var manifestFetcher gemdocs.Fetcher = pageFetcher
	if fs.IsLocal(cfg.ManifestURL) {
		manifestFetcher = gemslog.NewLoggingFetcher(fs.NewFetcher(), logger)
	}

	pool := &ingest.Pool{
		Fetcher:     pageFetcher,
		Extractor:   newExtractor(cfg),
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	if cfg.RateLimit > 0 {
		pool.RateLimiter = ingest.NewDomainLimiter(cfg.RateLimit)
	}

	return ingest.NewService(cfg.ManifestURL, manifestFetcher, pool, &ingest.Writer{Documents: documents}, logger)
}

// newExtractor returns the plain-text extractor, or a main-content
// Markdown extractor that falls back to plain text.
func newExtractor(cfg config.Config) gemdocs.TextExtractor {
	text := goquery.NewTextExtractor()
	if cfg.ExtractMode != config.ExtractMarkdown {
		return text
	}

	converter := htmltomarkdown.NewConverter()
	if cfg.MarkdownEngine == config.EngineReadability {
		return readability.NewExtractor(converter, text)
	}
	return trafilatura.NewExtractor(converter, text)
}
