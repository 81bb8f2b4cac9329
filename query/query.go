// Package query answers documentation questions from the document store.
// Every entry point returns text: store failures are reported in the
// result rather than as errors, so a protocol layer can hand the string
// straight back to the caller.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/philschmid/gemdocs"
)

const (
	// MaxQueries is the number of search queries honoured per call.
	MaxQueries = 3

	// DefaultTopK is the number of ranked documents returned by a search.
	DefaultTopK = 3
)

// Result texts.
const (
	NoMatches        = "No matching documentation found."
	NoQueries        = "No search queries provided."
	ModelsNotFound   = "Gemini Models documentation page not found."
	TitlesHeading    = "Available Capabilities:"
	RefreshStarted   = "Documentation refresh started."
	RefreshRunning   = "Documentation refresh already in progress."
	RefreshDisabled  = "Documentation refresh is not available."
	modelsTitleLike  = "%Gemini Models%"
	modelsURLLike    = "%/models%"
	statusTimeLayout = time.RFC3339
)

var _ gemdocs.DocsService = (*Service)(nil)

// Service implements the query entry points on top of a DocumentService.
type Service struct {
	Documents gemdocs.DocumentService
	Ingester  gemdocs.Ingester // optional, enables refresh and status
	TopK      int
	Logger    *slog.Logger
}

// NewService creates a Service with the default top-K.
func NewService(documents gemdocs.DocumentService, ingester gemdocs.Ingester, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		Documents: documents,
		Ingester:  ingester,
		TopK:      DefaultTopK,
		Logger:    logger,
	}
}

// SearchDocumentation runs a keyword search for up to MaxQueries queries
// and formats the best matches.
func (s *Service) SearchDocumentation(ctx context.Context, queries []string) string {
	if len(queries) > MaxQueries {
		s.logger().Warn("dropping extra search queries", "received", len(queries), "max", MaxQueries)
		queries = queries[:MaxQueries]
	}

	match := gemdocs.CombineQueries(queries)
	if match == "" {
		return NoQueries
	}
	s.logger().Debug("search", "match", match)

	docs, err := s.Documents.SearchDocuments(ctx, match, s.topK())
	if err != nil {
		return "Error searching documentation: " + gemdocs.ErrorMessage(err)
	}
	if len(docs) == 0 {
		return NoMatches
	}
	return gemdocs.FormatDocuments(docs)
}

// GetCapabilityPage returns the content of the page titled capability.
// An empty capability lists every stored title instead.
func (s *Service) GetCapabilityPage(ctx context.Context, capability string) string {
	if capability == "" {
		titles, err := s.Documents.ListTitles(ctx)
		if err != nil {
			return "Error retrieving capability: " + gemdocs.ErrorMessage(err)
		}
		return gemdocs.FormatTitles(TitlesHeading, titles)
	}

	docs, err := s.Documents.FindDocuments(ctx, gemdocs.DocumentFilter{Title: &capability, Limit: 1})
	if err != nil {
		return "Error retrieving capability: " + gemdocs.ErrorMessage(err)
	}
	if len(docs) == 0 {
		return fmt.Sprintf("Capability '%s' not found.", capability)
	}
	return docs[0].Content
}

// GetCurrentModel returns the canonical Gemini models page, matched by
// title first and by URL second.
func (s *Service) GetCurrentModel(ctx context.Context) string {
	filters := []gemdocs.DocumentFilter{
		{TitleLike: ptr(modelsTitleLike), Limit: 1},
		{URLLike: ptr(modelsURLLike), Limit: 1},
	}
	for _, filter := range filters {
		docs, err := s.Documents.FindDocuments(ctx, filter)
		if err != nil {
			return "Error retrieving models documentation: " + gemdocs.ErrorMessage(err)
		}
		if len(docs) > 0 {
			return docs[0].Content
		}
	}
	return ModelsNotFound
}

// RefreshDocumentation starts a background ingestion run.
func (s *Service) RefreshDocumentation(ctx context.Context) string {
	if s.Ingester == nil {
		return RefreshDisabled
	}

	err := s.Ingester.Start(ctx)
	switch gemdocs.ErrorCode(err) {
	case "":
		return RefreshStarted
	case gemdocs.EINPROGRESS:
		return RefreshRunning
	default:
		return "Error starting documentation refresh: " + gemdocs.ErrorMessage(err)
	}
}

// IngestionStatus describes the current or last ingestion run.
func (s *Service) IngestionStatus(ctx context.Context) string {
	if s.Ingester == nil {
		return RefreshDisabled
	}
	return FormatStatus(s.Ingester.Status())
}

// FormatStatus renders a run status as "key: value" lines.
func FormatStatus(status gemdocs.RunStatus) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %s", status.State)
	if status.RunID != "" {
		fmt.Fprintf(&sb, "\nRun ID: %s", status.RunID)
	}
	if !status.StartedAt.IsZero() {
		fmt.Fprintf(&sb, "\nStarted: %s", status.StartedAt.Format(statusTimeLayout))
	}
	if !status.LastRun.IsZero() {
		fmt.Fprintf(&sb, "\nLast run: %s", status.LastRun.Format(statusTimeLayout))
	}
	if status.State != gemdocs.RunIdle {
		fmt.Fprintf(&sb, "\nDocuments: %d total, %d updated, %d unchanged, %d failed",
			status.Total, status.Updated, status.Unchanged, status.Failed)
	}
	if status.Error != "" {
		fmt.Fprintf(&sb, "\nError: %s", status.Error)
	}
	return sb.String()
}

func (s *Service) topK() int {
	if s.TopK <= 0 {
		return DefaultTopK
	}
	return s.TopK
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func ptr[T any](v T) *T { return &v }
