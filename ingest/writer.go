package ingest

import (
	"context"
	"strings"

	"github.com/philschmid/gemdocs"
)

// Outcome reports what Writer.Write did with a page.
type Outcome int

const (
	// OutcomeUpdated means the document was inserted or replaced.
	OutcomeUpdated Outcome = iota
	// OutcomeUnchanged means the stored hash already matched.
	OutcomeUnchanged
	// OutcomeSkipped means the page had no content and nothing was written.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	}
	return "unknown"
}

// Writer stores pages whose content hash differs from the stored one.
type Writer struct {
	Documents gemdocs.DocumentService
}

// Write stores page under the normalized form of the requested URL.
// Pages with blank content are skipped so a bad fetch never replaces a
// good document.
func (w *Writer) Write(ctx context.Context, page Page) (Outcome, error) {
	if strings.TrimSpace(page.Content) == "" {
		return OutcomeSkipped, nil
	}

	key := gemdocs.NormalizeURL(page.Link.URL)

	stored, err := w.Documents.FindContentHash(ctx, key)
	if err != nil && gemdocs.ErrorCode(err) != gemdocs.ENOTFOUND {
		return OutcomeSkipped, err
	}

	if stored == gemdocs.HashContent(page.Content) {
		return OutcomeUnchanged, nil
	}

	doc := &gemdocs.Document{
		URL:     key,
		Title:   page.Link.Title,
		Content: page.Content,
	}
	if err := w.Documents.UpsertDocument(ctx, doc); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeUpdated, nil
}
