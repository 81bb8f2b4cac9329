package mock

import (
	"context"

	"github.com/philschmid/gemdocs"
)

var _ gemdocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gemdocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*gemdocs.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*gemdocs.Response, error) {
	return f.FetchFn(ctx, url)
}
