package gemdocs

import "context"

// Response is the outcome of a successful fetch.
type Response struct {
	// URL is the effective address after redirects.
	URL string

	// ContentType is the raw Content-Type header value.
	ContentType string

	Body []byte
}

// Fetcher retrieves documents over the network.
type Fetcher interface {
	// Fetch retrieves url, following redirects. Network failures, timeouts
	// and non-2xx statuses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
