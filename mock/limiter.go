package mock

import (
	"context"

	"github.com/philschmid/gemdocs"
)

var _ gemdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of gemdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
