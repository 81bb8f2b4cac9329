package mock

import (
	"context"

	"github.com/philschmid/gemdocs"
)

var _ gemdocs.Ingester = (*Ingester)(nil)

// Ingester is a mock implementation of gemdocs.Ingester.
type Ingester struct {
	StartFn  func(ctx context.Context) error
	StatusFn func() gemdocs.RunStatus
}

func (i *Ingester) Start(ctx context.Context) error {
	return i.StartFn(ctx)
}

func (i *Ingester) Status() gemdocs.RunStatus {
	return i.StatusFn()
}
