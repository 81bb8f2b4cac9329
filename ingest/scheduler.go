package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/philschmid/gemdocs"
)

// Scheduler starts an ingestion run on a fixed interval.
type Scheduler struct {
	Ingester gemdocs.Ingester
	Interval time.Duration
	Logger   *slog.Logger
}

// Run ticks until ctx is done. A tick that lands on an in-flight run is
// dropped. A non-positive Interval disables the scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Interval <= 0 {
		return nil
	}
	logger := loggerOrDiscard(s.Logger)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := s.Ingester.Start(ctx)
			switch gemdocs.ErrorCode(err) {
			case "":
				logger.Info("scheduled refresh started")
			case gemdocs.EINPROGRESS:
				logger.Debug("scheduled refresh skipped", "reason", gemdocs.ErrorMessage(err))
			default:
				logger.Error("scheduled refresh", "err", err)
			}
		}
	}
}
