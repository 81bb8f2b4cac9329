package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philschmid/gemdocs"
)

var _ gemdocs.Ingester = (*Service)(nil)

// Service orchestrates ingestion runs. At most one run is active at a time;
// background runs started with Start are owned by the Service and joined
// by Close.
type Service struct {
	// ManifestURL is passed to Manifest to retrieve the llms.txt index.
	ManifestURL string
	Manifest    gemdocs.Fetcher
	Pool        *Pool
	Writer      *Writer
	Logger      *slog.Logger

	now func() time.Time

	mu     sync.Mutex
	status gemdocs.RunStatus
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a Service in the idle state.
func NewService(manifestURL string, manifest gemdocs.Fetcher, pool *Pool, writer *Writer, logger *slog.Logger) *Service {
	return &Service{
		ManifestURL: manifestURL,
		Manifest:    manifest,
		Pool:        pool,
		Writer:      writer,
		Logger:      loggerOrDiscard(logger),
		now:         time.Now,
		status:      gemdocs.RunStatus{State: gemdocs.RunIdle},
	}
}

// Start launches a run in the background and returns immediately.
// The run outlives ctx's cancellation but keeps its values; use Close to
// stop it.
func (s *Service) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if err := s.begin(cancel); err != nil {
		cancel()
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		_ = s.execute(runCtx)
	}()
	return nil
}

// Run performs a run synchronously under the same mutual exclusion as Start.
func (s *Service) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.begin(cancel); err != nil {
		return err
	}
	return s.execute(runCtx)
}

// Status returns a snapshot of the current or last run.
func (s *Service) Status() gemdocs.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Wait blocks until any background run has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close cancels an in-flight run, waits for it and rejects further runs.
func (s *Service) Close() error {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// begin moves the service into the running state.
func (s *Service) begin(cancel context.CancelFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return gemdocs.Errorf(gemdocs.EINVALID, "ingestion service closed")
	}
	if s.status.State == gemdocs.RunRunning {
		return gemdocs.Errorf(gemdocs.EINPROGRESS, "ingestion already in progress (run %s)", s.status.RunID)
	}

	s.cancel = cancel
	s.status = gemdocs.RunStatus{
		RunID:     uuid.NewString(),
		State:     gemdocs.RunRunning,
		StartedAt: s.now().UTC(),
		LastRun:   s.status.LastRun,
	}
	return nil
}

// execute performs the run and records its terminal state.
func (s *Service) execute(ctx context.Context) (err error) {
	status := s.Status()
	logger := s.Logger.With("run_id", status.RunID)
	logger.Info("ingestion started", "manifest", s.ManifestURL)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ingestion panic: %v", r)
		}
		s.finish(err)

		final := s.Status()
		if err != nil {
			logger.Error("ingestion failed", "err", err)
			return
		}
		logger.Info("ingestion completed",
			"total", final.Total,
			"updated", final.Updated,
			"unchanged", final.Unchanged,
			"failed", final.Failed,
			"duration", final.LastRun.Sub(final.StartedAt),
		)
	}()

	links, err := s.loadManifest(ctx, logger)
	if err != nil {
		return err
	}

	result := s.Pool.Run(ctx, links, func(ctx context.Context, page Page) {
		outcome, err := s.Writer.Write(ctx, page)
		if err != nil {
			logger.Warn("store write failed", "url", page.Link.URL, "err", err)
		} else if outcome == OutcomeSkipped {
			logger.Warn("empty content, keeping stored document", "url", page.Link.URL)
		}
		s.record(outcome, err)
	})

	s.mu.Lock()
	s.status.Total = result.Total
	s.status.Failed += result.Failed
	s.mu.Unlock()

	return ctx.Err()
}

func (s *Service) loadManifest(ctx context.Context, logger *slog.Logger) ([]gemdocs.Link, error) {
	resp, err := s.Manifest.Fetch(ctx, s.ManifestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}

	links, warnings := gemdocs.ParseManifest(string(resp.Body))
	for _, line := range warnings {
		logger.Warn("skipping malformed manifest line", "line", line)
	}
	if len(links) == 0 {
		return nil, gemdocs.Errorf(gemdocs.EINVALID, "manifest %s lists no documents", s.ManifestURL)
	}
	return links, nil
}

func (s *Service) record(outcome Outcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil, outcome == OutcomeSkipped:
		s.status.Failed++
	case outcome == OutcomeUpdated:
		s.status.Updated++
	case outcome == OutcomeUnchanged:
		s.status.Unchanged++
	}
}

func (s *Service) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel = nil
	s.status.LastRun = s.now().UTC()
	if err != nil {
		s.status.State = gemdocs.RunFailed
		s.status.Error = err.Error()
		return
	}
	s.status.State = gemdocs.RunCompleted
}
