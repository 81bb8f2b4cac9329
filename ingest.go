package gemdocs

import (
	"context"
	"time"
)

// RunState is the lifecycle state of the ingestion process.
type RunState string

// RunState values.
const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// RunStatus is a snapshot of the most recent ingestion run.
type RunStatus struct {
	RunID     string    `json:"runId,omitempty"`
	State     RunState  `json:"state"`
	StartedAt time.Time `json:"startedAt"`
	LastRun   time.Time `json:"lastRun"`
	Error     string    `json:"error,omitempty"`

	Total     int `json:"total"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// Ingester refreshes the document store from the manifest.
type Ingester interface {
	// Start launches an ingestion run in the background.
	// Returns EINPROGRESS if a run is already in progress.
	Start(ctx context.Context) error

	// Status returns a snapshot of the current or last run.
	Status() RunStatus
}
