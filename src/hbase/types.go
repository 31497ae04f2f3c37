package hbase

import (
	"context"
	"time"
)

// Snapshot describes a point-in-time snapshot as reported by the cluster.
// Snapshots are created and owned by HBase; this tool only reads and deletes
// them by name.
type Snapshot struct {
	Name      string
	Table     string
	CreatedAt time.Time
}

// Admin is a narrow interface over the HBase administration API. Keep it
// small and focused on what we actually need so it stays mockable.
type Admin interface {
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
	CreateSnapshot(ctx context.Context, name, table string) error
	DeleteSnapshot(ctx context.Context, name string) error

	// Close releases the administrative handle. Callers must close on every
	// exit path regardless of outcome.
	Close() error
}

// InvalidSnapshotError reports that the cluster rejected the requested
// snapshot name / table combination as invalid.
type InvalidSnapshotError struct {
	Snapshot string
	Table    string
	Detail   string
}

func (e *InvalidSnapshotError) Error() string {
	return "invalid snapshot request " + e.Snapshot + ": " + e.Detail
}

// CreationError reports that the cluster refused to create a snapshot for
// operational reasons.
type CreationError struct {
	Snapshot string
	Detail   string
}

func (e *CreationError) Error() string {
	return "snapshot creation failed for " + e.Snapshot + ": " + e.Detail
}

// NotFoundError reports an operation against a snapshot the cluster does not
// know about.
type NotFoundError struct {
	Snapshot string
}

func (e *NotFoundError) Error() string {
	return "snapshot not found: " + e.Snapshot
}
