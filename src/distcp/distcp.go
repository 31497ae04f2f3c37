// Package distcp drives the cluster's distributed copy engine, the parallel
// job that moves a snapshot's files between two filesystem addresses. The
// engine owns the transfer entirely; this package only builds and runs the
// invocation.
package distcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
)

// JobSpec describes a single copy job.
type JobSpec struct {
	// Snapshot is the snapshot identifier to copy.
	Snapshot string
	// CopyTo is the destination filesystem URL.
	CopyTo string
	// Mappers is the number of parallel copy workers.
	Mappers int
}

// Engine runs copy jobs. Run returns nil iff the engine reported a zero exit
// status; there is no partial-success notion at this layer.
type Engine interface {
	Run(ctx context.Context, conf *clusterconf.Config, spec JobSpec) error
}

// CopyError reports a failed copy job.
type CopyError struct {
	Snapshot string
	Stderr   string
	Err      error
}

func (e *CopyError) Error() string {
	msg := "copy job for snapshot " + e.Snapshot + " failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CopyError) Unwrap() error { return e.Err }

// jobArgs renders the tool arguments for a spec. Configuration entries are
// passed as -D overrides ahead of the tool flags so a caller-scoped
// configuration reaches exactly this one invocation.
func jobArgs(conf *clusterconf.Config, spec JobSpec) []string {
	args := []string{exportSnapshotClass}
	all := conf.All()
	for _, key := range conf.Keys() {
		args = append(args, "-D", fmt.Sprintf("%s=%s", key, all[key]))
	}
	args = append(args,
		"-snapshot", spec.Snapshot,
		"-copy-to", spec.CopyTo,
		"-mappers", strconv.Itoa(spec.Mappers),
	)
	return args
}
