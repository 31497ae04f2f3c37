package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
	"github.com/lospro7/snapshot-s3-util/src/distcp"
	"github.com/lospro7/snapshot-s3-util/src/hbase"
)

// Runner executes one backup request against the cluster. It is fully
// synchronous: every step blocks until its external call returns.
type Runner struct {
	// Conf is the process-wide cluster configuration. It is read-only here;
	// the importer works on a clone.
	Conf *clusterconf.Config

	// NewAdmin opens an administrative handle; every opened handle is closed
	// before the step that opened it returns.
	NewAdmin func(*clusterconf.Config) (hbase.Admin, error)

	Engine distcp.Engine
	Log    zerolog.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run validates the request, resolves the effective snapshot name, sweeps
// expired snapshots when a TTL is configured, then performs the requested
// operations in order with fail-fast semantics. A sweep failure never gates
// the rest of the pipeline; a create failure prevents the export half of a
// composite request.
func (r *Runner) Run(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	name, err := EffectiveSnapshotName(req, r.now())
	if err != nil {
		return err
	}

	r.logBanner(req, name)

	if req.SnapshotTTL > 0 {
		if res, err := r.sweep(ctx, req.SnapshotTTL); err != nil {
			r.Log.Error().Err(err).Msg("snapshot sweep failed")
		} else {
			r.Log.Info().
				Int("examined", res.Examined).
				Int("deleted", res.Deleted).
				Int("failed", res.Failed).
				Msg("snapshot sweep complete")
		}
	}

	if req.createRequested() {
		r.Log.Info().Str("snapshot", name).Str("table", req.Table).Msg("creating snapshot")
		if err := r.create(ctx, name, req.Table); err != nil {
			return err
		}
		r.Log.Info().Str("snapshot", name).Msg("successfully created snapshot")
	}

	switch {
	case req.exportRequested():
		r.Log.Info().Str("snapshot", name).Msg("exporting snapshot to S3")
		if err := r.export(ctx, req, name); err != nil {
			return err
		}
		r.Log.Info().Str("snapshot", name).Msg("successfully exported snapshot to S3")
	case req.Action == ActionImport:
		r.Log.Info().Str("snapshot", name).Msg("importing snapshot from S3")
		if err := r.importSnapshot(ctx, req, name); err != nil {
			return err
		}
		r.Log.Info().Str("snapshot", name).Msg("successfully imported snapshot from S3")
	}

	r.Log.Info().Msg("complete")
	return nil
}

// create asks the cluster to snapshot the table. The three failure classes
// are logged with distinct context; all of them fail the pipeline.
func (r *Runner) create(ctx context.Context, name, table string) error {
	admin, err := r.NewAdmin(r.Conf)
	if err != nil {
		r.Log.Error().Err(err).Msg("could not open administrative handle")
		return fmt.Errorf("create snapshot %s: %w", name, err)
	}
	defer admin.Close()

	if err := admin.CreateSnapshot(ctx, name, table); err != nil {
		var invalid *hbase.InvalidSnapshotError
		var refused *hbase.CreationError
		switch {
		case errors.As(err, &invalid):
			r.Log.Error().Err(err).Str("snapshot", name).Str("table", table).
				Msg("snapshot request is invalid")
		case errors.As(err, &refused):
			r.Log.Error().Err(err).Str("snapshot", name).
				Msg("cluster refused to create snapshot")
		default:
			r.Log.Error().Err(err).Str("snapshot", name).
				Msg("unexpected error while creating snapshot")
		}
		return fmt.Errorf("create snapshot %s of table %s: %w", name, table, err)
	}
	return nil
}

// logBanner records the effective request, mirroring every option so a failed
// run can be diagnosed from the log alone.
func (r *Runner) logBanner(req Request, name string) {
	r.Log.Info().
		Str("action", req.Action.String()).
		Str("table", req.Table).
		Str("snapshot", name).
		Str("bucket", req.Bucket).
		Str("s3Path", req.S3Path).
		Str("hdfsPath", req.HDFSPath).
		Int("mappers", req.Mappers).
		Str("protocol", string(req.Protocol())).
		Int64("snapshotTtl", req.SnapshotTTL).
		Msg("hbase snapshot s3 util")
}
