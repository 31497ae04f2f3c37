package backup

import (
	"context"
	"fmt"
)

// SweepResult summarizes one retention sweep.
type SweepResult struct {
	Examined int
	Deleted  int
	Failed   int
}

// sweep deletes every snapshot strictly older than ttl seconds. A deletion
// failure is logged and counted but never stops the sweep; only a failure to
// obtain the listing aborts it. The sweep's outcome never affects the rest of
// the pipeline.
func (r *Runner) sweep(ctx context.Context, ttl int64) (SweepResult, error) {
	var res SweepResult

	admin, err := r.NewAdmin(r.Conf)
	if err != nil {
		return res, fmt.Errorf("sweep: open administrative handle: %w", err)
	}
	defer admin.Close()

	snaps, err := admin.ListSnapshots(ctx)
	if err != nil {
		return res, fmt.Errorf("sweep: could not get a list of snapshots: %w", err)
	}

	now := r.now()
	for _, snap := range snaps {
		res.Examined++
		age := int64(now.Sub(snap.CreatedAt).Seconds())
		r.Log.Debug().Str("snapshot", snap.Name).Int64("age", age).Msg("found snapshot")

		if age <= ttl {
			continue
		}
		r.Log.Info().Str("snapshot", snap.Name).Int64("age", age).Int64("ttl", ttl).
			Msg("deleting expired snapshot")
		if err := admin.DeleteSnapshot(ctx, snap.Name); err != nil {
			res.Failed++
			r.Log.Error().Err(err).Str("snapshot", snap.Name).Msg("failed to delete snapshot")
			continue
		}
		res.Deleted++
	}
	return res, nil
}
