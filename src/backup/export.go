package backup

import (
	"context"
	"fmt"

	"github.com/lospro7/snapshot-s3-util/src/distcp"
)

// export drives the copy engine from the cluster's local storage to the
// remote object store. The destination URL carries the credentials; the
// ambient configuration is passed through unmodified so the engine resolves
// the source from the real cluster addresses.
func (r *Runner) export(ctx context.Context, req Request, name string) error {
	endpoint := req.Endpoint()
	r.Log.Info().Str("destination", endpoint.Redacted()).Msg("export destination")

	spec := distcp.JobSpec{
		Snapshot: name,
		CopyTo:   endpoint.URL(true),
		Mappers:  req.Mappers,
	}
	if err := r.Engine.Run(ctx, r.Conf, spec); err != nil {
		return fmt.Errorf("export snapshot %s: %w", name, err)
	}
	return nil
}
