package backup

import (
	"context"
	"fmt"

	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
	"github.com/lospro7/snapshot-s3-util/src/distcp"
)

// hbaseTmpDir is expanded by the launcher, not by this process.
const hbaseTmpDir = "/tmp/hbase-${user.name}"

// importSnapshot drives the copy engine from the remote object store back
// into the cluster. The engine only copies *from* the default filesystem, so
// a clone of the configuration is redirected at the object store for the
// duration of this one call: the default filesystem address (with embedded
// credentials — the one place they may appear, since that address is never
// logged), the explicit credential entries, and the root directory. The
// shared configuration is never touched, so a sibling sweep or create in the
// same process still sees the real cluster.
func (r *Runner) importSnapshot(ctx context.Context, req Request, name string) error {
	clusterFS, err := r.Conf.DefaultFS()
	if err != nil {
		return fmt.Errorf("import snapshot %s: %w", name, err)
	}
	copyTo := clusterFS + req.HDFSPath

	endpoint := req.Endpoint()
	redirected := r.Conf.Clone()
	for key, value := range map[string]string{
		clusterconf.KeyDefaultFS:       endpoint.Authority(true),
		clusterconf.KeyDefaultFSLegacy: endpoint.Authority(true),
		clusterconf.KeyS3AccessKey:     req.AccessKey,
		clusterconf.KeyS3AccessSecret:  req.AccessSecret,
		clusterconf.KeyHBaseTmpDir:     hbaseTmpDir,
		clusterconf.KeyHBaseRootDir:    endpoint.URL(false),
	} {
		if err := redirected.Set(key, value); err != nil {
			return fmt.Errorf("import snapshot %s: redirect %s: %w", name, key, err)
		}
	}

	r.Log.Info().
		Str("source", endpoint.Redacted()).
		Str("destination", copyTo).
		Msg("copying snapshot into cluster")

	spec := distcp.JobSpec{
		Snapshot: name,
		CopyTo:   copyTo,
		Mappers:  req.Mappers,
	}
	if err := r.Engine.Run(ctx, redirected, spec); err != nil {
		return fmt.Errorf("import snapshot %s: %w", name, err)
	}
	return nil
}
