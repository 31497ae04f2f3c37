package distcp

import (
	"context"

	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
)

// RecordedJob captures one FakeEngine invocation, including the configuration
// instance the job was handed.
type RecordedJob struct {
	Spec JobSpec
	Conf *clusterconf.Config
}

// FakeEngine records copy jobs and returns a scripted outcome.
type FakeEngine struct {
	Jobs []RecordedJob
	Err  error
}

func (f *FakeEngine) Run(_ context.Context, conf *clusterconf.Config, spec JobSpec) error {
	f.Jobs = append(f.Jobs, RecordedJob{Spec: spec, Conf: conf})
	return f.Err
}
