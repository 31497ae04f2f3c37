package distcp

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
	"github.com/lospro7/snapshot-s3-util/src/hbase"
)

const exportSnapshotClass = "org.apache.hadoop.hbase.snapshot.ExportSnapshot"

// ExecEngine runs the ExportSnapshot tool through the hbase launcher binary.
type ExecEngine struct {
	bin hbase.BinaryInfo
	log zerolog.Logger
}

func NewExecEngine(bin hbase.BinaryInfo, log zerolog.Logger) *ExecEngine {
	return &ExecEngine{bin: bin, log: log.With().Str("component", "distcp").Logger()}
}

func (e *ExecEngine) Run(ctx context.Context, conf *clusterconf.Config, spec JobSpec) error {
	args := jobArgs(conf, spec)
	for _, arg := range args {
		e.log.Debug().Str("arg", redactSecrets(arg)).Msg("copy engine argument")
	}

	cmd := exec.CommandContext(ctx, e.bin.Path, args...)
	var stderrBuf bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderrBuf
	if err := cmd.Run(); err != nil {
		return &CopyError{
			Snapshot: spec.Snapshot,
			Stderr:   lastLine(stderrBuf.String()),
			Err:      err,
		}
	}
	return nil
}

var credentialedURL = regexp.MustCompile(`(://[^:/@\s]+:)[^@\s]+@`)

// redactSecrets masks secret material before an argument is logged: the
// password segment of any credentialed URL, and the value of the secret-key
// configuration override.
func redactSecrets(arg string) string {
	arg = credentialedURL.ReplaceAllString(arg, "$1***@")
	if strings.HasPrefix(arg, clusterconf.KeyS3AccessSecret+"=") {
		return clusterconf.KeyS3AccessSecret + "=***"
	}
	return arg
}

// lastLine extracts the final non-empty stderr line, which for the launcher
// is usually the thrown exception.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
