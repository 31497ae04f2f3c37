package hbase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const snapshotInfoClass = "org.apache.hadoop.hbase.snapshot.SnapshotInfo"

// ExecAdmin implements Admin by driving the hbase launcher binary. Snapshot
// create/delete go through the non-interactive shell; listing goes through
// the SnapshotInfo tool.
type ExecAdmin struct {
	bin BinaryInfo

	// runCommand is swappable for tests.
	runCommand func(ctx context.Context, exe string, args []string, stdin io.Reader) (string, string, error)
}

// NewExecAdmin returns an Admin backed by the given launcher binary.
func NewExecAdmin(bin BinaryInfo) *ExecAdmin {
	return &ExecAdmin{bin: bin, runCommand: runCommand}
}

func (a *ExecAdmin) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	stdout, stderr, err := a.runCommand(ctx, a.bin.Path, []string{snapshotInfoClass, "-list-snapshots"}, nil)
	if err != nil {
		return nil, fmt.Errorf("hbase: list snapshots: %w: %s", err, strings.TrimSpace(stderr))
	}
	snaps, err := parseSnapshotList(stdout)
	if err != nil {
		return nil, fmt.Errorf("hbase: parse snapshot listing: %w", err)
	}
	return snaps, nil
}

func (a *ExecAdmin) CreateSnapshot(ctx context.Context, name, table string) error {
	stmt := fmt.Sprintf("snapshot '%s', '%s'", table, name)
	_, stderr, err := a.runShell(ctx, stmt)
	if err == nil {
		return nil
	}
	switch {
	case containsAny(stderr, "TableNotFoundException", "IllegalArgumentException", "Unknown namespace"):
		return &InvalidSnapshotError{Snapshot: name, Table: table, Detail: firstLine(stderr)}
	case containsAny(stderr, "SnapshotCreationException", "SnapshotExistsException"):
		return &CreationError{Snapshot: name, Detail: firstLine(stderr)}
	default:
		return fmt.Errorf("hbase: create snapshot %s: %w: %s", name, err, firstLine(stderr))
	}
}

func (a *ExecAdmin) DeleteSnapshot(ctx context.Context, name string) error {
	stmt := fmt.Sprintf("delete_snapshot '%s'", name)
	_, stderr, err := a.runShell(ctx, stmt)
	if err == nil {
		return nil
	}
	if containsAny(stderr, "SnapshotDoesNotExistException") {
		return &NotFoundError{Snapshot: name}
	}
	return fmt.Errorf("hbase: delete snapshot %s: %w: %s", name, err, firstLine(stderr))
}

// Close is part of the Admin contract. The exec-backed admin holds no
// persistent connection, so there is nothing to release.
func (a *ExecAdmin) Close() error {
	return nil
}

// runShell feeds a single statement to `hbase shell -n`, which exits non-zero
// when the statement raises.
func (a *ExecAdmin) runShell(ctx context.Context, stmt string) (string, string, error) {
	return a.runCommand(ctx, a.bin.Path, []string{"shell", "-n"}, strings.NewReader(stmt+"\n"))
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func runCommand(ctx context.Context, exe string, args []string, stdin io.Reader) (string, string, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}
