package hbase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"
)

// BinaryInfo describes a detected hbase launcher binary.
type BinaryInfo struct {
	Path    string
	Version string
}

var versionRegexp = regexp.MustCompile(`HBase\s+([0-9]+\.[0-9]+\.[0-9]+(?:-[A-Za-z0-9.]+)?)`)

// Detect locates the hbase launcher, preferring $HBASE_HOME/bin/hbase over
// PATH, queries its version, and returns the gathered metadata. The context
// bounds the version subprocess.
func Detect(ctx context.Context) (BinaryInfo, error) {
	exe, err := lookPath()
	if err != nil {
		return BinaryInfo{}, err
	}
	ver, err := queryVersion(ctx, exe)
	if err != nil {
		return BinaryInfo{}, err
	}
	return BinaryInfo{Path: exe, Version: ver}, nil
}

func lookPath() (string, error) {
	if home := os.Getenv("HBASE_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", "hbase")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	exe, err := exec.LookPath("hbase")
	if err != nil {
		return "", fmt.Errorf("hbase binary not found via HBASE_HOME or PATH: %w", err)
	}
	return exe, nil
}

// queryVersion executes `hbase version` and parses the release from its
// output.
func queryVersion(ctx context.Context, exe string) (string, error) {
	// Guard against commands that hang by applying a short timeout.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, "version")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("hbase: capture stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("hbase: capture stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("hbase: start version command: %w", err)
	}

	version, parseErr := parseVersion(stdout)
	if version == "" && parseErr == nil {
		// Some releases print the banner to stderr.
		version, parseErr = parseVersion(stderr)
	}
	waitErr := cmd.Wait()
	if parseErr != nil {
		return "", parseErr
	}
	if version == "" {
		return "", errors.New("hbase: could not parse version output")
	}
	if waitErr != nil {
		return "", fmt.Errorf("hbase: version command failed: %w", waitErr)
	}
	return version, nil
}

func parseVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if matches := versionRegexp.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return matches[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("hbase: read version output: %w", err)
	}
	return "", nil
}
