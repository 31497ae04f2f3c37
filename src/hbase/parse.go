package hbase

import (
	"bufio"
	"fmt"
	"strings"
	"time"
)

// creationTimeLayout matches the timestamp column printed by the SnapshotInfo
// tool.
const creationTimeLayout = "2006-01-02T15:04:05"

// parseSnapshotList parses `SnapshotInfo -list-snapshots` output. Rows are
// pipe-separated; older releases print three columns (name, creation time,
// table) and newer ones insert a TTL column before the table name. Header and
// summary lines are skipped.
func parseSnapshotList(out string) ([]Snapshot, error) {
	var snaps []Snapshot
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if fields[0] == "SNAPSHOT" {
			continue
		}
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("unexpected listing row %q", line)
		}
		created, err := time.ParseInLocation(creationTimeLayout, fields[1], time.Local)
		if err != nil {
			return nil, fmt.Errorf("creation time of snapshot %s: %w", fields[0], err)
		}
		snaps = append(snaps, Snapshot{
			Name:      fields[0],
			Table:     fields[len(fields)-1],
			CreatedAt: created,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}
