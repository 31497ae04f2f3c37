package backup

import "time"

// nameTimestampLayout is second-resolution and sorts lexicographically in
// creation order, so derived names for the same table strictly increase over
// time.
const nameTimestampLayout = "20060102_150405"

// EffectiveSnapshotName resolves the snapshot identifier for a request. An
// explicit name is returned unchanged; otherwise the name is derived as
// <table>-snapshot-<timestamp>. Pure function of the request and the supplied
// clock reading.
func EffectiveSnapshotName(req Request, now time.Time) (string, error) {
	if req.SnapshotName != "" {
		return req.SnapshotName, nil
	}
	if req.Table == "" {
		return "", &InvalidRequestError{Reason: "cannot derive a snapshot name without a table name"}
	}
	return req.Table + "-snapshot-" + now.Format(nameTimestampLayout), nil
}
