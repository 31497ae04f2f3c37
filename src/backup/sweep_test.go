package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lospro7/snapshot-s3-util/src/distcp"
	"github.com/lospro7/snapshot-s3-util/src/hbase"
)

func TestSweepBoundary(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	const ttl = 100

	admin := hbase.NewFake()
	admin.SnapshotsMap["at-threshold"] = hbase.Snapshot{
		Name:      "at-threshold",
		CreatedAt: now.Add(-ttl * time.Second),
	}
	admin.SnapshotsMap["past-threshold"] = hbase.Snapshot{
		Name:      "past-threshold",
		CreatedAt: now.Add(-(ttl + 1) * time.Second),
	}
	r := newTestRunner(admin, &distcp.FakeEngine{})
	r.Now = func() time.Time { return now }

	res, err := r.sweep(context.Background(), ttl)
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Examined: 2, Deleted: 1}, res)
	assert.Equal(t, []string{"past-threshold"}, admin.Deleted)
	assert.Contains(t, admin.SnapshotsMap, "at-threshold", "age equal to the threshold must be retained")
}

func TestSweepIsolatesDeletionFailures(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	admin := hbase.NewFake()
	admin.SnapshotsMap["expired-a"] = hbase.Snapshot{Name: "expired-a", CreatedAt: now.Add(-time.Hour)}
	admin.SnapshotsMap["expired-b"] = hbase.Snapshot{Name: "expired-b", CreatedAt: now.Add(-time.Hour)}
	admin.DeleteErr["expired-a"] = errors.New("held by running restore")
	r := newTestRunner(admin, &distcp.FakeEngine{})
	r.Now = func() time.Time { return now }

	res, err := r.sweep(context.Background(), 60)
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Examined: 2, Deleted: 1, Failed: 1}, res)
	assert.Equal(t, []string{"expired-a", "expired-b"}, admin.Deleted,
		"a deletion failure must not stop the sweep")
	assert.NotContains(t, admin.SnapshotsMap, "expired-b")
}

func TestSweepListingFailure(t *testing.T) {
	admin := hbase.NewFake()
	admin.ListErr = errors.New("cluster unreachable")
	r := newTestRunner(admin, &distcp.FakeEngine{})

	_, err := r.sweep(context.Background(), 60)
	require.Error(t, err)
	assert.Positive(t, admin.Closed)
}

func TestSweepClosesHandle(t *testing.T) {
	admin := hbase.NewFake()
	r := newTestRunner(admin, &distcp.FakeEngine{})

	_, err := r.sweep(context.Background(), 60)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.Closed)
}
