package hbase

import (
	"context"
	"sort"
)

// FakeAdmin is an in-memory Admin implementation for unit tests.
type FakeAdmin struct {
	SnapshotsMap map[string]Snapshot

	// Error injection.
	ListErr   error
	CreateErr error
	DeleteErr map[string]error

	// Call recording.
	Created []string
	Deleted []string
	Closed  int
}

func NewFake() *FakeAdmin {
	return &FakeAdmin{
		SnapshotsMap: map[string]Snapshot{},
		DeleteErr:    map[string]error{},
	}
}

func (f *FakeAdmin) ListSnapshots(context.Context) ([]Snapshot, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]Snapshot, 0, len(f.SnapshotsMap))
	for _, s := range f.SnapshotsMap {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeAdmin) CreateSnapshot(_ context.Context, name, table string) error {
	f.Created = append(f.Created, name)
	if f.CreateErr != nil {
		return f.CreateErr
	}
	if _, ok := f.SnapshotsMap[name]; ok {
		return &CreationError{Snapshot: name, Detail: "snapshot already exists"}
	}
	f.SnapshotsMap[name] = Snapshot{Name: name, Table: table}
	return nil
}

func (f *FakeAdmin) DeleteSnapshot(_ context.Context, name string) error {
	f.Deleted = append(f.Deleted, name)
	if err := f.DeleteErr[name]; err != nil {
		return err
	}
	if _, ok := f.SnapshotsMap[name]; !ok {
		return &NotFoundError{Snapshot: name}
	}
	delete(f.SnapshotsMap, name)
	return nil
}

func (f *FakeAdmin) Close() error {
	f.Closed++
	return nil
}
