package telemetry

import "github.com/opensmoker/smokerd/internal/status"

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	Snapshots    []status.Snapshot
	SystemEvents []SystemEvent

	// StatusError, if set, is returned by PublishStatus.
	StatusError error
	// SystemError, if set, is returned by PublishSystem.
	SystemError error

	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishStatus(snap status.Snapshot) error {
	if f.StatusError != nil {
		return f.StatusError
	}
	f.Snapshots = append(f.Snapshots, snap)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.SystemError != nil {
		return f.SystemError
	}
	f.SystemEvents = append(f.SystemEvents, event)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
