package payroll

import (
	"context"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/mock"
)

type mockAttendanceReader struct {
	mock.Mock
}

func (m *mockAttendanceReader) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Entry, error) {
	args := m.Called(ctx, employeeID, month, year)
	entries, _ := args.Get(0).([]attendance.Entry)
	return entries, args.Error(1)
}

type mockSnapshotRepository struct {
	mock.Mock
}

func (m *mockSnapshotRepository) Create(ctx context.Context, snapshot payroll.Snapshot) (payroll.Snapshot, error) {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(payroll.Snapshot), args.Error(1)
}

func (m *mockSnapshotRepository) GetByID(ctx context.Context, id string) (payroll.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(payroll.Snapshot), args.Error(1)
}

func (m *mockSnapshotRepository) List(ctx context.Context, filter payroll.SnapshotFilter) ([]payroll.Snapshot, int64, error) {
	args := m.Called(ctx, filter)
	snapshots, _ := args.Get(0).([]payroll.Snapshot)
	return snapshots, args.Get(1).(int64), args.Error(2)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishSnapshotCommitted(ctx context.Context, event payroll.SnapshotCommittedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type txMarker struct{}

// recordingTransactor marks the context it hands to fn so readers can
// check they ran inside it.
type recordingTransactor struct {
	calls int
	err   error
}

func (r *recordingTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(context.WithValue(ctx, txMarker{}, r.calls))
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txMarker{}).(int)
	return ok
}
