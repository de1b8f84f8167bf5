package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockPayrollService struct {
	mock.Mock
}

func (m *mockPayrollService) ComputeMonthlyPayroll(ctx context.Context, employeeID string, month, year int) (payroll.Breakdown, error) {
	args := m.Called(ctx, employeeID, month, year)
	return args.Get(0).(payroll.Breakdown), args.Error(1)
}

func (m *mockPayrollService) CommitSnapshot(ctx context.Context, employeeID string, month, year int) (payroll.Snapshot, error) {
	args := m.Called(ctx, employeeID, month, year)
	return args.Get(0).(payroll.Snapshot), args.Error(1)
}

func (m *mockPayrollService) CommitPeriod(ctx context.Context, month, year int) (payroll.PeriodCommitResult, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).(payroll.PeriodCommitResult), args.Error(1)
}

func (m *mockPayrollService) GetSnapshot(ctx context.Context, id string) (payroll.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(payroll.Snapshot), args.Error(1)
}

func (m *mockPayrollService) ListSnapshots(ctx context.Context, filter payroll.SnapshotFilter) ([]payroll.Snapshot, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payroll.Snapshot), args.Get(1).(int64), args.Error(2)
}

func jobsAt(svc payroll.PayrollService, day int, now time.Time) *PayrollJobs {
	j := NewPayrollJobs(svc, day, discardLogger)
	j.now = func() time.Time { return now }
	return j
}

func TestCommitPreviousMonth_OnCommitDay(t *testing.T) {
	svc := new(mockPayrollService)
	svc.On("CommitPeriod", mock.Anything, 12, 2023).Return(payroll.PeriodCommitResult{
		Month: 12, Year: 2023,
		Committed: []payroll.Snapshot{{ID: "s1"}},
		Skipped:   []string{"emp-2"},
	}, nil).Once()

	j := jobsAt(svc, 1, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))
	require.NoError(t, j.CommitPreviousMonth(context.Background()))
	svc.AssertExpectations(t)
}

func TestCommitPreviousMonth_OtherDaysDoNothing(t *testing.T) {
	svc := new(mockPayrollService)

	j := jobsAt(svc, 1, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, j.CommitPreviousMonth(context.Background()))
	svc.AssertNotCalled(t, "CommitPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommitPreviousMonth_ReportsFailures(t *testing.T) {
	timeout := errors.New("timeout")
	svc := new(mockPayrollService)
	svc.On("CommitPeriod", mock.Anything, 2, 2024).Return(payroll.PeriodCommitResult{
		Month: 2, Year: 2024,
		Failed: map[string]error{"emp-9": timeout},
	}, nil)

	j := jobsAt(svc, 5, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	err := j.CommitPreviousMonth(context.Background())
	assert.ErrorIs(t, err, timeout)
	assert.Contains(t, err.Error(), "emp-9")
}

func TestCommitPreviousMonth_ListingFailure(t *testing.T) {
	listErr := errors.New("directory down")
	svc := new(mockPayrollService)
	svc.On("CommitPeriod", mock.Anything, 2, 2024).Return(payroll.PeriodCommitResult{}, listErr)

	j := jobsAt(svc, 5, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, j.CommitPreviousMonth(context.Background()), listErr)
}

func TestPreviousMonth(t *testing.T) {
	m, y := previousMonth(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, m)
	assert.Equal(t, 2024, y)

	m, y = previousMonth(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 12, m)
	assert.Equal(t, 2023, y)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(discardLogger)
	ran := make(chan struct{}, 10)
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(discardLogger)
	s.Stop()
}
