package payroll

import "context"

// PayrollService computes and commits monthly payroll.
type PayrollService interface {
	ComputeMonthlyPayroll(ctx context.Context, employeeID string, month, year int) (Breakdown, error)
	// CommitSnapshot recomputes and stores the month. On a *PersistenceError
	// the returned snapshot still carries the computed figures.
	CommitSnapshot(ctx context.Context, employeeID string, month, year int) (Snapshot, error)
	CommitPeriod(ctx context.Context, month, year int) (PeriodCommitResult, error)

	GetSnapshot(ctx context.Context, id string) (Snapshot, error)
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]Snapshot, int64, error)
}
