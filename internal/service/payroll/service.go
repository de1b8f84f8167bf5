package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

const defaultCommitConcurrency = 8

type PayrollServiceImpl struct {
	policy         payroll.Policy
	directory      employee.DirectoryReader
	attendanceRepo attendance.Reader
	leaveRepo      leave.Reader
	adjustmentRepo adjustment.Reader
	snapshotRepo   payroll.SnapshotRepository
	publisher      payroll.EventPublisher
	transactor     payroll.Transactor
	logger         *slog.Logger
	concurrency    int
}

type Option func(*PayrollServiceImpl)

// WithPublisher announces every committed snapshot through p.
func WithPublisher(p payroll.EventPublisher) Option {
	return func(s *PayrollServiceImpl) {
		s.publisher = p
	}
}

// WithTransactor runs the reads of one computation inside a single
// transaction of t.
func WithTransactor(t payroll.Transactor) Option {
	return func(s *PayrollServiceImpl) {
		s.transactor = t
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *PayrollServiceImpl) {
		s.logger = logger
	}
}

// WithCommitConcurrency bounds how many employees CommitPeriod handles at once.
func WithCommitConcurrency(n int) Option {
	return func(s *PayrollServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewPayrollService(
	policy payroll.Policy,
	directory employee.DirectoryReader,
	attendanceRepo attendance.Reader,
	leaveRepo leave.Reader,
	adjustmentRepo adjustment.Reader,
	snapshotRepo payroll.SnapshotRepository,
	opts ...Option,
) payroll.PayrollService {
	s := &PayrollServiceImpl{
		policy:         policy,
		directory:      directory,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		adjustmentRepo: adjustmentRepo,
		snapshotRepo:   snapshotRepo,
		logger:         slog.Default(),
		concurrency:    defaultCommitConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========== COMPUTE ==========

// ComputeMonthlyPayroll implements payroll.PayrollService. Collaborator
// errors are returned unchanged.
func (s *PayrollServiceImpl) ComputeMonthlyPayroll(ctx context.Context, employeeID string, month, year int) (payroll.Breakdown, error) {
	var in MonthInput
	err := s.withinTransaction(ctx, func(ctx context.Context) error {
		var err error
		in, err = s.loadMonthInput(ctx, employeeID, month, year)
		return err
	})
	if err != nil {
		return payroll.Breakdown{}, err
	}
	return Calculate(s.policy, in), nil
}

func (s *PayrollServiceImpl) withinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.transactor == nil {
		return fn(ctx)
	}
	return s.transactor.WithinTransaction(ctx, fn)
}

// loadMonthInput reads everything the formula needs. Ledgers of a
// terminated employee are not read.
func (s *PayrollServiceImpl) loadMonthInput(ctx context.Context, employeeID string, month, year int) (MonthInput, error) {
	record, err := s.directory.GetEmploymentRecord(ctx, employeeID)
	if err != nil {
		return MonthInput{}, err
	}
	in := MonthInput{Record: record, Month: month, Year: year}
	if record.IsTerminated() {
		return in, nil
	}

	if in.Attendance, err = s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month, year); err != nil {
		return MonthInput{}, err
	}
	if in.Leave, err = s.leaveRepo.ListApprovedByEmployeeMonth(ctx, employeeID, month, year); err != nil {
		return MonthInput{}, err
	}
	if in.Adjustments, err = s.adjustmentRepo.ListByEmployeeMonth(ctx, employeeID, month, year); err != nil {
		return MonthInput{}, err
	}
	return in, nil
}

// ========== COMMIT ==========

// CommitSnapshot implements payroll.PayrollService.
func (s *PayrollServiceImpl) CommitSnapshot(ctx context.Context, employeeID string, month, year int) (payroll.Snapshot, error) {
	breakdown, err := s.ComputeMonthlyPayroll(ctx, employeeID, month, year)
	if err != nil {
		return payroll.Snapshot{}, err
	}

	snapshot := payroll.NewSnapshot(breakdown)
	created, err := s.snapshotRepo.Create(ctx, snapshot)
	if err != nil {
		return snapshot, &payroll.PersistenceError{EmployeeID: employeeID, Month: month, Year: year, Err: err}
	}

	s.logger.Info("payroll snapshot committed",
		"snapshot_id", created.ID,
		"employee_id", employeeID,
		"month", month,
		"year", year,
		"net_salary", created.NetSalary.String(),
	)
	s.publish(ctx, created)

	return created, nil
}

// publish never fails the commit; the snapshot is already stored.
func (s *PayrollServiceImpl) publish(ctx context.Context, snapshot payroll.Snapshot) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSnapshotCommitted(ctx, payroll.NewSnapshotCommittedEvent(snapshot)); err != nil {
		s.logger.Error("failed to publish payroll snapshot event",
			"snapshot_id", snapshot.ID,
			"employee_id", snapshot.EmployeeID,
			"error", err,
		)
	}
}

// CommitPeriod implements payroll.PayrollService. Employees that already
// have a snapshot for the month are skipped; other per-employee failures
// are collected in the result.
func (s *PayrollServiceImpl) CommitPeriod(ctx context.Context, month, year int) (payroll.PeriodCommitResult, error) {
	result := payroll.PeriodCommitResult{
		Month:     month,
		Year:      year,
		Committed: []payroll.Snapshot{},
		Skipped:   []string{},
		Failed:    map[string]error{},
	}

	ids, err := s.directory.ListPayableEmployeeIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list payable employees: %w", err)
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			snapshot, err := s.CommitSnapshot(ctx, id, month, year)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Committed = append(result.Committed, snapshot)
			case payroll.IsConflict(err):
				result.Skipped = append(result.Skipped, id)
			default:
				result.Failed[id] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Committed, func(i, j int) bool {
		return result.Committed[i].EmployeeID < result.Committed[j].EmployeeID
	})
	sort.Strings(result.Skipped)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.logger.Info("payroll period committed",
		"month", month,
		"year", year,
		"committed", len(result.Committed),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)

	return result, nil
}

// ========== HISTORY ==========

func (s *PayrollServiceImpl) GetSnapshot(ctx context.Context, id string) (payroll.Snapshot, error) {
	snapshot, err := s.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrSnapshotNotFound) {
			return payroll.Snapshot{}, err
		}
		return payroll.Snapshot{}, fmt.Errorf("failed to get payroll snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *PayrollServiceImpl) ListSnapshots(ctx context.Context, filter payroll.SnapshotFilter) ([]payroll.Snapshot, int64, error) {
	snapshots, total, err := s.snapshotRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll snapshots: %w", err)
	}
	return snapshots, total, nil
}
