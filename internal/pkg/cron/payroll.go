package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
)

// PayrollJobs closes the previous month's payroll on a fixed day of the
// month.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	commitDay      int
	logger         *slog.Logger
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, commitDay int, logger *slog.Logger) *PayrollJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollJobs{
		payrollService: payrollService,
		commitDay:      commitDay,
		logger:         logger,
		now:            time.Now,
	}
}

// RegisterJobs registers the auto-commit job. Repeated runs on the commit
// day are harmless: already committed employees are skipped.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("commit_previous_month_payroll", interval, j.CommitPreviousMonth)
}

// CommitPreviousMonth commits every payable employee for the month before
// today. It does nothing on other days than the configured commit day.
func (j *PayrollJobs) CommitPreviousMonth(ctx context.Context) error {
	today := j.now().UTC()
	if today.Day() != j.commitDay {
		return nil
	}

	month, year := previousMonth(today)
	result, err := j.payrollService.CommitPeriod(ctx, month, year)
	if err != nil {
		return fmt.Errorf("commit payroll %04d-%02d: %w", year, month, err)
	}

	j.logger.Info("auto payroll commit finished",
		"month", month,
		"year", year,
		"committed", len(result.Committed),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)

	if len(result.Failed) == 0 {
		return nil
	}

	ids := make([]string, 0, len(result.Failed))
	for id := range result.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, fmt.Errorf("employee %s: %w", id, result.Failed[id]))
	}
	return errors.Join(errs...)
}

func previousMonth(t time.Time) (int, int) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return int(prev.Month()), prev.Year()
}
