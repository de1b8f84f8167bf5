package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// MonthInput is everything the salary formula reads for one employee-month.
type MonthInput struct {
	Record      employee.EmploymentRecord
	Month       int
	Year        int
	Attendance  []attendance.Entry
	Leave       []leave.Entry
	Adjustments []adjustment.Entry
}

// Calculate applies the salary formula. It performs no I/O.
func Calculate(policy payroll.Policy, in MonthInput) payroll.Breakdown {
	b := payroll.ZeroBreakdown(in.Record.EmployeeID, in.Month, in.Year)
	if in.Record.IsTerminated() {
		note := payroll.NoteEmployeeLeft
		b.Note = &note
		return b
	}

	b.BaseSalary = in.Record.BaseSalary

	// Attendance aggregation
	lateThreshold := policy.LateThresholdMinutes
	for _, a := range in.Attendance {
		b.TotalHours = b.TotalHours.Add(a.HoursWorked)
		if a.LateMinutes > lateThreshold {
			b.LateDayUnits = b.LateDayUnits.Add(policy.LatePenaltyDays)
		}
	}
	fullDays := b.TotalHours.Div(policy.HoursPerDay).Floor()
	b.WorkingDaysFromAttendance = decimal.Max(decimal.Zero, fullDays.Sub(b.LateDayUnits))

	// Leave only counts when approved, paid and started this month.
	for _, l := range in.Leave {
		if !l.IsApproved() || !l.StartsIn(in.Month, in.Year) || !policy.IsPaidLeave(string(l.LeaveType)) {
			continue
		}
		b.PaidLeaveDays = b.PaidLeaveDays.Add(l.Days())
	}

	b.ActualWorkingDays = decimal.Min(policy.StandardWorkingDays, b.WorkingDaysFromAttendance.Add(b.PaidLeaveDays))

	b.GrossSalary = b.BaseSalary.Mul(b.ActualWorkingDays).Div(policy.StandardWorkingDays).Round(policy.MoneyScale)

	totals := adjustment.Sum(in.Adjustments)
	b.BonusTotal = totals.Bonus
	b.PenaltyTotal = totals.Penalty

	// Deduction is charged on the contractual base, not on earned pay.
	b.DeductionTotal = b.BaseSalary.Mul(policy.DeductionRate).Round(policy.MoneyScale)

	b.TotalIncome = b.GrossSalary.Add(b.BonusTotal).Sub(b.PenaltyTotal)
	b.NetSalary = b.TotalIncome.Sub(b.DeductionTotal)

	return b
}
