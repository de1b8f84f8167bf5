package fixtures

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func idr(amount int64) decimal.Decimal { return decimal.NewFromInt(amount) }

func hours(h int64) decimal.Decimal { return decimal.NewFromInt(h) }

// weekdays returns the Monday-to-Friday dates of the month, skipping any in skip.
func weekdays(month, year int, skip map[int]bool) []time.Time {
	var days []time.Time
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == time.Month(month) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday && !skip[d.Day()] {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

func date(month, year, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ==========================================
// DEMO EMPLOYEES
// ==========================================

const (
	DemoEmployeeRegular    = "EMP-001"
	DemoEmployeeUnpaid     = "EMP-002"
	DemoEmployeeOnLeave    = "EMP-003"
	DemoEmployeeTerminated = "EMP-004"
)

// GetDemoEmployees returns a small directory covering every employment status
func GetDemoEmployees() []employee.EmploymentRecord {
	return []employee.EmploymentRecord{
		{EmployeeID: DemoEmployeeRegular, FullName: "Rina Wijaya", BaseSalary: idr(10_000_000), Status: employee.EmploymentStatusActive},
		{EmployeeID: DemoEmployeeUnpaid, FullName: "Agus Pratama", BaseSalary: idr(7_500_000), Status: employee.EmploymentStatusActive},
		{EmployeeID: DemoEmployeeOnLeave, FullName: "Sari Putri", BaseSalary: idr(6_000_000), Status: employee.EmploymentStatusOnLeave},
		{EmployeeID: DemoEmployeeTerminated, FullName: "Hendra Gunawan", BaseSalary: idr(8_000_000), Status: employee.EmploymentStatusTerminated},
	}
}

// ==========================================
// DEMO LEDGERS
// ==========================================

// GetDemoAttendance returns one month of attendance. Leave days are left
// out and two mornings of the regular employee are more than 30 minutes late.
func GetDemoAttendance(month, year int) []attendance.Entry {
	var entries []attendance.Entry

	for i, d := range weekdays(month, year, map[int]bool{4: true, 5: true}) {
		late := 0
		if i == 2 || i == 9 {
			late = 45
		}
		entries = append(entries, attendance.Entry{EmployeeID: DemoEmployeeRegular, Date: d, HoursWorked: hours(8), LateMinutes: late})
	}

	for _, d := range weekdays(month, year, map[int]bool{11: true, 12: true, 13: true, 14: true}) {
		entries = append(entries, attendance.Entry{EmployeeID: DemoEmployeeUnpaid, Date: d, HoursWorked: hours(8), LateMinutes: 10})
	}

	// Rows for a former employee are ignored by the engine.
	for _, d := range weekdays(month, year, nil)[:5] {
		entries = append(entries, attendance.Entry{EmployeeID: DemoEmployeeTerminated, Date: d, HoursWorked: hours(8)})
	}

	return entries
}

// GetDemoLeave returns approved, pending and unpaid leave for the month
func GetDemoLeave(month, year int) []leave.Entry {
	id := func(n int) string { return fmt.Sprintf("LV-%04d%02d-%d", year, month, n) }
	lastDay := date(month, year, 1).AddDate(0, 1, -1).Day()

	return []leave.Entry{
		// Annual leave, paid
		{ID: id(1), EmployeeID: DemoEmployeeRegular, StartDate: date(month, year, 4), EndDate: date(month, year, 5), LeaveType: leave.TypeAnnualLeave, ApprovalStatus: leave.ApprovalStatusApproved, NumberOfDays: decimal.NewFromInt(2)},
		// Still waiting for approval, not counted
		{ID: id(2), EmployeeID: DemoEmployeeRegular, StartDate: date(month, year, 25), EndDate: date(month, year, 25), LeaveType: leave.TypeAnnualLeave, ApprovalStatus: leave.ApprovalStatusPending},
		// Sick leave, paid
		{ID: id(3), EmployeeID: DemoEmployeeUnpaid, StartDate: date(month, year, 11), EndDate: date(month, year, 11), LeaveType: leave.TypeSick, ApprovalStatus: leave.ApprovalStatusApproved},
		// Unpaid leave, approved but not paid
		{ID: id(4), EmployeeID: DemoEmployeeUnpaid, StartDate: date(month, year, 12), EndDate: date(month, year, 14), LeaveType: leave.TypeUnpaid, ApprovalStatus: leave.ApprovalStatusApproved},
		// Maternity leave covering the whole month
		{ID: id(5), EmployeeID: DemoEmployeeOnLeave, StartDate: date(month, year, 1), EndDate: date(month, year, lastDay), LeaveType: leave.TypeMaternity, ApprovalStatus: leave.ApprovalStatusApproved},
	}
}

// GetDemoAdjustments returns one bonus and one penalty
func GetDemoAdjustments(month, year int) []adjustment.Entry {
	return []adjustment.Entry{
		{ID: fmt.Sprintf("ADJ-%04d%02d-1", year, month), EmployeeID: DemoEmployeeRegular, Date: date(month, year, 20), Kind: adjustment.KindBonus, Amount: idr(500_000), Reason: strPtr("Quarterly target achieved")},
		{ID: fmt.Sprintf("ADJ-%04d%02d-2", year, month), EmployeeID: DemoEmployeeUnpaid, Date: date(month, year, 18), Kind: adjustment.KindPenalty, Amount: idr(250_000), Reason: strPtr("Repeated missing clock-out")},
	}
}

// ==========================================
// SEEDING
// ==========================================

// PayrollSeeder is the write side of the in-memory store.
type PayrollSeeder interface {
	PutEmployee(rec employee.EmploymentRecord) error
	AddAttendance(entries ...attendance.Entry) error
	AddLeave(entries ...leave.Entry) error
	AddAdjustments(entries ...adjustment.Entry) error
}

// SeedDemoPayroll loads the demo directory once and the demo ledgers for
// each of the given periods.
func SeedDemoPayroll(s PayrollSeeder, periods ...time.Time) error {
	for _, rec := range GetDemoEmployees() {
		if err := s.PutEmployee(rec); err != nil {
			return fmt.Errorf("seed employee %s: %w", rec.EmployeeID, err)
		}
	}

	for _, p := range periods {
		month, year := int(p.Month()), p.Year()
		if err := s.AddAttendance(GetDemoAttendance(month, year)...); err != nil {
			return fmt.Errorf("seed attendance %04d-%02d: %w", year, month, err)
		}
		if err := s.AddLeave(GetDemoLeave(month, year)...); err != nil {
			return fmt.Errorf("seed leave %04d-%02d: %w", year, month, err)
		}
		if err := s.AddAdjustments(GetDemoAdjustments(month, year)...); err != nil {
			return fmt.Errorf("seed adjustments %04d-%02d: %w", year, month, err)
		}
	}
	return nil
}
