package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteEmployeeLeft is attached to the zero breakdown of a terminated employee.
const NoteEmployeeLeft = "employee has left"

// Policy holds the business constants of the salary formula.
type Policy struct {
	// StandardWorkingDays is both the salary denominator and the cap on
	// actual working days.
	StandardWorkingDays decimal.Decimal
	// DeductionRate is applied to the base salary, never to earned pay.
	DeductionRate        decimal.Decimal
	HoursPerDay          decimal.Decimal
	LateThresholdMinutes int
	// LatePenaltyDays is removed once per attendance row whose lateness
	// exceeds LateThresholdMinutes.
	LatePenaltyDays decimal.Decimal
	PaidLeaveTypes  []string
	MoneyScale      int32
}

// DefaultPolicy returns the standard policy: 26 working days, 10.5%
// deduction, 8 hour days, half a day lost per arrival more than 30
// minutes late, annual and sick leave paid.
func DefaultPolicy() Policy {
	return Policy{
		StandardWorkingDays:  decimal.NewFromInt(26),
		DeductionRate:        decimal.RequireFromString("0.105"),
		HoursPerDay:          decimal.NewFromInt(8),
		LateThresholdMinutes: 30,
		LatePenaltyDays:      decimal.RequireFromString("0.5"),
		PaidLeaveTypes:       []string{"annual_leave", "sick"},
		MoneyScale:           2,
	}
}

// IsPaidLeave reports whether leaveType is paid under this policy.
func (p Policy) IsPaidLeave(leaveType string) bool {
	for _, t := range p.PaidLeaveTypes {
		if t == leaveType {
			return true
		}
	}
	return false
}

// Breakdown is the result of one monthly payroll computation.
type Breakdown struct {
	EmployeeID string
	Month      int
	Year       int

	BaseSalary decimal.Decimal

	// Attendance aggregation
	TotalHours                decimal.Decimal
	LateDayUnits              decimal.Decimal
	WorkingDaysFromAttendance decimal.Decimal
	PaidLeaveDays             decimal.Decimal
	ActualWorkingDays         decimal.Decimal

	GrossSalary    decimal.Decimal
	BonusTotal     decimal.Decimal
	PenaltyTotal   decimal.Decimal
	DeductionTotal decimal.Decimal
	TotalIncome    decimal.Decimal
	// NetSalary may be negative; it is never clamped.
	NetSalary decimal.Decimal

	Note *string
}

// ZeroBreakdown returns a breakdown with every amount and day count at zero.
func ZeroBreakdown(employeeID string, month, year int) Breakdown {
	return Breakdown{
		EmployeeID:                employeeID,
		Month:                     month,
		Year:                      year,
		BaseSalary:                decimal.Zero,
		TotalHours:                decimal.Zero,
		LateDayUnits:              decimal.Zero,
		WorkingDaysFromAttendance: decimal.Zero,
		PaidLeaveDays:             decimal.Zero,
		ActualWorkingDays:         decimal.Zero,
		GrossSalary:               decimal.Zero,
		BonusTotal:                decimal.Zero,
		PenaltyTotal:              decimal.Zero,
		DeductionTotal:            decimal.Zero,
		TotalIncome:               decimal.Zero,
		NetSalary:                 decimal.Zero,
	}
}

// Snapshot is an immutable, persisted payroll result for one month.
type Snapshot struct {
	ID                string
	EmployeeID        string
	Month             int
	Year              int
	BaseSalary        decimal.Decimal
	ActualWorkingDays decimal.Decimal
	GrossSalary       decimal.Decimal
	BonusTotal        decimal.Decimal
	PenaltyTotal      decimal.Decimal
	GrossIncome       decimal.Decimal
	DeductionTotal    decimal.Decimal
	NetSalary         decimal.Decimal
	CreatedAt         time.Time
}

// NewSnapshot copies the persisted fields out of a breakdown. ID and
// CreatedAt are assigned by the store.
func NewSnapshot(b Breakdown) Snapshot {
	return Snapshot{
		EmployeeID:        b.EmployeeID,
		Month:             b.Month,
		Year:              b.Year,
		BaseSalary:        b.BaseSalary,
		ActualWorkingDays: b.ActualWorkingDays,
		GrossSalary:       b.GrossSalary,
		BonusTotal:        b.BonusTotal,
		PenaltyTotal:      b.PenaltyTotal,
		GrossIncome:       b.TotalIncome,
		DeductionTotal:    b.DeductionTotal,
		NetSalary:         b.NetSalary,
	}
}

type SnapshotFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Page       int
	Limit      int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination returns the effective page (1-based) and page size.
func (f SnapshotFilter) Pagination() (int, int) {
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Matches reports whether s passes the filter's employee and period criteria.
func (f SnapshotFilter) Matches(s Snapshot) bool {
	if f.EmployeeID != nil && s.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Month != nil && s.Month != *f.Month {
		return false
	}
	if f.Year != nil && s.Year != *f.Year {
		return false
	}
	return true
}

// PeriodCommitResult reports a whole-company commit for one month.
type PeriodCommitResult struct {
	Month     int
	Year      int
	Committed []Snapshot
	// Skipped lists employees that already had a snapshot for the month.
	Skipped []string
	// Failed maps employee id to the error that stopped its commit.
	Failed map[string]error
}

// SnapshotCommittedEvent is published after a snapshot is durably stored.
type SnapshotCommittedEvent struct {
	EventType   string          `json:"event_type"`
	SnapshotID  string          `json:"snapshot_id"`
	EmployeeID  string          `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	GrossIncome decimal.Decimal `json:"gross_income"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	CommittedAt time.Time       `json:"committed_at"`
}

const EventTypeSnapshotCommitted = "payroll.snapshot.committed"

// NewSnapshotCommittedEvent builds the event for a stored snapshot.
func NewSnapshotCommittedEvent(s Snapshot) SnapshotCommittedEvent {
	return SnapshotCommittedEvent{
		EventType:   EventTypeSnapshotCommitted,
		SnapshotID:  s.ID,
		EmployeeID:  s.EmployeeID,
		Month:       s.Month,
		Year:        s.Year,
		GrossIncome: s.GrossIncome,
		NetSalary:   s.NetSalary,
		CommittedAt: s.CreatedAt,
	}
}

// MonthRange returns [first day of month, first day of next month) in UTC.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
