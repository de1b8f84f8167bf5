package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one leave request as recorded in the leave ledger.
type Entry struct {
	ID             string
	EmployeeID     string
	StartDate      time.Time
	EndDate        time.Time
	LeaveType      Type
	ApprovalStatus ApprovalStatus
	NumberOfDays   decimal.Decimal
}

type Type string

const (
	TypeAnnualLeave Type = "annual_leave"
	TypeSick        Type = "sick"
	TypeUnpaid      Type = "unpaid"
	TypeMaternity   Type = "maternity"
	TypePersonal    Type = "personal"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsApproved reports whether the entry counts for payroll at all.
func (e Entry) IsApproved() bool {
	return e.ApprovalStatus == ApprovalStatusApproved
}

// Days returns the recorded day count, or the inclusive calendar span
// when the ledger row carries none.
func (e Entry) Days() decimal.Decimal {
	if e.NumberOfDays.IsPositive() {
		return e.NumberOfDays
	}
	start := time.Date(e.StartDate.Year(), e.StartDate.Month(), e.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(e.EndDate.Year(), e.EndDate.Month(), e.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
}

// StartsIn reports whether the leave starts in the given month. Leave is
// attributed entirely to the month it starts in.
func (e Entry) StartsIn(month, year int) bool {
	return e.StartDate.Year() == year && int(e.StartDate.Month()) == month
}
