package employee

import (
	"github.com/shopspring/decimal"
)

// EmploymentRecord is the slice of the employee directory the payroll
// engine reads: who the employee is, what they earn and whether they
// are still employed.
type EmploymentRecord struct {
	EmployeeID string
	FullName   string
	BaseSalary decimal.Decimal
	Status     EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// Valid reports whether s is one of the known statuses.
func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusOnLeave, EmploymentStatusTerminated:
		return true
	}
	return false
}

// IsTerminated checks if the employee has left the company
func (r EmploymentRecord) IsTerminated() bool {
	return r.Status == EmploymentStatusTerminated
}
