package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUESTS ==========

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	validatePeriod(&errs, r.Month, r.Year)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CommitSnapshotRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *CommitSnapshotRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	validatePeriod(&errs, r.Month, r.Year)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(errs *validator.ValidationErrors, month, year int) {
	if !validator.IsValidMonth(month) {
		*errs = append(*errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		*errs = append(*errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
	}
}

// ========== RESPONSES ==========

type BreakdownResponse struct {
	EmployeeID                string          `json:"employee_id"`
	Month                     int             `json:"month"`
	Year                      int             `json:"year"`
	BaseSalary                decimal.Decimal `json:"base_salary"`
	TotalHours                decimal.Decimal `json:"total_hours"`
	LateDayUnits              decimal.Decimal `json:"late_day_units"`
	WorkingDaysFromAttendance decimal.Decimal `json:"working_days_from_attendance"`
	PaidLeaveDays             decimal.Decimal `json:"paid_leave_days"`
	ActualWorkingDays         decimal.Decimal `json:"actual_working_days"`
	GrossSalary               decimal.Decimal `json:"gross_salary"`
	BonusTotal                decimal.Decimal `json:"bonus_total"`
	PenaltyTotal              decimal.Decimal `json:"penalty_total"`
	DeductionTotal            decimal.Decimal `json:"deduction_total"`
	TotalIncome               decimal.Decimal `json:"total_income"`
	NetSalary                 decimal.Decimal `json:"net_salary"`
	Note                      *string         `json:"note,omitempty"`
}

type SnapshotResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	ActualWorkingDays decimal.Decimal `json:"actual_working_days"`
	GrossSalary       decimal.Decimal `json:"gross_salary"`
	BonusTotal        decimal.Decimal `json:"bonus_total"`
	PenaltyTotal      decimal.Decimal `json:"penalty_total"`
	GrossIncome       decimal.Decimal `json:"gross_income"`
	DeductionTotal    decimal.Decimal `json:"deduction_total"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	CreatedAt         string          `json:"created_at"`
}

type PeriodCommitResponse struct {
	Month     int                `json:"month"`
	Year      int                `json:"year"`
	Committed []SnapshotResponse `json:"committed"`
	Skipped   []string           `json:"skipped"`
	Failed    map[string]string  `json:"failed,omitempty"`
}

// ========== MAPPERS ==========

func NewBreakdownResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		EmployeeID:                b.EmployeeID,
		Month:                     b.Month,
		Year:                      b.Year,
		BaseSalary:                b.BaseSalary,
		TotalHours:                b.TotalHours,
		LateDayUnits:              b.LateDayUnits,
		WorkingDaysFromAttendance: b.WorkingDaysFromAttendance,
		PaidLeaveDays:             b.PaidLeaveDays,
		ActualWorkingDays:         b.ActualWorkingDays,
		GrossSalary:               b.GrossSalary,
		BonusTotal:                b.BonusTotal,
		PenaltyTotal:              b.PenaltyTotal,
		DeductionTotal:            b.DeductionTotal,
		TotalIncome:               b.TotalIncome,
		NetSalary:                 b.NetSalary,
		Note:                      b.Note,
	}
}

func NewSnapshotResponse(s Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		Month:             s.Month,
		Year:              s.Year,
		BaseSalary:        s.BaseSalary,
		ActualWorkingDays: s.ActualWorkingDays,
		GrossSalary:       s.GrossSalary,
		BonusTotal:        s.BonusTotal,
		PenaltyTotal:      s.PenaltyTotal,
		GrossIncome:       s.GrossIncome,
		DeductionTotal:    s.DeductionTotal,
		NetSalary:         s.NetSalary,
	}
	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func NewSnapshotResponses(snapshots []Snapshot) []SnapshotResponse {
	result := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		result = append(result, NewSnapshotResponse(s))
	}
	return result
}

func NewPeriodCommitResponse(r PeriodCommitResult) PeriodCommitResponse {
	resp := PeriodCommitResponse{
		Month:     r.Month,
		Year:      r.Year,
		Committed: NewSnapshotResponses(r.Committed),
		Skipped:   r.Skipped,
	}
	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}
	if len(r.Failed) > 0 {
		resp.Failed = make(map[string]string, len(r.Failed))
		for id, err := range r.Failed {
			resp.Failed[id] = err.Error()
		}
	}
	return resp
}
