package leave

import "errors"

var (
	ErrInvalidDateRange   = errors.New("leave end date is before start date")
	ErrNegativeDays       = errors.New("leave day count cannot be negative")
	ErrUnknownApprovalTag = errors.New("unknown leave approval status")
)

// Validate checks the invariants of a single leave row.
func (e Entry) Validate() error {
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidDateRange
	}
	if e.NumberOfDays.IsNegative() {
		return ErrNegativeDays
	}
	switch e.ApprovalStatus {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return nil
	}
	return ErrUnknownApprovalTag
}
