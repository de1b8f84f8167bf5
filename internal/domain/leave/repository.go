package leave

import "context"

type Reader interface {
	// ListApprovedByEmployeeMonth returns approved leave entries whose
	// start date falls in the given month, whatever their type.
	ListApprovedByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Entry, error)
}
