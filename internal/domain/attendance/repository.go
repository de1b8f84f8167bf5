package attendance

import "context"

type Reader interface {
	// ListByEmployeeMonth returns the attendance rows dated within the
	// given calendar month. Order is unspecified.
	ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Entry, error)
}
