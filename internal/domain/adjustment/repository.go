package adjustment

import "context"

type Reader interface {
	// ListByEmployeeMonth returns bonus and penalty entries dated within
	// the given calendar month.
	ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Entry, error)
}
