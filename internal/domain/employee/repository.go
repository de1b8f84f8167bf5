package employee

import "context"

// DirectoryReader resolves employment data for payroll.
type DirectoryReader interface {
	// GetEmploymentRecord returns ErrEmployeeNotFound when id is unknown.
	GetEmploymentRecord(ctx context.Context, id string) (EmploymentRecord, error)
	// ListPayableEmployeeIDs returns every employee that is not terminated.
	ListPayableEmployeeIDs(ctx context.Context) ([]string, error)
}
