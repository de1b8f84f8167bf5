package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotNotFound = errors.New("payroll snapshot not found")
	ErrSnapshotExists   = errors.New("payroll snapshot already exists for this period")
	ErrMalformedRow     = errors.New("malformed data source row")
)

// MalformedRowError is returned by the data-source adapters when a row
// cannot be mapped onto its typed entity.
type MalformedRowError struct {
	Source string
	RowID  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.RowID == "" {
		return fmt.Sprintf("malformed %s row: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("malformed %s row %s: %v", e.Source, e.RowID, e.Err)
}

func (e *MalformedRowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// PersistenceError marks a failure of the commit step. The computation
// itself succeeded when this error is returned.
type PersistenceError struct {
	EmployeeID string
	Month      int
	Year       int
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist payroll snapshot for employee %s %04d-%02d: %v", e.EmployeeID, e.Year, e.Month, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a duplicate-snapshot failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSnapshotExists)
}
