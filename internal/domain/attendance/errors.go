package attendance

import "errors"

var (
	ErrNegativeHours       = errors.New("hours worked cannot be negative")
	ErrNegativeLateMinutes = errors.New("late minutes cannot be negative")
)

// Validate checks the invariants of a single attendance row.
func (e Entry) Validate() error {
	if e.HoursWorked.IsNegative() {
		return ErrNegativeHours
	}
	if e.LateMinutes < 0 {
		return ErrNegativeLateMinutes
	}
	return nil
}
