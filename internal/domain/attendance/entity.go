package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one day of the attendance log.
type Entry struct {
	EmployeeID  string
	Date        time.Time
	HoursWorked decimal.Decimal
	LateMinutes int
}
