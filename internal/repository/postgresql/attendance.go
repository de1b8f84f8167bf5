package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Reader {
	return &attendanceRepository{db: db}
}

// ListByEmployeeMonth implements attendance.Reader. Open sessions (no
// clock-out yet) count as zero hours.
func (a *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, a.db)
	start, end := payroll.MonthRange(month, year)

	query := `
		SELECT id, employee_id, date, COALESCE(work_hours_in_minutes, 0), COALESCE(late_minutes, 0)
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		var (
			id          string
			workMinutes int64
			entry       attendance.Entry
		)
		if err := rows.Scan(&id, &entry.EmployeeID, &entry.Date, &workMinutes, &entry.LateMinutes); err != nil {
			return nil, err
		}
		entry.HoursWorked = decimal.NewFromInt(workMinutes).Div(minutesPerHour)
		if err := entry.Validate(); err != nil {
			return nil, &payroll.MalformedRowError{Source: "attendances", RowID: id, Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
