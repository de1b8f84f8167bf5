package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Reader {
	return &leaveRequestRepositoryImpl{db: db}
}

// ListApprovedByEmployeeMonth implements leave.Reader.
func (r *leaveRequestRepositoryImpl) ListApprovedByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]leave.Entry, error) {
	q := GetQuerier(ctx, r.db)
	start, end := payroll.MonthRange(month, year)

	query := `
		SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date,
			   COALESCE(lt.code, ''), lr.status, lr.total_days
		FROM leave_requests lr
		LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1 AND lr.status = $2
		  AND lr.start_date >= $3 AND lr.start_date < $4
	`

	rows, err := q.Query(ctx, query, employeeID, leave.ApprovalStatusApproved, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leave.Entry
	for rows.Next() {
		var (
			entry     leave.Entry
			leaveType string
			status    string
			totalDays decimal.NullDecimal
		)
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.StartDate, &entry.EndDate, &leaveType, &status, &totalDays); err != nil {
			return nil, err
		}
		entry.LeaveType = leave.Type(leaveType)
		entry.ApprovalStatus = leave.ApprovalStatus(status)
		if totalDays.Valid {
			entry.NumberOfDays = totalDays.Decimal
		}
		if err := entry.Validate(); err != nil {
			return nil, &payroll.MalformedRowError{Source: "leave_requests", RowID: entry.ID, Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
