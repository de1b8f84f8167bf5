package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.Reader {
	return &adjustmentRepository{db: db}
}

// ListByEmployeeMonth implements adjustment.Reader.
func (r *adjustmentRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]adjustment.Entry, error) {
	q := GetQuerier(ctx, r.db)
	start, end := payroll.MonthRange(month, year)

	query := `
		SELECT id, employee_id, date, kind, amount, reason
		FROM payroll_adjustments
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []adjustment.Entry
	for rows.Next() {
		var (
			entry adjustment.Entry
			kind  string
		)
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Date, &kind, &entry.Amount, &entry.Reason); err != nil {
			return nil, err
		}
		entry.Kind = adjustment.Kind(kind)
		if err := entry.Validate(); err != nil {
			return nil, &payroll.MalformedRowError{Source: "payroll_adjustments", RowID: entry.ID, Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
