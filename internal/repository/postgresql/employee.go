package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.DirectoryReader {
	return &employeeRepositoryImpl{db: db}
}

// GetEmploymentRecord implements employee.DirectoryReader.
func (e *employeeRepositoryImpl) GetEmploymentRecord(ctx context.Context, id string) (employee.EmploymentRecord, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, base_salary, employment_status
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var (
		rec        employee.EmploymentRecord
		status     string
		baseSalary decimal.NullDecimal
	)
	err := q.QueryRow(ctx, query, id).Scan(&rec.EmployeeID, &rec.FullName, &baseSalary, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmploymentRecord{}, employee.ErrEmployeeNotFound
		}
		return employee.EmploymentRecord{}, err
	}

	if !baseSalary.Valid {
		return employee.EmploymentRecord{}, &payroll.MalformedRowError{
			Source: "employees",
			RowID:  id,
			Err:    errors.New("base salary is not set"),
		}
	}
	rec.BaseSalary = baseSalary.Decimal

	rec.Status = employee.EmploymentStatus(status)
	if !rec.Status.Valid() {
		return employee.EmploymentRecord{}, &payroll.MalformedRowError{
			Source: "employees",
			RowID:  id,
			Err:    fmt.Errorf("unknown employment status %q", status),
		}
	}
	if rec.BaseSalary.IsNegative() {
		return employee.EmploymentRecord{}, &payroll.MalformedRowError{
			Source: "employees",
			RowID:  id,
			Err:    fmt.Errorf("negative base salary %s", rec.BaseSalary),
		}
	}

	return rec, nil
}

// ListPayableEmployeeIDs implements employee.DirectoryReader.
func (e *employeeRepositoryImpl) ListPayableEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id
		FROM employees
		WHERE employment_status <> $1 AND deleted_at IS NULL
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusTerminated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
