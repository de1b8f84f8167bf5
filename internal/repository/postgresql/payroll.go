package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.SnapshotRepository {
	return &payrollRepository{db: db}
}

const snapshotColumns = `
	id, employee_id, period_month, period_year, base_salary, actual_working_days,
	gross_salary, bonus_total, penalty_total, gross_income, deduction_total,
	net_salary, created_at
`

func scanSnapshot(row pgx.Row) (payroll.Snapshot, error) {
	var s payroll.Snapshot
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year, &s.BaseSalary, &s.ActualWorkingDays,
		&s.GrossSalary, &s.BonusTotal, &s.PenaltyTotal, &s.GrossIncome, &s.DeductionTotal,
		&s.NetSalary, &s.CreatedAt,
	)
	return s, err
}

// Create implements payroll.SnapshotRepository. The unique index on
// (employee_id, period_month, period_year) turns a second commit into
// payroll.ErrSnapshotExists.
func (r *payrollRepository) Create(ctx context.Context, snapshot payroll.Snapshot) (payroll.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_snapshots (
			id, employee_id, period_month, period_year, base_salary, actual_working_days,
			gross_salary, bonus_total, penalty_total, gross_income, deduction_total, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + snapshotColumns

	created, err := scanSnapshot(q.QueryRow(ctx, query,
		uuid.NewString(), snapshot.EmployeeID, snapshot.Month, snapshot.Year,
		snapshot.BaseSalary, snapshot.ActualWorkingDays, snapshot.GrossSalary,
		snapshot.BonusTotal, snapshot.PenaltyTotal, snapshot.GrossIncome,
		snapshot.DeductionTotal, snapshot.NetSalary,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.Snapshot{}, payroll.ErrSnapshotExists
		}
		return payroll.Snapshot{}, fmt.Errorf("failed to create payroll snapshot: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.SnapshotRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + snapshotColumns + ` FROM payroll_snapshots WHERE id = $1`

	s, err := scanSnapshot(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Snapshot{}, payroll.ErrSnapshotNotFound
		}
		return payroll.Snapshot{}, fmt.Errorf("failed to get payroll snapshot: %w", err)
	}

	return s, nil
}

// List implements payroll.SnapshotRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.SnapshotFilter) ([]payroll.Snapshot, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM payroll_snapshots WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll snapshots: %w", err)
	}

	// Pagination
	page, limit := filter.Pagination()
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`SELECT %s %s
		ORDER BY period_year DESC, period_month DESC, created_at DESC, id
		LIMIT $%d OFFSET $%d`, snapshotColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []payroll.Snapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll snapshots: %w", err)
	}

	return snapshots, totalCount, nil
}
