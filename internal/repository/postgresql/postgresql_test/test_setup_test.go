package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TestDatabaseSetup holds the connection to the test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// schema covers only the columns the payroll adapters read.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		base_salary NUMERIC(15,2),
		employment_status TEXT NOT NULL,
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS attendances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date DATE NOT NULL,
		work_hours_in_minutes INT,
		late_minutes INT
	)`,
	`CREATE TABLE IF NOT EXISTS leave_types (
		id TEXT PRIMARY KEY,
		code TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type_id TEXT,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_days NUMERIC(5,1),
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payroll_adjustments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date DATE NOT NULL,
		kind TEXT NOT NULL,
		amount NUMERIC(15,2) NOT NULL,
		reason TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS payroll_snapshots (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		period_month INT NOT NULL,
		period_year INT NOT NULL,
		base_salary NUMERIC(15,2) NOT NULL,
		actual_working_days NUMERIC(5,1) NOT NULL,
		gross_salary NUMERIC(15,2) NOT NULL,
		bonus_total NUMERIC(15,2) NOT NULL,
		penalty_total NUMERIC(15,2) NOT NULL,
		gross_income NUMERIC(15,2) NOT NULL,
		deduction_total NUMERIC(15,2) NOT NULL,
		net_salary NUMERIC(15,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, period_month, period_year)
	)`,
}

var tables = []string{
	"employees",
	"attendances",
	"leave_types",
	"leave_requests",
	"payroll_adjustments",
	"payroll_snapshots",
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it
// is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.migrate(ctx); err != nil {
		db.Close()
		t.Fatal(err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Cleanup(setup.Close)

	return setup
}

func (t *TestDatabaseSetup) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create test schema: %w", err)
		}
	}
	return nil
}

// TruncateAllTables removes every row from the payroll tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
