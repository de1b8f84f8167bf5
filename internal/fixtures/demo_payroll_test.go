package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdays(t *testing.T) {
	// March 2024 starts on a Friday and has 21 weekdays.
	assert.Len(t, weekdays(3, 2024, nil), 21)
	assert.Len(t, weekdays(3, 2024, map[int]bool{4: true, 9: true}), 20)
}

func TestSeedDemoPayroll_March2024(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, SeedDemoPayroll(store, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	svc := payrollService.NewPayrollService(
		payroll.DefaultPolicy(),
		store, store, store, store.Adjustments(), store,
	)

	cases := []struct {
		employeeID string
		days       string
		gross      string
		net        string
	}{
		// 19 days worked, two late mornings, two days annual leave
		{DemoEmployeeRegular, "20", "7692307.69", "7142307.69"},
		// 17 days worked, one day sick leave, unpaid leave ignored
		{DemoEmployeeUnpaid, "18", "5192307.69", "4154807.69"},
		// Maternity leave is unpaid
		{DemoEmployeeOnLeave, "0", "0", "-630000"},
		{DemoEmployeeTerminated, "0", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.employeeID, func(t *testing.T) {
			b, err := svc.ComputeMonthlyPayroll(ctx, tc.employeeID, 3, 2024)
			require.NoError(t, err)
			assert.True(t, b.ActualWorkingDays.Equal(decimal.RequireFromString(tc.days)), b.ActualWorkingDays.String())
			assert.True(t, b.GrossSalary.Equal(decimal.RequireFromString(tc.gross)), b.GrossSalary.String())
			assert.True(t, b.NetSalary.Equal(decimal.RequireFromString(tc.net)), b.NetSalary.String())
		})
	}

	result, err := svc.CommitPeriod(ctx, 3, 2024)
	require.NoError(t, err)
	assert.Len(t, result.Committed, 3)
	assert.Empty(t, result.Failed)
}
