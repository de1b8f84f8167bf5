package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *chi.Mux
	tokens map[user.Role]string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
	} `json:"meta"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.PutEmployee(employee.EmploymentRecord{
		EmployeeID: "e1",
		FullName:   "Dewi Lestari",
		BaseSalary: decimal.NewFromInt(5_200_000),
		Status:     employee.EmploymentStatusActive,
	}))
	require.NoError(t, store.PutEmployee(employee.EmploymentRecord{
		EmployeeID: "e2",
		FullName:   "Budi Santoso",
		BaseSalary: decimal.NewFromInt(4_000_000),
		Status:     employee.EmploymentStatusTerminated,
	}))
	for d := 1; d <= 22; d++ {
		require.NoError(t, store.AddAttendance(attendance.Entry{
			EmployeeID:  "e1",
			Date:        time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC),
			HoursWorked: decimal.NewFromInt(8),
		}))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := payrollService.NewPayrollService(
		payroll.DefaultPolicy(),
		store, store, store, store.Adjustments(), store,
		payrollService.WithLogger(logger),
	)

	jwtService := jwt.NewJWTService("handler-test-secret", "1h")
	env := &testEnv{
		router: NewRouter(jwtService, NewPayrollHandler(svc), logger, []string{"*"}),
		tokens: map[user.Role]string{},
	}

	ownEmployee := "e1"
	for role, employeeID := range map[user.Role]*string{
		user.RoleAdmin:    nil,
		user.RoleManager:  nil,
		user.RoleEmployee: &ownEmployee,
	} {
		token, _, err := jwtService.GenerateAccessToken("user-"+string(role), employeeID, role)
		require.NoError(t, err)
		env.tokens[role] = token
	}
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, role user.Role, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token, ok := e.tokens[role]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestComputeMonthlyPayroll_OwnRecord(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodGet, "/api/v1/payroll/employees/e1/periods/2024/3", user.RoleEmployee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var got payroll.BreakdownResponse
	decodeData(t, env, &got)
	assert.True(t, got.ActualWorkingDays.Equal(decimal.NewFromInt(22)))
	assert.True(t, got.GrossSalary.Equal(decimal.NewFromInt(4_400_000)))
	assert.True(t, got.DeductionTotal.Equal(decimal.NewFromInt(546_000)))
	assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(3_854_000)))
	assert.Nil(t, got.Note)
}

func TestComputeMonthlyPayroll_TerminatedEmployee(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodGet, "/api/v1/payroll/employees/e2/periods/2024/3", user.RoleManager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got payroll.BreakdownResponse
	decodeData(t, env, &got)
	require.NotNil(t, got.Note)
	assert.Equal(t, payroll.NoteEmployeeLeft, *got.Note)
	assert.True(t, got.NetSalary.IsZero())
}

func TestComputeMonthlyPayroll_Errors(t *testing.T) {
	e := newTestEnv(t)

	cases := []struct {
		name   string
		path   string
		role   user.Role
		status int
		code   string
	}{
		{"other employee's payroll", "/api/v1/payroll/employees/e2/periods/2024/3", user.RoleEmployee, http.StatusForbidden, "FORBIDDEN"},
		{"unknown employee", "/api/v1/payroll/employees/nobody/periods/2024/3", user.RoleAdmin, http.StatusNotFound, "NOT_FOUND"},
		{"month out of range", "/api/v1/payroll/employees/e1/periods/2024/13", user.RoleEmployee, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"non-numeric year", "/api/v1/payroll/employees/e1/periods/twenty/3", user.RoleEmployee, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"missing token", "/api/v1/payroll/employees/e1/periods/2024/3", user.RoleCandidate, http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := e.do(t, http.MethodGet, tc.path, tc.role, nil)
			assert.Equal(t, tc.status, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestCommitSnapshot(t *testing.T) {
	e := newTestEnv(t)
	body := payroll.CommitSnapshotRequest{EmployeeID: "e1", Month: 3, Year: 2024}

	rec, env := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleAdmin, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created payroll.SnapshotResponse
	decodeData(t, env, &created)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.True(t, created.GrossIncome.Equal(decimal.NewFromInt(4_400_000)))
	assert.True(t, created.NetSalary.Equal(decimal.NewFromInt(3_854_000)))

	t.Run("duplicate period conflicts", func(t *testing.T) {
		rec, env := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleAdmin, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		rec, env := e.do(t, http.MethodGet, "/api/v1/payroll/snapshots/"+created.ID, user.RoleManager, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got payroll.SnapshotResponse
		decodeData(t, env, &got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("get unknown id", func(t *testing.T) {
		rec, _ := e.do(t, http.MethodGet, "/api/v1/payroll/snapshots/"+uuid.NewString(), user.RoleManager, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get malformed id", func(t *testing.T) {
		rec, _ := e.do(t, http.MethodGet, "/api/v1/payroll/snapshots/not-a-uuid", user.RoleManager, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("list filtered", func(t *testing.T) {
		rec, env := e.do(t, http.MethodGet, "/api/v1/payroll/snapshots?employee_id=e1&year=2024&limit=5", user.RoleAdmin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []payroll.SnapshotResponse
		decodeData(t, env, &list)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
		require.NotNil(t, env.Meta)
		assert.EqualValues(t, 1, env.Meta.TotalItems)
		assert.Equal(t, 5, env.Meta.Limit)
	})

	t.Run("list rejects bad query", func(t *testing.T) {
		rec, env := e.do(t, http.MethodGet, "/api/v1/payroll/snapshots?month=0&page=x", user.RoleAdmin, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "month")
		assert.Contains(t, env.Error.Details, "page")
	})
}

func TestCommitSnapshot_Rejected(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleEmployee,
		payroll.CommitSnapshotRequest{EmployeeID: "e1", Month: 3, Year: 2024})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleAdmin, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleAdmin,
		payroll.CommitSnapshotRequest{Month: 0, Year: 2024})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "employee_id")
	assert.Contains(t, env.Error.Details, "month")

	rec, _ = e.do(t, http.MethodGet, "/api/v1/payroll/snapshots", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommitPeriod(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots", user.RoleAdmin,
		payroll.CommitSnapshotRequest{EmployeeID: "e1", Month: 3, Year: 2024})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/v1/payroll/snapshots/period", user.RoleAdmin,
		payroll.PeriodRequest{Month: 3, Year: 2024})
	require.Equal(t, http.StatusOK, rec.Code)

	var got payroll.PeriodCommitResponse
	decodeData(t, env, &got)
	assert.Empty(t, got.Committed)
	assert.Equal(t, []string{"e1"}, got.Skipped)
	assert.Empty(t, got.Failed)

	rec, env = e.do(t, http.MethodPost, "/api/v1/payroll/snapshots/period", user.RoleAdmin,
		payroll.PeriodRequest{Month: 4, Year: 2024})
	require.Equal(t, http.StatusOK, rec.Code)
	got = payroll.PeriodCommitResponse{}
	decodeData(t, env, &got)
	require.Len(t, got.Committed, 1)
	assert.Equal(t, "e1", got.Committed[0].EmployeeID)
	assert.True(t, got.Committed[0].NetSalary.Equal(decimal.NewFromInt(-546_000)))
}
