package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Computation
	ComputeMonthlyPayroll(w http.ResponseWriter, r *http.Request)

	// Snapshots
	CommitSnapshot(w http.ResponseWriter, r *http.Request)
	CommitPeriod(w http.ResponseWriter, r *http.Request)
	ListSnapshots(w http.ResponseWriter, r *http.Request)
	GetSnapshot(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== COMPUTATION ==========

func (h *payrollHandlerImpl) ComputeMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || !principal.CanViewPayrollOf(employeeID) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	month, year, err := validator.ParsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ComputeMonthlyPayroll(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewBreakdownResponse(result))
}

// ========== SNAPSHOTS ==========

func (h *payrollHandlerImpl) CommitSnapshot(w http.ResponseWriter, r *http.Request) {
	var req payroll.CommitSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CommitSnapshot(r.Context(), req.EmployeeID, req.Month, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll snapshot committed", payroll.NewSnapshotResponse(result))
}

func (h *payrollHandlerImpl) CommitPeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CommitPeriod(r.Context(), req.Month, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Committed %d, skipped %d, failed %d", len(result.Committed), len(result.Skipped), len(result.Failed))
	response.SuccessWithMessage(w, message, payroll.NewPeriodCommitResponse(result))
}

func (h *payrollHandlerImpl) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSnapshotFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snapshots, total, err := h.payrollService.ListSnapshots(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, limit := filter.Pagination()
	response.SuccessWithMeta(w, payroll.NewSnapshotResponses(snapshots), response.NewMeta(page, limit, total))
}

func parseSnapshotFilter(r *http.Request) (payroll.SnapshotFilter, error) {
	query := r.URL.Query()

	var (
		filter payroll.SnapshotFilter
		errs   validator.ValidationErrors
	)

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	parse := func(field string) *int {
		v, err := validator.ParseOptionalInt(field, query.Get(field))
		if err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				errs = append(errs, fieldErrs...)
			}
			return nil
		}
		return v
	}

	filter.Month = parse("month")
	filter.Year = parse("year")
	if filter.Month != nil && !validator.IsValidMonth(*filter.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if page := parse("page"); page != nil {
		filter.Page = *page
	}
	if limit := parse("limit"); limit != nil {
		filter.Limit = *limit
	}

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

func (h *payrollHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, validator.ValidationErrors{{Field: "id", Message: "must be a valid UUID"}})
		return
	}

	result, err := h.payrollService.GetSnapshot(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSnapshotResponse(result))
}
